package service

import (
	"context"
	"log"

	"cleanhome/internal/domain"
	"cleanhome/internal/redis"
	"cleanhome/internal/repository"
)

// CatalogService serves the bookable catalog, cached in Redis.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	cacheStore  redis.CacheStoreInterface
}

// NewCatalogService creates a new CatalogService. cacheStore may be nil.
func NewCatalogService(catalogRepo repository.CatalogRepository, cacheStore redis.CacheStoreInterface) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		cacheStore:  cacheStore,
	}
}

// Catalog returns the location sizes, services and add-ons.
func (s *CatalogService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetCatalog(ctx)
		if err != nil {
			log.Printf("catalog: cache read failed: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	catalog, err := s.catalogRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		if err := s.cacheStore.SetCatalog(ctx, catalog); err != nil {
			log.Printf("catalog: cache write failed: %v", err)
		}
	}

	return catalog, nil
}
