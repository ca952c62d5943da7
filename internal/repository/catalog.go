package repository

import (
	"context"

	"cleanhome/internal/domain"
)

// CatalogRepository reads the bookable catalog.
type CatalogRepository interface {
	Get(ctx context.Context) (*domain.Catalog, error)
}
