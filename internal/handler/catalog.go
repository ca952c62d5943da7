package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanhome/internal/pricing"
	"cleanhome/internal/service"
)

// CatalogHandler serves the bookable catalog and the tier rate ranges.
type CatalogHandler struct {
	catalogService *service.CatalogService
	cleanerService *service.CleanerService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, cleanerService *service.CleanerService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		cleanerService: cleanerService,
	}
}

// TierRateRangeResponse is the allowed hourly rate range of a tier.
type TierRateRangeResponse struct {
	Tier        string `json:"tier"`
	MinRate     int64  `json:"min_rate"`
	MaxRate     int64  `json:"max_rate"`
	MinRateText string `json:"min_rate_text"`
	MaxRateText string `json:"max_rate_text"`
}

// GetCatalog handles GET /v1/catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.catalogService.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, catalog)
}

// TierRateRanges handles GET /v1/tier-rate-ranges
func (h *CatalogHandler) TierRateRanges(c *gin.Context) {
	ranges, err := h.cleanerService.TierRateRanges(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]TierRateRangeResponse, 0, len(ranges))
	for _, r := range ranges {
		resp = append(resp, TierRateRangeResponse{
			Tier:        string(r.Tier),
			MinRate:     r.MinRate,
			MaxRate:     r.MaxRate,
			MinRateText: pricing.FormatAmount(r.MinRate),
			MaxRateText: pricing.FormatAmount(r.MaxRate),
		})
	}
	respondJSON(c, http.StatusOK, resp)
}
