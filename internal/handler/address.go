package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanhome/internal/domain"
	"cleanhome/internal/service"
)

// AddressHandler handles HTTP requests for saved addresses.
type AddressHandler struct {
	addressService *service.AddressService
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List handles GET /v1/addresses
func (h *AddressHandler) List(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), s)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"addresses": addresses})
}

// Create handles POST /v1/addresses
func (h *AddressHandler) Create(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req domain.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	addr, err := h.addressService.Create(c.Request.Context(), s, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, addr)
}
