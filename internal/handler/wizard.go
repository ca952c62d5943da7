package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanhome/internal/auth"
	"cleanhome/internal/service"
)

// WizardHandler handles HTTP requests for server-side booking drafts.
type WizardHandler struct {
	wizardService *service.WizardService
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(wizardService *service.WizardService) *WizardHandler {
	return &WizardHandler{wizardService: wizardService}
}

// draftCall runs a draft operation for the session and writes its view.
func (h *WizardHandler) draftCall(c *gin.Context, status int, fn func(s auth.Session) (*service.DraftView, error)) {
	s, ok := session(c)
	if !ok {
		return
	}
	v, err := fn(s)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, status, v)
}

// Start handles POST /v1/wizard
func (h *WizardHandler) Start(c *gin.Context) {
	h.draftCall(c, http.StatusCreated, func(s auth.Session) (*service.DraftView, error) {
		return h.wizardService.Start(c.Request.Context(), s)
	})
}

// Get handles GET /v1/wizard/:id
func (h *WizardHandler) Get(c *gin.Context) {
	h.draftCall(c, http.StatusOK, func(s auth.Session) (*service.DraftView, error) {
		return h.wizardService.Get(c.Request.Context(), s, c.Param("id"))
	})
}

// Select handles PATCH /v1/wizard/:id
func (h *WizardHandler) Select(c *gin.Context) {
	var req service.SelectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	h.draftCall(c, http.StatusOK, func(s auth.Session) (*service.DraftView, error) {
		return h.wizardService.Select(c.Request.Context(), s, c.Param("id"), req)
	})
}

// ToggleAddOn handles POST /v1/wizard/:id/add-ons/:addOnId/toggle
func (h *WizardHandler) ToggleAddOn(c *gin.Context) {
	h.draftCall(c, http.StatusOK, func(s auth.Session) (*service.DraftView, error) {
		return h.wizardService.ToggleAddOn(c.Request.Context(), s, c.Param("id"), c.Param("addOnId"))
	})
}

// Next handles POST /v1/wizard/:id/next
func (h *WizardHandler) Next(c *gin.Context) {
	h.draftCall(c, http.StatusOK, func(s auth.Session) (*service.DraftView, error) {
		return h.wizardService.Next(c.Request.Context(), s, c.Param("id"))
	})
}

// Back handles POST /v1/wizard/:id/back
func (h *WizardHandler) Back(c *gin.Context) {
	h.draftCall(c, http.StatusOK, func(s auth.Session) (*service.DraftView, error) {
		return h.wizardService.Back(c.Request.Context(), s, c.Param("id"))
	})
}

// Refresh handles POST /v1/wizard/:id/refresh
func (h *WizardHandler) Refresh(c *gin.Context) {
	h.draftCall(c, http.StatusOK, func(s auth.Session) (*service.DraftView, error) {
		return h.wizardService.RefreshCandidates(c.Request.Context(), s, c.Param("id"))
	})
}

// Submit handles POST /v1/wizard/:id/submit
//
// A failed submission is kept on the draft as submit_error; the response
// carries the mapped error status.
func (h *WizardHandler) Submit(c *gin.Context) {
	h.draftCall(c, http.StatusCreated, func(s auth.Session) (*service.DraftView, error) {
		return h.wizardService.Submit(c.Request.Context(), s, c.Param("id"))
	})
}

// Discard handles DELETE /v1/wizard/:id
func (h *WizardHandler) Discard(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	if err := h.wizardService.Discard(c.Request.Context(), s, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
