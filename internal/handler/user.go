package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/service"
)

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// LoginRequest is the HTTP request body for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the HTTP request body for refreshing a session.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the HTTP representation of an account.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens *auth.Tokens `json:"tokens"`
}

func toUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, tokens, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, AuthResponse{User: toUserResponse(user), Tokens: tokens})
}

// Login handles POST /v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, tokens, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AuthResponse{User: toUserResponse(user), Tokens: tokens})
}

// Refresh handles POST /v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	tokens, err := h.userService.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tokens)
}

// Me handles GET /v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	user, err := h.userService.Me(c.Request.Context(), s)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}
