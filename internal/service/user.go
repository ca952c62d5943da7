package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/repository"
)

// UserService handles accounts and session tokens.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=CUSTOMER CLEANER"`
}

// Register creates a customer or cleaner account and signs it in.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, *auth.Tokens, error) {
	input.Role = strings.ToUpper(input.Role)
	if err := validateStruct(input); err != nil {
		return nil, nil, err
	}
	role, _ := domain.ParseRole(input.Role)

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	tokens, err := s.tokens.GenerateTokens(sessionOf(user))
	if err != nil {
		return nil, nil, err
	}

	log.Printf("user: registered id=%s role=%s", user.ID, user.Role)
	return user, tokens, nil
}

// Login exchanges email and password for a token pair.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, *auth.Tokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.tokens.GenerateTokens(sessionOf(user))
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (s *UserService) Refresh(refreshToken string) (*auth.Tokens, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%w: refresh_token is required", ErrInvalidInput)
	}
	return s.tokens.Refresh(refreshToken)
}

// Me returns the account of the caller.
func (s *UserService) Me(ctx context.Context, session auth.Session) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, session.UserID)
}

func sessionOf(u *domain.User) auth.Session {
	return auth.Session{UserID: u.ID, Email: u.Email, Role: u.Role}
}
