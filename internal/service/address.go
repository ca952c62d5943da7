package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"cleanhome/internal/auth"
	"cleanhome/internal/domain"
	"cleanhome/internal/repository"
)

// AddressService manages the saved addresses of customers.
type AddressService struct {
	addressRepo repository.AddressRepository
	country     string
}

// NewAddressService creates a new AddressService restricted to country.
func NewAddressService(addressRepo repository.AddressRepository, country string) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		country:     strings.ToUpper(country),
	}
}

// List returns the caller's saved addresses, default first.
func (s *AddressService) List(ctx context.Context, session auth.Session) ([]*domain.Address, error) {
	if session.Role != domain.RoleCustomer {
		return nil, ErrRoleNotAllowed
	}
	return s.addressRepo.ListByUser(ctx, session.UserID)
}

// Create saves a geocoded address for the caller.
func (s *AddressService) Create(ctx context.Context, session auth.Session, addr domain.Address) (*domain.Address, error) {
	if session.Role != domain.RoleCustomer {
		return nil, ErrRoleNotAllowed
	}
	if err := validateStruct(addr); err != nil {
		return nil, err
	}
	if s.country != "" && !strings.EqualFold(addr.Country, s.country) {
		return nil, fmt.Errorf("%w: %s", ErrAddressCountry, addr.Country)
	}

	addr.ID = uuid.New().String()
	addr.UserID = session.UserID
	addr.Country = strings.ToUpper(addr.Country)

	if err := s.addressRepo.Create(ctx, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}
