package domain

import (
	"strings"
	"time"
)

// Address is a structured location as returned by the geocoding provider.
// Street, city, postal code, county and country are required; building,
// apartment, floor and access instructions are optional.
type Address struct {
	ID                 string    `json:"id,omitempty"`
	UserID             string    `json:"user_id,omitempty"`
	Street             string    `json:"street" validate:"required"`
	StreetNumber       string    `json:"street_number,omitempty"`
	City               string    `json:"city" validate:"required"`
	County             string    `json:"county" validate:"required"`
	PostalCode         string    `json:"postal_code" validate:"required"`
	Country            string    `json:"country" validate:"required,len=2"`
	Building           string    `json:"building,omitempty"`
	Apartment          string    `json:"apartment,omitempty"`
	Floor              string    `json:"floor,omitempty"`
	AccessInstructions string    `json:"access_instructions,omitempty"`
	Lat                float64   `json:"lat" validate:"latitude"`
	Lng                float64   `json:"lng" validate:"longitude"`
	Formatted          string    `json:"formatted,omitempty"`
	IsDefault          bool      `json:"is_default,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
}

// Display returns the one-line representation shown in summaries.
func (a *Address) Display() string {
	if a == nil {
		return ""
	}
	if a.Formatted != "" {
		return a.Formatted
	}
	street := strings.TrimSpace(a.Street + " " + a.StreetNumber)
	parts := []string{street}
	if a.Apartment != "" {
		parts = append(parts, "Apt "+a.Apartment)
	}
	parts = append(parts, a.City)
	if a.PostalCode != "" {
		parts = append(parts, a.PostalCode)
	}
	return strings.Join(parts, ", ")
}

// DefaultAddress picks the address flagged as default, falling back to the first one.
func DefaultAddress(addresses []*Address) *Address {
	for _, a := range addresses {
		if a.IsDefault {
			return a
		}
	}
	if len(addresses) > 0 {
		return addresses[0]
	}
	return nil
}
