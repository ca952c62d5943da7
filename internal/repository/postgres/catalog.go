package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cleanhome/internal/domain"
)

// CatalogRepository is a PostgreSQL implementation of repository.CatalogRepository.
type CatalogRepository struct {
	q Querier
}

// NewCatalogRepository creates a new PostgreSQL catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{q: db}
}

// Get loads location sizes, services and add-ons.
func (r *CatalogRepository) Get(ctx context.Context) (*domain.Catalog, error) {
	var c domain.Catalog

	rows, err := r.q.QueryContext(ctx, `SELECT id, label, is_default, sort_order FROM location_sizes ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("location sizes: %w", err)
	}
	for rows.Next() {
		var ls domain.LocationSize
		if err := rows.Scan(&ls.ID, &ls.Label, &ls.IsDefault, &ls.SortOrder); err != nil {
			rows.Close()
			return nil, err
		}
		c.LocationSizes = append(c.LocationSizes, ls)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.q.QueryContext(ctx, `SELECT id, type, name, base_hours FROM services ORDER BY base_hours, name`)
	if err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Type, &s.Name, &s.BaseHours); err != nil {
			rows.Close()
			return nil, err
		}
		c.Services = append(c.Services, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.q.QueryContext(ctx, `SELECT id, name, hours, price FROM add_ons ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("add-ons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a domain.AddOn
		if err := rows.Scan(&a.ID, &a.Name, &a.Hours, &a.Price); err != nil {
			return nil, err
		}
		c.AddOns = append(c.AddOns, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &c, nil
}
