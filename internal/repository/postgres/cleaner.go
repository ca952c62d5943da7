package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cleanhome/internal/domain"
	"cleanhome/internal/repository"
)

// CleanerRepository is a PostgreSQL implementation of repository.CleanerRepository.
type CleanerRepository struct {
	q Querier
}

// NewCleanerRepository creates a new PostgreSQL cleaner repository.
func NewCleanerRepository(db *sql.DB) *CleanerRepository {
	return &CleanerRepository{q: db}
}

const cleanerColumns = `id, user_id, display_name, bio, tier, hourly_rate, rating, review_count,
		city, postal_code, base_lat, base_lng, active`

// Save inserts the profile or updates the existing profile of the same user.
// The tier of an existing profile is never overwritten; the stored tier is
// scanned back into p.
func (r *CleanerRepository) Save(ctx context.Context, p *domain.CleanerProfile) error {
	query := `
		INSERT INTO cleaner_profiles (` + cleanerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name, bio = EXCLUDED.bio,
			hourly_rate = EXCLUDED.hourly_rate, city = EXCLUDED.city, postal_code = EXCLUDED.postal_code,
			base_lat = EXCLUDED.base_lat, base_lng = EXCLUDED.base_lng, active = EXCLUDED.active
		RETURNING id, tier, rating, review_count
	`

	return r.q.QueryRowContext(ctx, query,
		p.ID,
		p.UserID,
		p.DisplayName,
		p.Bio,
		p.Tier,
		p.HourlyRate,
		p.Rating,
		p.ReviewCount,
		p.City,
		p.PostalCode,
		p.BaseLat,
		p.BaseLng,
		p.Active,
	).Scan(&p.ID, &p.Tier, &p.Rating, &p.ReviewCount)
}

// GetByUserID retrieves the profile of a cleaner user.
func (r *CleanerRepository) GetByUserID(ctx context.Context, userID string) (*domain.CleanerProfile, error) {
	query := `SELECT ` + cleanerColumns + ` FROM cleaner_profiles WHERE user_id = $1`

	p, err := scanCleaner(r.q.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListActiveInArea returns active cleaners of a city, best rated first. A
// cleaner's postal code is a prefix; an empty one covers the whole city.
func (r *CleanerRepository) ListActiveInArea(ctx context.Context, city, postalCode string) ([]*domain.CleanerProfile, error) {
	query := `
		SELECT ` + cleanerColumns + ` FROM cleaner_profiles
		WHERE active AND lower(city) = lower($1)
			AND ($2 = '' OR $2 LIKE postal_code || '%')
		ORDER BY rating DESC, review_count DESC
	`

	rows, err := r.q.QueryContext(ctx, query, city, postalCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.CleanerProfile
	for rows.Next() {
		p, err := scanCleaner(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// UpdateBaseLocation sets the base coordinates of a cleaner.
func (r *CleanerRepository) UpdateBaseLocation(ctx context.Context, userID string, lat, lng float64) error {
	query := `UPDATE cleaner_profiles SET base_lat = $1, base_lng = $2 WHERE user_id = $3`

	result, err := r.q.ExecContext(ctx, query, lat, lng, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// TierRateRanges returns the rate range of every tier.
func (r *CleanerRepository) TierRateRanges(ctx context.Context) ([]domain.TierRateRange, error) {
	query := `SELECT tier, min_rate, max_rate FROM tier_rate_ranges ORDER BY min_rate`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []domain.TierRateRange
	for rows.Next() {
		var tr domain.TierRateRange
		if err := rows.Scan(&tr.Tier, &tr.MinRate, &tr.MaxRate); err != nil {
			return nil, err
		}
		ranges = append(ranges, tr)
	}
	return ranges, rows.Err()
}

func scanCleaner(row rowScanner) (*domain.CleanerProfile, error) {
	var p domain.CleanerProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.DisplayName,
		&p.Bio,
		&p.Tier,
		&p.HourlyRate,
		&p.Rating,
		&p.ReviewCount,
		&p.City,
		&p.PostalCode,
		&p.BaseLat,
		&p.BaseLng,
		&p.Active,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
