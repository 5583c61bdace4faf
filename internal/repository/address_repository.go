package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed address book.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

// Create stores a new address and sets its creation time.
func (r *addressRepository) Create(ctx context.Context, a *model.ShippingAddress) error {
	query := `
		INSERT INTO addresses (id, user_id, name, mobile, email, line1, line2, landmark, city, state, zip, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.ID, a.UserID, a.Name, a.Mobile, a.Email, a.Line1, a.Line2,
		a.Landmark, a.City, a.State, a.Zip, string(a.Type),
	).Scan(&a.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", a.UserID).
			Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's saved addresses, newest first.
func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]model.ShippingAddress, error) {
	query := `
		SELECT id, user_id, name, mobile, email, line1, line2, landmark, city, state, zip, type, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query addresses")
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	addresses := []model.ShippingAddress{}
	for rows.Next() {
		var (
			a           model.ShippingAddress
			addressType string
		)
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.Mobile, &a.Email, &a.Line1, &a.Line2,
			&a.Landmark, &a.City, &a.State, &a.Zip, &addressType, &a.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan address row")
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		a.Type = model.AddressType(addressType)
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating address rows")
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}

// Update replaces the fields of an address owned by the user.
func (r *addressRepository) Update(ctx context.Context, a *model.ShippingAddress) error {
	query := `
		UPDATE addresses
		SET name = $3, mobile = $4, email = $5, line1 = $6, line2 = $7,
			landmark = $8, city = $9, state = $10, zip = $11, type = $12
		WHERE id = $1 AND user_id = $2
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.ID, a.UserID, a.Name, a.Mobile, a.Email, a.Line1, a.Line2,
		a.Landmark, a.City, a.State, a.Zip, string(a.Type),
	).Scan(&a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrAddressNotFound
		}
		r.logger.Error().Err(err).Str("address_id", a.ID.String()).Msg("failed to update address")
		return fmt.Errorf("failed to update address: %w", err)
	}

	return nil
}

// Delete removes an address owned by the user.
func (r *addressRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("address_id", id.String()).Msg("failed to delete address")
		return fmt.Errorf("failed to delete address: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrAddressNotFound
	}
	return nil
}
