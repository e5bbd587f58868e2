package spots

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL spot repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a spot by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Spot, error) {
	query := `
		SELECT
			id, name, lat, lon,
			station_id, default_species, notes,
			created_at, updated_at
		FROM fishing_spots
		WHERE id = $1
	`

	var spot Spot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&spot.ID,
		&spot.Name,
		&spot.Location.Lat,
		&spot.Location.Lon,
		&spot.StationID,
		&spot.DefaultSpecies,
		&spot.Notes,
		&spot.CreatedAt,
		&spot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}

	return &spot, nil
}

// List retrieves all spots with pagination.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra to determine if there are more results
	fetchLimit := limit + 1

	query := `
		SELECT
			id, name, lat, lon,
			station_id, default_species, notes,
			created_at, updated_at
		FROM fishing_spots
		ORDER BY created_at DESC, id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, fetchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Spot
	for rows.Next() {
		var spot Spot
		err := rows.Scan(
			&spot.ID,
			&spot.Name,
			&spot.Location.Lat,
			&spot.Location.Lon,
			&spot.StationID,
			&spot.DefaultSpecies,
			&spot.Notes,
			&spot.CreatedAt,
			&spot.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &spot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &ListResult{Items: items}
	if len(items) > limit {
		result.Items = items[:limit]
		result.NextCursor = items[limit-1].ID
	}

	return result, nil
}

// Create creates a new spot.
func (r *PostgresRepository) Create(ctx context.Context, spot *Spot) error {
	query := `
		INSERT INTO fishing_spots (
			id, name, lat, lon,
			station_id, default_species, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		spot.ID,
		spot.Name,
		spot.Location.Lat,
		spot.Location.Lon,
		spot.StationID,
		spot.DefaultSpecies,
		spot.Notes,
		spot.CreatedAt,
		spot.UpdatedAt,
	)
	return err
}

// Update updates an existing spot.
func (r *PostgresRepository) Update(ctx context.Context, spot *Spot) error {
	query := `
		UPDATE fishing_spots SET
			name = $2,
			lat = $3,
			lon = $4,
			station_id = $5,
			default_species = $6,
			notes = $7,
			updated_at = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		spot.ID,
		spot.Name,
		spot.Location.Lat,
		spot.Location.Lon,
		spot.StationID,
		spot.DefaultSpecies,
		spot.Notes,
		spot.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrSpotNotFound
	}

	return nil
}

// Delete deletes a spot by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM fishing_spots WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
