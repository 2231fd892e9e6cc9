package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/desk-reservation/internal/model"
)

// ErrLocationNotFound is returned when a location cannot be found.
var ErrLocationNotFound = errors.New("location not found")

// LocationRepo encapsulates all database queries related to locations.
// Locations are seeded externally; this service only reads them.
type LocationRepo struct {
	db *sql.DB
}

// NewLocationRepo constructs a LocationRepo with the provided DB handle.
func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// ListAll returns every location ordered by name.  Only ID and Name are
// selected; browse responses never expose timestamps.
func (r *LocationRepo) ListAll(ctx context.Context) ([]*model.Location, error) {
	const q = `SELECT id, name FROM locations ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Location
	for rows.Next() {
		l := new(model.Location)
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a location by its ID.  Returns ErrLocationNotFound when
// no row exists.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*model.Location, error) {
	const q = `SELECT id, name, created_at, updated_at FROM locations WHERE id = ?`
	var l model.Location
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}
