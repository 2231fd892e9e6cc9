package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/desk-reservation/internal/model"
)

// ErrOfficeNotFound is returned when an office lookup fails.
var ErrOfficeNotFound = errors.New("office not found")

// OfficeRepo provides read access to offices within a location.
type OfficeRepo struct {
	db *sql.DB
}

// NewOfficeRepo constructs an OfficeRepo with the given DB handle.
func NewOfficeRepo(db *sql.DB) *OfficeRepo {
	return &OfficeRepo{db: db}
}

// ListByLocation returns the offices of a location ordered by name.
func (r *OfficeRepo) ListByLocation(ctx context.Context, locationID string) ([]*model.Office, error) {
	const q = `SELECT id, location_id, name FROM offices WHERE location_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Office
	for rows.Next() {
		o := new(model.Office)
		if err := rows.Scan(&o.ID, &o.LocationID, &o.Name); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches an office by ID.  Returns ErrOfficeNotFound when no row
// exists.
func (r *OfficeRepo) GetByID(ctx context.Context, id string) (*model.Office, error) {
	const q = `SELECT id, location_id, name, created_at, updated_at FROM offices WHERE id = ?`
	var o model.Office
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&o.ID, &o.LocationID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOfficeNotFound
		}
		return nil, err
	}
	return &o, nil
}
