package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/desk-reservation/internal/model"
)

// ErrFloorNotFound is returned when a floor lookup fails.
var ErrFloorNotFound = errors.New("floor not found")

// FloorRepo provides read access to floors within an office.
type FloorRepo struct {
	db *sql.DB
}

// NewFloorRepo constructs a FloorRepo with the given DB handle.
func NewFloorRepo(db *sql.DB) *FloorRepo {
	return &FloorRepo{db: db}
}

// ListByOffice returns the floors of an office ordered by name.
func (r *FloorRepo) ListByOffice(ctx context.Context, officeID string) ([]*model.Floor, error) {
	const q = `SELECT id, office_id, name FROM floors WHERE office_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, officeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Floor
	for rows.Next() {
		f := new(model.Floor)
		if err := rows.Scan(&f.ID, &f.OfficeID, &f.Name); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a floor by ID.  Returns ErrFloorNotFound when no row
// exists.
func (r *FloorRepo) GetByID(ctx context.Context, id string) (*model.Floor, error) {
	const q = `SELECT id, office_id, name, created_at, updated_at FROM floors WHERE id = ?`
	var f model.Floor
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&f.ID, &f.OfficeID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFloorNotFound
		}
		return nil, err
	}
	return &f, nil
}
