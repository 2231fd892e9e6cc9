package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/desk-reservation/internal/model"
)

// ErrDeskNotFound is returned when a desk lookup fails.
var ErrDeskNotFound = errors.New("desk not found")

// DeskRepo provides access to desks and their date-scoped reservation
// state.
type DeskRepo struct {
	db *sql.DB
}

// NewDeskRepo constructs a DeskRepo with the given DB handle.
func NewDeskRepo(db *sql.DB) *DeskRepo {
	return &DeskRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions that
// span desk and reservation writes.
func (r *DeskRepo) DB() *sql.DB { return r.db }

// DeskForDate pairs a desk with its active reservation for a queried date,
// if any.  Only the relevant reservation is attached, never full history.
type DeskForDate struct {
	Desk        model.Desk
	Reservation *model.Reservation
}

// ListByFloorForDate returns all desks on a floor together with any
// non-cancelled reservation for the given date.  Desks are ordered by
// their display number for deterministic output.
func (r *DeskRepo) ListByFloorForDate(ctx context.Context, floorID, date string) ([]DeskForDate, error) {
	const q = `SELECT d.id, d.floor_id, d.desk_number, d.status,
	                  res.id, res.user_id, res.created_by,
	                  DATE_FORMAT(res.reservation_date, '%Y-%m-%d'), res.status, res.booking_name
	           FROM desks d
	           LEFT JOIN reservations res
	                  ON res.desk_id = d.id
	                 AND res.reservation_date = ?
	                 AND res.status <> 'Cancelled'
	           WHERE d.floor_id = ?
	           ORDER BY d.desk_number`
	rows, err := r.db.QueryContext(ctx, q, date, floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]DeskForDate, 0)
	for rows.Next() {
		var d DeskForDate
		var resID, resUserID, resCreatedBy, resDate, resStatus, resName sql.NullString
		if err := rows.Scan(
			&d.Desk.ID, &d.Desk.FloorID, &d.Desk.Number, &d.Desk.Status,
			&resID, &resUserID, &resCreatedBy, &resDate, &resStatus, &resName,
		); err != nil {
			return nil, err
		}
		if resID.Valid {
			d.Reservation = &model.Reservation{
				ID:          resID.String,
				DeskID:      d.Desk.ID,
				UserID:      resUserID.String,
				CreatedBy:   resCreatedBy.String,
				Date:        resDate.String,
				Status:      resStatus.String,
				BookingName: resName.String,
			}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDTx fetches a desk within a transaction, locking the row so a
// concurrent booking for the same desk serializes behind it.
func (r *DeskRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Desk, error) {
	const q = `SELECT id, floor_id, desk_number, status FROM desks WHERE id = ? FOR UPDATE`
	var d model.Desk
	if err := tx.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.FloorID, &d.Number, &d.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeskNotFound
		}
		return nil, err
	}
	return &d, nil
}
