package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/desk-reservation/internal/model"
)

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides CRUD operations for desk reservations.  A
// reservation is never deleted; cancellation is a status transition to
// 'Cancelled' so the history stays auditable.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for transaction management in handlers.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ReservationDetail is a reservation joined with the display names of its
// desk, floor, office and location, plus the booking user's name.  The
// relational names are nullable; a missing join must not fail the query.
type ReservationDetail struct {
	ID           string  `json:"id"`
	DeskID       string  `json:"desk_id"`
	OwnerID      string  `json:"owner_id"`
	CreatorID    string  `json:"creator_id"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	BookingName  string  `json:"booking_name"`
	DeskName     *string `json:"desk_name,omitempty"`
	FloorName    *string `json:"floor_name,omitempty"`
	OfficeName   *string `json:"office_name,omitempty"`
	LocationName *string `json:"location_name,omitempty"`
	OwnerName    *string `json:"owner_name,omitempty"`
}

const detailSelect = `SELECT r.id, r.desk_id, r.user_id, r.created_by,
	       DATE_FORMAT(r.reservation_date, '%Y-%m-%d'), r.status, r.booking_name,
	       CONCAT('Desk ', d.desk_number), f.name, o.name, l.name, u.display_name
	FROM reservations r
	LEFT JOIN desks d     ON d.id = r.desk_id
	LEFT JOIN floors f    ON f.id = d.floor_id
	LEFT JOIN offices o   ON o.id = f.office_id
	LEFT JOIN locations l ON l.id = o.location_id
	LEFT JOIN users u     ON u.id = r.user_id`

// scanDetail reads one detailSelect row into a ReservationDetail.
func scanDetail(row interface{ Scan(...any) error }) (*ReservationDetail, error) {
	var det ReservationDetail
	var deskName, floorName, officeName, locationName, ownerName sql.NullString
	if err := row.Scan(
		&det.ID, &det.DeskID, &det.OwnerID, &det.CreatorID,
		&det.Date, &det.Status, &det.BookingName,
		&deskName, &floorName, &officeName, &locationName, &ownerName,
	); err != nil {
		return nil, err
	}
	if deskName.Valid {
		v := deskName.String
		det.DeskName = &v
	}
	if floorName.Valid {
		v := floorName.String
		det.FloorName = &v
	}
	if officeName.Valid {
		v := officeName.String
		det.OfficeName = &v
	}
	if locationName.Valid {
		v := locationName.String
		det.LocationName = &v
	}
	if ownerName.Valid {
		v := ownerName.String
		det.OwnerName = &v
	}
	return &det, nil
}

// CreateTx inserts a reservation within an existing transaction, generating
// a UUID for the record.  The caller must have verified desk availability
// under the same transaction and must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	res.ID = uuid.NewString()
	if res.Status == "" {
		res.Status = model.ReservationStatusBooked
	}
	const q = `INSERT INTO reservations (id, desk_id, user_id, created_by, reservation_date, status, booking_name)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, res.ID, res.DeskID, res.UserID, res.CreatedBy, res.Date, res.Status, res.BookingName)
	return err
}

// HasActiveForDeskDateTx reports whether a non-cancelled reservation
// already exists for the desk on the given date.  Runs inside the booking
// transaction so the check and the insert are atomic.
func (r *ReservationRepo) HasActiveForDeskDateTx(ctx context.Context, tx *sql.Tx, deskID, date string) (bool, error) {
	const q = `SELECT 1 FROM reservations
	           WHERE desk_id = ? AND reservation_date = ? AND status <> 'Cancelled'
	           LIMIT 1`
	var one int
	err := tx.QueryRowContext(ctx, q, deskID, date).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetActiveByDesk returns the non-cancelled reservation for a desk on the
// given date, joined with its display names.  Returns
// ErrReservationNotFound when the desk has no active reservation that day.
func (r *ReservationRepo) GetActiveByDesk(ctx context.Context, deskID, date string) (*ReservationDetail, error) {
	const q = detailSelect + `
	WHERE r.desk_id = ? AND r.reservation_date = ? AND r.status <> 'Cancelled'
	LIMIT 1`
	det, err := scanDetail(r.db.QueryRowContext(ctx, q, deskID, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return det, nil
}

// GetByIDTx loads a reservation by ID within a transaction, locking the
// row for the duration.  Returns ErrReservationNotFound when absent.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Reservation, error) {
	const q = `SELECT id, desk_id, user_id, created_by,
	                  DATE_FORMAT(reservation_date, '%Y-%m-%d'), status, booking_name
	           FROM reservations WHERE id = ? FOR UPDATE`
	var res model.Reservation
	if err := tx.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.DeskID, &res.UserID, &res.CreatedBy, &res.Date, &res.Status, &res.BookingName,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// CancelTx transitions a reservation to Cancelled within a transaction.
// Returns ErrConflict when the reservation was already cancelled.
func (r *ReservationRepo) CancelTx(ctx context.Context, tx *sql.Tx, id string) error {
	const q = `UPDATE reservations
	           SET status = 'Cancelled', updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status <> 'Cancelled'`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// ListByUser returns all reservations belonging to a user, newest date
// first, each joined with its display names.  An empty slice is returned
// when the user has none.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID string) ([]ReservationDetail, error) {
	const q = detailSelect + `
	WHERE r.user_id = ?
	ORDER BY r.reservation_date DESC, r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		det, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
