package model

import "time"

// Reservation lifecycle statuses as stored in reservations.status.  A
// reservation is created as Booked and only ever transitions to Cancelled;
// Checked-In is set by an external check-in flow and still counts as an
// active booking.
const (
	ReservationStatusBooked    = "Booked"
	ReservationStatusCheckedIn = "Checked-In"
	ReservationStatusCancelled = "Cancelled"
)

// Reservation records a single-day desk booking.  At most one active
// (non-cancelled) reservation exists per desk per date.
//
// Fields:
//  ID          – UUID primary key.
//  DeskID      – reserved desk.
//  UserID      – user the reservation is for.
//  CreatedBy   – user who created the reservation (may differ from UserID
//                when booked on someone's behalf).
//  Date        – calendar day of the booking, stored as DATE.
//  Status      – lifecycle status (see ReservationStatus* constants).
//  BookingName – display name entered when booking.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Reservation struct {
	ID          string    // reservations.id
	DeskID      string    // reservations.desk_id
	UserID      string    // reservations.user_id
	CreatedBy   string    // reservations.created_by
	Date        string    // reservations.reservation_date (YYYY-MM-DD)
	Status      string    // reservations.status
	BookingName string    // reservations.booking_name
	CreatedAt   time.Time // reservations.created_at
	UpdatedAt   time.Time // reservations.updated_at
}
