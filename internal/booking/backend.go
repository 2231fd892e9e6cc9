// Package booking implements the desk availability and reservation workflow:
// resolving a desk's displayable status for a chosen date, driving the
// location → office → floor drill-down, and keeping the displayed roster and
// reservation state consistent after bookings and cancellations against an
// eventually consistent backend.
package booking

import "context"

// DeskStatus is the static status stored on a desk record.  It is
// independent of any reservation; Under_Maintenance and Unavailable both
// render as maintenance regardless of bookings.
type DeskStatus string

const (
	DeskAvailable        DeskStatus = "Available"
	DeskUnderMaintenance DeskStatus = "Under_Maintenance"
	DeskUnavailable      DeskStatus = "Unavailable"
)

// ReservationStatus enumerates the reservation lifecycle.  A reservation is
// mutable only via cancellation; there is no edit-in-place.
type ReservationStatus string

const (
	ReservationBooked    ReservationStatus = "Booked"
	ReservationCheckedIn ReservationStatus = "Checked-In"
	ReservationCancelled ReservationStatus = "Cancelled"
)

// Option is a selectable hierarchy node (location, office or floor).
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Desk is a desk on a floor together with any reservation overlapping the
// queried date.  The backend returns at most the relevant reservation for
// that date, not full history.
type Desk struct {
	ID           string        `json:"id"`
	Number       string        `json:"number"`
	Status       DeskStatus    `json:"status"`
	Reservations []Reservation `json:"reservations"`
}

// Reservation is a single-day desk booking.  The nested display names are
// populated only by the detail and feed operations and may be empty when the
// backend omits a relationship.
type Reservation struct {
	ID          string            `json:"id"`
	DeskID      string            `json:"desk_id"`
	OwnerID     string            `json:"owner_id"`
	CreatorID   string            `json:"creator_id"`
	Date        string            `json:"date"` // YYYY-MM-DD
	Status      ReservationStatus `json:"status"`
	BookingName string            `json:"booking_name"`

	DeskName     string `json:"desk_name,omitempty"`
	FloorName    string `json:"floor_name,omitempty"`
	OfficeName   string `json:"office_name,omitempty"`
	LocationName string `json:"location_name,omitempty"`
	OwnerName    string `json:"owner_name,omitempty"`
}

// Backend is the remote data service the workflow consumes.  All calls are
// blocking; the caller's context carries cancellation.  Identifiers and user
// ids are opaque strings compared only for equality, and dates are exchanged
// as YYYY-MM-DD calendar-day strings.
type Backend interface {
	ListLocations(ctx context.Context) ([]Option, error)
	ListOffices(ctx context.Context, locationID string) ([]Option, error)
	ListFloors(ctx context.Context, officeID string) ([]Option, error)
	ListDesks(ctx context.Context, floorID, date string) ([]Desk, error)
	GetDeskReservation(ctx context.Context, deskID, date string) (*Reservation, error)
	CreateReservation(ctx context.Context, deskID, date, bookingName string) (string, error)
	CancelReservation(ctx context.Context, reservationID string) error
	ListUserReservations(ctx context.Context, userID string) ([]Reservation, error)
}
