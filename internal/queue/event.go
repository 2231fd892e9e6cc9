// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried in ReservationEvent.Type.
const (
	EventReservationBooked    = "reservation.booked"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published whenever a reservation is booked or
// cancelled.  It carries enough display information for downstream
// consumers to log or notify without querying the primary database.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservation_id"`
	DeskID        string `json:"desk_id"`
	DeskNumber    string `json:"desk_number"`
	FloorID       string `json:"floor_id"`
	UserID        string `json:"user_id"`
	CreatedBy     string `json:"created_by"`
	Date          string `json:"date"`
	BookingName   string `json:"booking_name"`
	OccurredAt    string `json:"occurred_at"`
}
