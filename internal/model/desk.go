package model

import "time"

// Desk static statuses as stored in the desks.status column.  A desk that
// is Under_Maintenance or Unavailable cannot be booked regardless of its
// reservations.
const (
	DeskStatusAvailable        = "Available"
	DeskStatusUnderMaintenance = "Under_Maintenance"
	DeskStatusUnavailable      = "Unavailable"
)

// Desk is a bookable workplace on a floor.
//
// Fields:
//  ID        – UUID primary key.
//  FloorID   – parent floor.
//  Number    – display number, unique per floor.
//  Status    – static status (see DeskStatus* constants).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Desk struct {
	ID        string    // desks.id
	FloorID   string    // desks.floor_id
	Number    string    // desks.desk_number
	Status    string    // desks.status
	CreatedAt time.Time // desks.created_at
	UpdatedAt time.Time // desks.updated_at
}
