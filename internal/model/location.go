package model

import "time"

// Location is a top-level site in the desk hierarchy.  A location contains
// offices, which contain floors, which contain desks.  This struct
// corresponds to a row in the `locations` table.
//
// Fields:
//  ID        – UUID primary key.
//  Name      – display name of the location.
//  CreatedAt – timestamp when the location was created.
//  UpdatedAt – timestamp of last update.
type Location struct {
	ID        string    // locations.id
	Name      string    // locations.name
	CreatedAt time.Time // locations.created_at
	UpdatedAt time.Time // locations.updated_at
}
