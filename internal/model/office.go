package model

import "time"

// Office is a building or branch within a location.
//
// Fields:
//  ID         – UUID primary key.
//  LocationID – parent location.
//  Name       – display name of the office.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Office struct {
	ID         string    // offices.id
	LocationID string    // offices.location_id
	Name       string    // offices.name
	CreatedAt  time.Time // offices.created_at
	UpdatedAt  time.Time // offices.updated_at
}
