package model

import "time"

// Floor is a level inside an office.  Desks hang off floors.
type Floor struct {
	ID        string    // floors.id
	OfficeID  string    // floors.office_id
	Name      string    // floors.name
	CreatedAt time.Time // floors.created_at
	UpdatedAt time.Time // floors.updated_at
}
