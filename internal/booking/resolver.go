package booking

// Status is the three-valued display state of a desk, derived from its
// static status plus any reservation for the selected date.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusBooked      Status = "Booked"
	StatusMaintenance Status = "Maintenance"
)

// ResolveStatus maps a desk's static status and its reservations for the
// selected date to a display status.  The static status takes precedence:
// a desk that is Under_Maintenance or Unavailable resolves to Maintenance
// even when a reservation exists.  Otherwise a Booked or Checked-In
// reservation resolves to Booked, and anything else to Available.
//
// When the backend (incorrectly) returns more than one reservation for a
// single date, only the first entry is consulted.  That tie-break is a
// known simplification carried over deliberately; callers must not rely on
// it being correct for overlapping reservations.
//
// The function is pure: no clock, no I/O, same inputs give same output.
func ResolveStatus(desk Desk, reservations []Reservation) Status {
	if desk.Status == DeskUnderMaintenance || desk.Status == DeskUnavailable {
		return StatusMaintenance
	}
	if len(reservations) > 0 {
		switch reservations[0].Status {
		case ReservationBooked, ReservationCheckedIn:
			return StatusBooked
		}
	}
	return StatusAvailable
}
