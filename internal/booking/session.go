package booking

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// State is the position of the drill-down state machine.  Desk interaction
// (detail view, booking draft) is a parallel sub-flow layered on top of
// StateFloorChosen, not a further state.
type State int

const (
	StateNoLocation State = iota
	StateLocationChosen
	StateOfficeChosen
	StateFloorChosen
)

func (s State) String() string {
	switch s {
	case StateLocationChosen:
		return "LocationChosen"
	case StateOfficeChosen:
		return "OfficeChosen"
	case StateFloorChosen:
		return "FloorChosen"
	default:
		return "NoLocation"
	}
}

// RosterEntry is a desk decorated with its resolved status and display label.
type RosterEntry struct {
	Desk   Desk
	Status Status
	Label  string
}

// Session owns the transient view state for a single drill-down session:
// the selection context, the loaded option lists, the desk roster, and any
// open detail view or booking draft.  All state is guarded by one mutex;
// backend calls are made outside the lock so a selection change can land
// while a fetch is in flight, and each roster fetch is tagged with the
// selection it was issued for so stale responses are discarded instead of
// overwriting newer state.
type Session struct {
	mu       sync.Mutex
	backend  Backend
	notifier Notifier
	userID   string
	now      func() time.Time

	locationID string
	officeID   string
	floorID    string
	date       string

	locations []Option
	offices   []Option
	floors    []Option

	roster    []RosterEntry
	rosterSeq uint64

	detail        *Detail
	cancelPending bool
	draft         *Draft
	reconciling   bool

	feed *Feed
}

// NewSession creates a session for the given viewer.  The selected date
// defaults to today in the viewer's local calendar.  A nil notifier falls
// back to the standard logger.
func NewSession(backend Backend, notifier Notifier, userID string) *Session {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	s := &Session{
		backend:  backend,
		notifier: notifier,
		userID:   userID,
		now:      time.Now,
		feed:     NewFeed(backend, userID),
	}
	s.date = s.today()
	return s
}

func (s *Session) today() string { return s.now().Format(dateLayout) }

// Start populates the top-level location list.  It is the only fetch that
// runs before any selection exists.
func (s *Session) Start(ctx context.Context) error {
	opts, err := s.backend.ListLocations(ctx)
	if err != nil {
		log.Printf("session: list locations failed: %v", err)
		s.notifier.Notify("Error", "Unable to load locations", SeverityError)
		return err
	}
	s.mu.Lock()
	s.locations = opts
	s.mu.Unlock()
	return nil
}

// State returns the current drill-down state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.floorID != "":
		return StateFloorChosen
	case s.officeID != "":
		return StateOfficeChosen
	case s.locationID != "":
		return StateLocationChosen
	default:
		return StateNoLocation
	}
}

// SelectLocation records a location choice.  Everything below the location
// is invalidated before the office list is fetched: office and floor
// selections, their option lists, the desk roster, and any open detail or
// draft.  Stale children must never be displayed against a new parent.
func (s *Session) SelectLocation(ctx context.Context, locationID string) error {
	s.mu.Lock()
	s.locationID = locationID
	s.officeID = ""
	s.floorID = ""
	s.offices = nil
	s.floors = nil
	s.clearRosterLocked()
	s.closeViewsLocked()
	s.mu.Unlock()

	opts, err := s.backend.ListOffices(ctx, locationID)
	if err != nil {
		log.Printf("session: list offices for location %s failed: %v", locationID, err)
		s.notifier.Notify("Error", "Unable to load offices", SeverityError)
		return err
	}
	s.mu.Lock()
	if s.locationID == locationID {
		s.offices = opts
	}
	s.mu.Unlock()
	return nil
}

// SelectOffice records an office choice, invalidating the floor selection,
// the floor list, the roster and any open views before fetching floors.
func (s *Session) SelectOffice(ctx context.Context, officeID string) error {
	s.mu.Lock()
	if s.locationID == "" {
		s.mu.Unlock()
		return fmt.Errorf("booking: no location selected")
	}
	s.officeID = officeID
	s.floorID = ""
	s.floors = nil
	s.clearRosterLocked()
	s.closeViewsLocked()
	s.mu.Unlock()

	opts, err := s.backend.ListFloors(ctx, officeID)
	if err != nil {
		log.Printf("session: list floors for office %s failed: %v", officeID, err)
		s.notifier.Notify("Error", "Unable to load floors", SeverityError)
		return err
	}
	s.mu.Lock()
	if s.officeID == officeID {
		s.floors = opts
	}
	s.mu.Unlock()
	return nil
}

// SelectFloor records a floor choice and loads the desk roster for the
// (floor, date) pair.  FloorChosen is the terminal drill-down state.
func (s *Session) SelectFloor(ctx context.Context, floorID string) error {
	s.mu.Lock()
	if s.officeID == "" {
		s.mu.Unlock()
		return fmt.Errorf("booking: no office selected")
	}
	s.floorID = floorID
	s.clearRosterLocked()
	s.closeViewsLocked()
	s.mu.Unlock()
	return s.loadRoster(ctx)
}

// SelectDate changes the selected date.  While a floor is chosen this
// re-triggers the roster load for the new (floor, date) pair; otherwise the
// stored value simply changes with no externally visible effect.
func (s *Session) SelectDate(ctx context.Context, date string) error {
	if !ValidDate(date) {
		s.notifier.Notify("Invalid date", "Dates must be YYYY-MM-DD", SeverityWarning)
		return fmt.Errorf("booking: invalid date %q", date)
	}
	s.mu.Lock()
	s.date = date
	if s.floorID == "" {
		s.mu.Unlock()
		return nil
	}
	s.clearRosterLocked()
	s.closeViewsLocked()
	s.mu.Unlock()
	return s.loadRoster(ctx)
}

// clearRosterLocked empties the roster and advances the fetch sequence so
// any in-flight load for the previous selection lands on the floor.
func (s *Session) clearRosterLocked() {
	s.roster = nil
	s.rosterSeq++
}

// closeViewsLocked discards the open detail view, draft and cancel intent.
func (s *Session) closeViewsLocked() {
	s.detail = nil
	s.draft = nil
	s.cancelPending = false
}

// loadRoster fetches the desks for the current (floor, date) pair and
// replaces the roster in a single assignment.  The fetch is tagged with the
// selection context it was issued for; if the selection moved on while the
// call was outstanding the response is discarded.  On failure the roster
// for a still-current selection becomes empty rather than staying stale.
func (s *Session) loadRoster(ctx context.Context) error {
	s.mu.Lock()
	floorID, date, seq := s.floorID, s.date, s.rosterSeq
	s.mu.Unlock()
	if floorID == "" {
		return nil
	}

	desks, err := s.backend.ListDesks(ctx, floorID, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rosterSeq != seq || s.floorID != floorID || s.date != date {
		// A newer selection superseded this fetch; drop the response.
		return nil
	}
	if err != nil {
		s.roster = nil
		log.Printf("session: list desks for floor %s date %s failed: %v", floorID, date, err)
		s.notifier.Notify("Error", "Unable to load desks", SeverityError)
		return err
	}
	s.roster = decorateRoster(desks)
	return nil
}

// decorateRoster resolves each desk's display status and label.
func decorateRoster(desks []Desk) []RosterEntry {
	out := make([]RosterEntry, 0, len(desks))
	for _, d := range desks {
		st := ResolveStatus(d, d.Reservations)
		out = append(out, RosterEntry{
			Desk:   d,
			Status: st,
			Label:  fmt.Sprintf("Desk %s - %s", d.Number, st),
		})
	}
	return out
}

// OpenDesk handles a desk click.  A booked desk opens the reservation
// detail view, an available desk primes a booking draft, and a maintenance
// desk only raises a warning toast.
func (s *Session) OpenDesk(ctx context.Context, deskID string) error {
	s.mu.Lock()
	var entry *RosterEntry
	for i := range s.roster {
		if s.roster[i].Desk.ID == deskID {
			entry = &s.roster[i]
			break
		}
	}
	if entry == nil {
		s.mu.Unlock()
		return fmt.Errorf("booking: desk %s not in roster", deskID)
	}
	status := entry.Status
	date := s.date
	s.mu.Unlock()

	switch status {
	case StatusBooked:
		return s.openDetail(ctx, deskID, date)
	case StatusAvailable:
		s.OpenDraft(deskID)
		return nil
	default:
		s.notifier.Notify("Unavailable", "This desk is under maintenance", SeverityWarning)
		return nil
	}
}

// Snapshot accessors.  Each returns a copy so callers can render without
// holding session internals.

func (s *Session) Locations() []Option { s.mu.Lock(); defer s.mu.Unlock(); return append([]Option(nil), s.locations...) }
func (s *Session) Offices() []Option  { s.mu.Lock(); defer s.mu.Unlock(); return append([]Option(nil), s.offices...) }
func (s *Session) Floors() []Option   { s.mu.Lock(); defer s.mu.Unlock(); return append([]Option(nil), s.floors...) }

func (s *Session) Roster() []RosterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RosterEntry(nil), s.roster...)
}

func (s *Session) Date() string { s.mu.Lock(); defer s.mu.Unlock(); return s.date }

// Reconciling reports whether a post-cancellation reconciliation is in
// flight.
func (s *Session) Reconciling() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.reconciling }

// Feed returns the viewer's my-reservations feed bound to this session.
func (s *Session) Feed() *Feed { return s.feed }
