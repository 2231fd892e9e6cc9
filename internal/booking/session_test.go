package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeBackend is an in-memory Backend with per-operation error injection,
// call counters and an optional hook fired during desk listing.  The hook
// lets tests mutate the session while a fetch is "in flight".
type fakeBackend struct {
	mu sync.Mutex

	locations []Option
	offices   map[string][]Option
	floors    map[string][]Option
	desks     map[string][]Desk        // keyed floorID|date
	deskRes   map[string]*Reservation  // keyed deskID|date
	userRes   []Reservation

	locationsErr error
	officesErr   error
	floorsErr    error
	desksErr     error
	resErr       error
	createErr    error
	cancelErr    error
	userErr      error

	createID string

	listDesksCalls int
	createCalls    int
	cancelCalls    int
	userCalls      int

	onListDesks func(floorID, date string)
}

func key(a, b string) string { return a + "|" + b }

func (f *fakeBackend) ListLocations(ctx context.Context) ([]Option, error) {
	if f.locationsErr != nil {
		return nil, f.locationsErr
	}
	return append([]Option(nil), f.locations...), nil
}

func (f *fakeBackend) ListOffices(ctx context.Context, locationID string) ([]Option, error) {
	if f.officesErr != nil {
		return nil, f.officesErr
	}
	return append([]Option(nil), f.offices[locationID]...), nil
}

func (f *fakeBackend) ListFloors(ctx context.Context, officeID string) ([]Option, error) {
	if f.floorsErr != nil {
		return nil, f.floorsErr
	}
	return append([]Option(nil), f.floors[officeID]...), nil
}

func (f *fakeBackend) ListDesks(ctx context.Context, floorID, date string) ([]Desk, error) {
	f.mu.Lock()
	f.listDesksCalls++
	hook := f.onListDesks
	f.mu.Unlock()
	if hook != nil {
		hook(floorID, date)
	}
	if f.desksErr != nil {
		return nil, f.desksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Desk(nil), f.desks[key(floorID, date)]...), nil
}

func (f *fakeBackend) GetDeskReservation(ctx context.Context, deskID, date string) (*Reservation, error) {
	if f.resErr != nil {
		return nil, f.resErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.deskRes[key(deskID, date)]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBackend) CreateReservation(ctx context.Context, deskID, date, bookingName string) (string, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	if f.createID != "" {
		return f.createID, nil
	}
	return "res-new", nil
}

func (f *fakeBackend) CancelReservation(ctx context.Context, reservationID string) error {
	f.mu.Lock()
	f.cancelCalls++
	f.mu.Unlock()
	return f.cancelErr
}

func (f *fakeBackend) ListUserReservations(ctx context.Context, userID string) ([]Reservation, error) {
	f.mu.Lock()
	f.userCalls++
	f.mu.Unlock()
	if f.userErr != nil {
		return nil, f.userErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Reservation(nil), f.userRes...), nil
}

// quietNotifier records toasts without logging.
type quietNotifier struct {
	mu     sync.Mutex
	toasts []string
}

func (n *quietNotifier) Notify(title, message string, severity Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, string(severity)+": "+title)
}

// fixedClock pins the session's notion of today.
func fixedClock(day string) func() time.Time {
	t, _ := time.Parse(dateLayout, day)
	return func() time.Time { return t }
}

// newTestHierarchy builds a fake with one location/office/floor and the
// given desks on floor F1 for the given date.
func newTestHierarchy(date string, desks ...Desk) *fakeBackend {
	return &fakeBackend{
		locations: []Option{{ID: "L1", Name: "HQ"}},
		offices:   map[string][]Option{"L1": {{ID: "O1", Name: "North"}}},
		floors:    map[string][]Option{"O1": {{ID: "F1", Name: "Third"}}},
		desks:     map[string][]Desk{key("F1", date): desks},
		deskRes:   map[string]*Reservation{},
	}
}

func drillToFloor(t *testing.T, s *Session) {
	t.Helper()
	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.SelectLocation(ctx, "L1"); err != nil {
		t.Fatalf("SelectLocation: %v", err)
	}
	if err := s.SelectOffice(ctx, "O1"); err != nil {
		t.Fatalf("SelectOffice: %v", err)
	}
	if err := s.SelectFloor(ctx, "F1"); err != nil {
		t.Fatalf("SelectFloor: %v", err)
	}
}

func TestStateProgression(t *testing.T) {
	fake := newTestHierarchy("2024-06-10", Desk{ID: "D1", Number: "1", Status: DeskAvailable})
	s := NewSession(fake, &quietNotifier{}, "U1")
	s.now = fixedClock("2024-06-10")
	s.date = "2024-06-10"

	if got := s.State(); got != StateNoLocation {
		t.Fatalf("initial state = %v, want NoLocation", got)
	}
	ctx := context.Background()
	s.Start(ctx)
	s.SelectLocation(ctx, "L1")
	if got := s.State(); got != StateLocationChosen {
		t.Fatalf("state = %v, want LocationChosen", got)
	}
	s.SelectOffice(ctx, "O1")
	if got := s.State(); got != StateOfficeChosen {
		t.Fatalf("state = %v, want OfficeChosen", got)
	}
	s.SelectFloor(ctx, "F1")
	if got := s.State(); got != StateFloorChosen {
		t.Fatalf("state = %v, want FloorChosen", got)
	}
	if len(s.Roster()) != 1 {
		t.Fatalf("roster has %d entries, want 1", len(s.Roster()))
	}
}

func TestSelectLocationClearsEverythingBelow(t *testing.T) {
	fake := newTestHierarchy("2024-06-10", Desk{ID: "D1", Number: "1", Status: DeskAvailable})
	fake.offices["L2"] = nil
	s := NewSession(fake, &quietNotifier{}, "U1")
	s.now = fixedClock("2024-06-10")
	s.date = "2024-06-10"
	drillToFloor(t, s)
	s.OpenDraft("D1")

	if err := s.SelectLocation(context.Background(), "L2"); err != nil {
		t.Fatalf("SelectLocation: %v", err)
	}
	if got := s.State(); got != StateLocationChosen {
		t.Errorf("state = %v, want LocationChosen", got)
	}
	if len(s.Floors()) != 0 {
		t.Errorf("floor list not cleared: %v", s.Floors())
	}
	if len(s.Roster()) != 0 {
		t.Errorf("roster not cleared: %v", s.Roster())
	}
	if s.Draft() != nil {
		t.Errorf("draft survived a location change")
	}
	if s.Detail() != nil {
		t.Errorf("detail survived a location change")
	}
}

func TestSelectOfficeClearsFloorAndRoster(t *testing.T) {
	fake := newTestHierarchy("2024-06-10", Desk{ID: "D1", Number: "1", Status: DeskAvailable})
	fake.offices["L1"] = append(fake.offices["L1"], Option{ID: "O2", Name: "South"})
	s := NewSession(fake, &quietNotifier{}, "U1")
	s.now = fixedClock("2024-06-10")
	s.date = "2024-06-10"
	drillToFloor(t, s)

	if err := s.SelectOffice(context.Background(), "O2"); err != nil {
		t.Fatalf("SelectOffice: %v", err)
	}
	if got := s.State(); got != StateOfficeChosen {
		t.Errorf("state = %v, want OfficeChosen", got)
	}
	if len(s.Roster()) != 0 {
		t.Errorf("roster not cleared on office change")
	}
}

func TestDateChangeWithoutFloorDoesNotFetch(t *testing.T) {
	fake := newTestHierarchy("2024-06-10")
	s := NewSession(fake, &quietNotifier{}, "U1")

	if err := s.SelectDate(context.Background(), "2024-06-11"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if fake.listDesksCalls != 0 {
		t.Errorf("date change without a floor triggered %d desk fetches", fake.listDesksCalls)
	}
	if got := s.Date(); got != "2024-06-11" {
		t.Errorf("date = %q, want 2024-06-11", got)
	}
}

func TestDateChangeWithFloorReloadsRoster(t *testing.T) {
	fake := newTestHierarchy("2024-06-10", Desk{ID: "D1", Number: "1", Status: DeskAvailable})
	fake.desks[key("F1", "2024-06-11")] = []Desk{
		{ID: "D1", Number: "1", Status: DeskAvailable, Reservations: []Reservation{{ID: "R1", Status: ReservationBooked}}},
	}
	s := NewSession(fake, &quietNotifier{}, "U1")
	s.now = fixedClock("2024-06-10")
	s.date = "2024-06-10"
	drillToFloor(t, s)

	if err := s.SelectDate(context.Background(), "2024-06-11"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	roster := s.Roster()
	if len(roster) != 1 || roster[0].Status != StatusBooked {
		t.Fatalf("roster after date change = %+v, want one Booked entry", roster)
	}
}

func TestInvalidDateRejected(t *testing.T) {
	fake := newTestHierarchy("2024-06-10")
	s := NewSession(fake, &quietNotifier{}, "U1")
	if err := s.SelectDate(context.Background(), "June 10"); err == nil {
		t.Fatal("malformed date accepted")
	}
}

func TestStaleRosterFetchDiscarded(t *testing.T) {
	fake := newTestHierarchy("2024-06-10", Desk{ID: "D1", Number: "1", Status: DeskAvailable})
	fake.offices["L2"] = nil
	s := NewSession(fake, &quietNotifier{}, "U1")
	s.now = fixedClock("2024-06-10")
	s.date = "2024-06-10"

	ctx := context.Background()
	s.Start(ctx)
	s.SelectLocation(ctx, "L1")
	s.SelectOffice(ctx, "O1")

	// While the roster fetch for F1 is outstanding, the user picks a new
	// location.  The response must not overwrite state for the newer
	// selection.
	fired := false
	fake.onListDesks = func(floorID, date string) {
		if fired {
			return
		}
		fired = true
		if err := s.SelectLocation(ctx, "L2"); err != nil {
			t.Errorf("SelectLocation during fetch: %v", err)
		}
	}
	if err := s.SelectFloor(ctx, "F1"); err != nil {
		t.Fatalf("SelectFloor: %v", err)
	}
	if got := len(s.Roster()); got != 0 {
		t.Fatalf("stale fetch populated roster with %d entries", got)
	}
	if got := s.State(); got != StateLocationChosen {
		t.Fatalf("state = %v, want LocationChosen after mid-fetch change", got)
	}
}

func TestRosterLoadFailureClearsRoster(t *testing.T) {
	fake := newTestHierarchy("2024-06-10", Desk{ID: "D1", Number: "1", Status: DeskAvailable})
	s := NewSession(fake, &quietNotifier{}, "U1")
	s.now = fixedClock("2024-06-10")
	s.date = "2024-06-10"
	drillToFloor(t, s)
	if len(s.Roster()) != 1 {
		t.Fatalf("setup: expected loaded roster")
	}

	fake.desksErr = errors.New("backend down")
	if err := s.SelectDate(context.Background(), "2024-06-12"); err == nil {
		t.Fatal("expected error from failed roster load")
	}
	if len(s.Roster()) != 0 {
		t.Fatal("failed load left a stale roster in place")
	}
}

func TestOpenDeskRouting(t *testing.T) {
	booked := Desk{ID: "D2", Number: "2", Status: DeskAvailable, Reservations: []Reservation{
		{ID: "R1", DeskID: "D2", OwnerID: "U1", Date: "2024-06-10", Status: ReservationBooked},
	}}
	free := Desk{ID: "D1", Number: "1", Status: DeskAvailable}
	maint := Desk{ID: "D3", Number: "3", Status: DeskUnderMaintenance}
	fake := newTestHierarchy("2024-06-10", free, booked, maint)
	fake.deskRes[key("D2", "2024-06-10")] = &Reservation{
		ID: "R1", DeskID: "D2", OwnerID: "U1", CreatorID: "U9",
		Date: "2024-06-10", Status: ReservationBooked, BookingName: "Standup",
	}
	notifier := &quietNotifier{}
	s := NewSession(fake, notifier, "U1")
	s.now = fixedClock("2024-06-10")
	s.date = "2024-06-10"
	drillToFloor(t, s)

	ctx := context.Background()

	// Free desk primes a draft, not a detail view.
	if err := s.OpenDesk(ctx, "D1"); err != nil {
		t.Fatalf("OpenDesk free: %v", err)
	}
	if s.Draft() == nil || s.Detail() != nil {
		t.Fatal("free desk click should open a draft only")
	}
	s.CloseDraft()

	// Booked desk opens the detail view with canCancel for the owner.
	if err := s.OpenDesk(ctx, "D2"); err != nil {
		t.Fatalf("OpenDesk booked: %v", err)
	}
	det := s.Detail()
	if det == nil {
		t.Fatal("booked desk click should open the detail view")
	}
	if !det.CanCancel {
		t.Error("owner on a same-day reservation should be able to cancel")
	}

	// Maintenance desk only warns.
	before := len(notifier.toasts)
	if err := s.OpenDesk(ctx, "D3"); err != nil {
		t.Fatalf("OpenDesk maintenance: %v", err)
	}
	if len(notifier.toasts) != before+1 {
		t.Error("maintenance desk click should raise a warning toast")
	}
}
