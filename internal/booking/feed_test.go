package booking

import (
	"context"
	"errors"
	"testing"
)

func TestFeedCancelEligibility(t *testing.T) {
	fake := &fakeBackend{userRes: []Reservation{
		{ID: "R1", Date: "2024-06-11", Status: ReservationBooked},    // future, booked
		{ID: "R2", Date: "2024-06-10", Status: ReservationBooked},    // today, booked
		{ID: "R3", Date: "2024-06-09", Status: ReservationBooked},    // past, booked
		{ID: "R4", Date: "2024-06-11", Status: ReservationCheckedIn}, // future, not booked
		{ID: "R5", Date: "2024-06-11", Status: ReservationCancelled}, // future, cancelled
	}}
	f := NewFeed(fake, "U1")
	f.now = fixedClock("2024-06-10")

	if err := f.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	want := map[string]bool{"R1": true, "R2": true, "R3": false, "R4": false, "R5": false}
	rows := f.Rows()
	if len(rows) != len(want) {
		t.Fatalf("feed has %d rows, want %d", len(rows), len(want))
	}
	for _, row := range rows {
		if got := row.CanCancel; got != want[row.Reservation.ID] {
			t.Errorf("%s: CanCancel = %v, want %v", row.Reservation.ID, got, want[row.Reservation.ID])
		}
	}
}

func TestFeedRefreshFailureClearsRows(t *testing.T) {
	fake := &fakeBackend{userRes: []Reservation{{ID: "R1", Date: "2024-06-11", Status: ReservationBooked}}}
	f := NewFeed(fake, "U1")
	f.now = fixedClock("2024-06-10")
	if err := f.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(f.Rows()) != 1 {
		t.Fatal("setup: expected one row")
	}

	fake.userErr = errors.New("backend down")
	if err := f.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh failure")
	}
	if len(f.Rows()) != 0 {
		t.Error("failed refresh left stale rows")
	}
}
