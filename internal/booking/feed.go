package booking

import (
	"context"
	"log"
	"sync"
	"time"
)

// FeedRow is a reservation in the viewer's feed with its derived
// cancel-eligibility flag.
type FeedRow struct {
	Reservation Reservation
	CanCancel   bool
}

// Feed is the read-only view of the current user's reservations.  It is
// independent of the drill-down hierarchy and is refreshed on demand, in
// particular after any mutation elsewhere in the system.
type Feed struct {
	mu      sync.Mutex
	backend Backend
	userID  string
	now     func() time.Time
	rows    []FeedRow
}

// NewFeed builds a feed for the given user.
func NewFeed(backend Backend, userID string) *Feed {
	return &Feed{backend: backend, userID: userID, now: time.Now}
}

// Refresh pulls the user's reservations and recomputes each row's
// cancel-eligibility: status Booked and date on or after today, compared at
// day granularity.  On failure the feed resets to empty rather than keeping
// stale rows.
func (f *Feed) Refresh(ctx context.Context) error {
	list, err := f.backend.ListUserReservations(ctx, f.userID)
	if err != nil {
		f.mu.Lock()
		f.rows = nil
		f.mu.Unlock()
		log.Printf("feed: list reservations for user %s failed: %v", f.userID, err)
		return err
	}
	today := f.now().Format(dateLayout)
	rows := make([]FeedRow, 0, len(list))
	for _, r := range list {
		rows = append(rows, FeedRow{
			Reservation: r,
			CanCancel:   r.Status == ReservationBooked && dateOnOrAfter(r.Date, today),
		})
	}
	f.mu.Lock()
	f.rows = rows
	f.mu.Unlock()
	return nil
}

// Rows returns a copy of the current feed rows.
func (f *Feed) Rows() []FeedRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FeedRow(nil), f.rows...)
}
