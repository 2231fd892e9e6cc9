package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
)

// ErrValidation is returned when a booking or cancellation fails local
// checks before any remote call is made.
var ErrValidation = errors.New("booking: validation failed")

// Draft is an in-progress create request.  It exists only while the
// creation modal is open and is discarded on submit success or close.
type Draft struct {
	DeskID      string
	Date        string
	BookingName string
}

// OpenDraft primes a booking draft for a free desk on the selected date.
func (s *Session) OpenDraft(deskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = &Draft{DeskID: deskID, Date: s.date}
}

// SetBookingName updates the draft's booking name, if a draft is open.
func (s *Session) SetBookingName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft != nil {
		s.draft.BookingName = name
	}
}

// Draft returns a copy of the open draft, or nil when none is open.
func (s *Session) Draft() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil
	}
	d := *s.draft
	return &d
}

// CloseDraft discards the draft without submitting it.
func (s *Session) CloseDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}

// SubmitDraft validates and submits the open booking draft.  A draft with a
// missing desk, date or booking name fails locally without contacting the
// backend and stays open.  On success the just-booked desk is optimistically
// patched to Booked in the roster, without waiting for a re-fetch, and the
// draft closes.  On remote failure the draft stays open.
func (s *Session) SubmitDraft(ctx context.Context) error {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return fmt.Errorf("booking: no draft open")
	}
	draft := *s.draft
	s.mu.Unlock()

	if draft.DeskID == "" || draft.Date == "" || strings.TrimSpace(draft.BookingName) == "" {
		s.notifier.Notify("Missing details", "Desk, date and booking name are required", SeverityWarning)
		return ErrValidation
	}

	id, err := s.backend.CreateReservation(ctx, draft.DeskID, draft.Date, draft.BookingName)
	if err != nil {
		log.Printf("session: create reservation desk %s date %s failed: %v", draft.DeskID, draft.Date, err)
		s.notifier.Notify("Error", "Unable to book this desk", SeverityError)
		return err
	}

	// Optimistic patch: show the desk as booked immediately.  The next
	// authoritative roster read supersedes this projection, never the
	// reverse.
	s.mu.Lock()
	for i := range s.roster {
		if s.roster[i].Desk.ID != draft.DeskID {
			continue
		}
		res := Reservation{
			ID:          id,
			DeskID:      draft.DeskID,
			OwnerID:     s.userID,
			CreatorID:   s.userID,
			Date:        draft.Date,
			Status:      ReservationBooked,
			BookingName: draft.BookingName,
		}
		s.roster[i].Desk.Reservations = []Reservation{res}
		s.roster[i].Status = StatusBooked
		s.roster[i].Label = fmt.Sprintf("Desk %s - %s", s.roster[i].Desk.Number, StatusBooked)
		break
	}
	s.draft = nil
	s.mu.Unlock()

	s.notifier.Notify("Booked", "Your desk reservation was created", SeveritySuccess)
	return nil
}

// RequestCancel marks the open detail view as pending cancellation, the
// state a confirmation dialog represents.
func (s *Session) RequestCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail != nil {
		s.cancelPending = true
	}
}

// CancelRequested reports whether a cancellation is awaiting confirmation.
func (s *Session) CancelRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelPending
}

// ConfirmCancel submits the cancellation for the reservation shown in the
// detail view.  On success the detail view closes and a full reconciliation
// re-fetches both the roster and the viewer's reservation feed so any prior
// optimistic patch is superseded by authoritative data.  On failure the
// detail view stays open and the cancel intent resets to its pre-attempt
// value, making the attempt visibly reversible.
func (s *Session) ConfirmCancel(ctx context.Context) error {
	s.mu.Lock()
	if s.detail == nil {
		s.mu.Unlock()
		return fmt.Errorf("booking: no reservation open")
	}
	prevPending := s.cancelPending
	s.cancelPending = true
	resID := s.detail.Reservation.ID
	s.mu.Unlock()

	if err := s.backend.CancelReservation(ctx, resID); err != nil {
		s.mu.Lock()
		s.cancelPending = prevPending
		s.mu.Unlock()
		log.Printf("session: cancel reservation %s failed: %v", resID, err)
		s.notifier.Notify("Error", "Unable to cancel this reservation", SeverityError)
		return err
	}

	s.mu.Lock()
	s.detail = nil
	s.cancelPending = false
	s.mu.Unlock()
	s.notifier.Notify("Cancelled", "Your reservation was cancelled", SeveritySuccess)

	s.reconcile(ctx)
	return nil
}

// reconcile re-fetches the desk roster and the reservation feed
// concurrently and waits for both.  A failure of one fetch must not stop
// the other, and the reconciling flag clears once both settle either way so
// the UI never sticks in a refreshing state.
func (s *Session) reconcile(ctx context.Context) {
	s.mu.Lock()
	s.reconciling = true
	s.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = s.loadRoster(ctx)
	}()
	go func() {
		defer wg.Done()
		if err := s.feed.Refresh(ctx); err != nil {
			log.Printf("session: feed refresh during reconciliation failed: %v", err)
		}
	}()
	wg.Wait()

	s.mu.Lock()
	s.reconciling = false
	s.mu.Unlock()
}
