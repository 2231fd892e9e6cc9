package booking

import (
	"context"
	"log"
)

// missingName is shown for any relationship the backend omitted.  Partial
// data must never crash the view.
const missingName = "N/A"

// Detail is the view model for a clicked, already-booked desk.
type Detail struct {
	Reservation  Reservation
	DeskName     string
	FloorName    string
	OfficeName   string
	LocationName string
	OwnerName    string
	CanCancel    bool
}

// openDetail fetches the reservation bound to a booked desk and installs
// the detail view.  Display names missing from the record default to "N/A".
func (s *Session) openDetail(ctx context.Context, deskID, date string) error {
	res, err := s.backend.GetDeskReservation(ctx, deskID, date)
	if err != nil {
		log.Printf("session: reservation for desk %s date %s failed: %v", deskID, date, err)
		s.notifier.Notify("Error", "Unable to load reservation", SeverityError)
		return err
	}
	if res == nil {
		// The roster said booked but the backend no longer agrees; the
		// next roster load will straighten this out.
		s.notifier.Notify("Not found", "No reservation exists for this desk", SeverityWarning)
		return nil
	}
	det := buildDetail(*res, s.userID, s.today())
	s.mu.Lock()
	s.detail = &det
	s.cancelPending = false
	s.mu.Unlock()
	return nil
}

// buildDetail derives the detail view model from a reservation record.
func buildDetail(res Reservation, viewerID, today string) Detail {
	return Detail{
		Reservation:  res,
		DeskName:     orMissing(res.DeskName),
		FloorName:    orMissing(res.FloorName),
		OfficeName:   orMissing(res.OfficeName),
		LocationName: orMissing(res.LocationName),
		OwnerName:    orMissing(res.OwnerName),
		CanCancel:    canCancel(res, viewerID, today),
	}
}

// canCancel is true only when the reservation's day has not passed and the
// viewer is its owner or creator.  Past-dated reservations are never
// cancellable, regardless of ownership.
func canCancel(res Reservation, viewerID, today string) bool {
	if !dateOnOrAfter(res.Date, today) {
		return false
	}
	return viewerID == res.OwnerID || viewerID == res.CreatorID
}

func orMissing(s string) string {
	if s == "" {
		return missingName
	}
	return s
}

// Detail returns a copy of the open detail view, or nil when none is open.
func (s *Session) Detail() *Detail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return nil
	}
	det := *s.detail
	return &det
}
