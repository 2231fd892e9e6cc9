package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/model"
	"github.com/iliyamo/desk-reservation/internal/queue"
	"github.com/iliyamo/desk-reservation/internal/repository"
)

// ReservationHandler serves reservation reads and the two write
// operations: booking a desk for a date and cancelling a reservation.
// Writes run inside a transaction that locks the desk row so two users
// racing for the same desk and date serialize; the loser gets a conflict.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Desks        *repository.DeskRepo

	// Publish, when set, emits a domain event after a successful write.
	// Broker failures never fail the request.
	Publish func(ctx context.Context, ev queue.ReservationEvent) error
}

type createReservationRequest struct {
	DeskID      string `json:"desk_id"`
	Date        string `json:"date"`
	BookingName string `json:"booking_name"`
}

// GetDeskReservation returns the active reservation for a desk on a date,
// joined with its display names.  404 means the desk is free that day.
func (h *ReservationHandler) GetDeskReservation(c echo.Context) error {
	deskID := c.Param("id")
	date, ok := dateParam(c)
	if !ok {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	det, err := h.Reservations.GetActiveByDesk(c.Request().Context(), deskID, date)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no reservation for this desk and date"})
		}
		c.Logger().Errorf("get reservation for desk %s on %s: %v", deskID, date, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": det})
}

// Create books a desk for the authenticated user on a single date.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.BookingName = strings.TrimSpace(req.BookingName)
	if req.DeskID == "" || req.BookingName == "" {
		return badRequest(c, "desk_id and booking_name are required")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	today := time.Now().UTC().Format("2006-01-02")
	if req.Date < today {
		return badRequest(c, "date must not be in the past")
	}
	uid := getUserID(c)
	ctx := c.Request().Context()

	tx, err := h.Desks.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("create reservation: begin tx: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	desk, err := h.Desks.GetByIDTx(ctx, tx, req.DeskID)
	if err != nil {
		if errors.Is(err, repository.ErrDeskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "desk not found"})
		}
		c.Logger().Errorf("create reservation: load desk %s: %v", req.DeskID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	if desk.Status != model.DeskStatusAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"error": "desk is not bookable"})
	}

	taken, err := h.Reservations.HasActiveForDeskDateTx(ctx, tx, desk.ID, req.Date)
	if err != nil {
		c.Logger().Errorf("create reservation: availability check: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "desk is already booked for this date"})
	}

	res := model.Reservation{
		DeskID:      desk.ID,
		UserID:      uid,
		CreatedBy:   uid,
		Date:        req.Date,
		BookingName: req.BookingName,
	}
	if err := h.Reservations.CreateTx(ctx, tx, &res); err != nil {
		c.Logger().Errorf("create reservation: insert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("create reservation: commit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	committed = true

	h.publish(queue.ReservationEvent{
		Type:          queue.EventReservationBooked,
		ReservationID: res.ID,
		DeskID:        desk.ID,
		DeskNumber:    desk.Number,
		FloorID:       desk.FloorID,
		UserID:        res.UserID,
		CreatedBy:     res.CreatedBy,
		Date:          res.Date,
		BookingName:   res.BookingName,
	})

	return c.JSON(http.StatusCreated, echo.Map{"id": res.ID})
}

// Cancel transitions a reservation to Cancelled.  Only the reservation's
// owner or creator may cancel, and only for today or a future date.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id := c.Param("id")
	uid := getUserID(c)
	ctx := c.Request().Context()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Errorf("cancel reservation: begin tx: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancellation failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		c.Logger().Errorf("cancel reservation %s: load: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancellation failed"})
	}
	if uid != res.UserID && uid != res.CreatedBy {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	}
	today := time.Now().UTC().Format("2006-01-02")
	if res.Date < today {
		return c.JSON(http.StatusConflict, echo.Map{"error": "past reservations cannot be cancelled"})
	}

	if err := h.Reservations.CancelTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is already cancelled"})
		}
		c.Logger().Errorf("cancel reservation %s: update: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancellation failed"})
	}

	var deskNumber, floorID string
	if desk, err := h.Desks.GetByIDTx(ctx, tx, res.DeskID); err == nil {
		deskNumber, floorID = desk.Number, desk.FloorID
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Errorf("cancel reservation %s: commit: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancellation failed"})
	}
	committed = true

	h.publish(queue.ReservationEvent{
		Type:          queue.EventReservationCancelled,
		ReservationID: res.ID,
		DeskID:        res.DeskID,
		DeskNumber:    deskNumber,
		FloorID:       floorID,
		UserID:        res.UserID,
		CreatedBy:     res.CreatedBy,
		Date:          res.Date,
		BookingName:   res.BookingName,
	})

	return c.NoContent(http.StatusNoContent)
}

// ListMine returns all of the authenticated user's reservations, newest
// date first, with display names for rendering.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	items, err := h.Reservations.ListByUser(c.Request().Context(), getUserID(c))
	if err != nil {
		c.Logger().Errorf("list reservations: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// publish emits ev on a background goroutine so broker latency never
// shows up in request latency.
func (h *ReservationHandler) publish(ev queue.ReservationEvent) {
	if h.Publish == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
