package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/model"
	"github.com/iliyamo/desk-reservation/internal/repository"
)

// DeskHandler serves the per-floor desk roster.
type DeskHandler struct {
	Floors *repository.FloorRepo
	Desks  *repository.DeskRepo
}

type deskReservationItem struct {
	ID          string `json:"id"`
	DeskID      string `json:"desk_id"`
	OwnerID     string `json:"owner_id"`
	CreatorID   string `json:"creator_id"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	BookingName string `json:"booking_name"`
}

type deskItem struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	Status       string                `json:"status"`
	Reservations []deskReservationItem `json:"reservations"`
}

// GetDesksByFloor lists every desk on a floor together with its active
// reservation for the requested date.  ?date= defaults to today; desks
// with no booking that day carry an empty reservations list so clients
// need no null handling.
func (h *DeskHandler) GetDesksByFloor(c echo.Context) error {
	floorID := c.Param("id")
	date, ok := dateParam(c)
	if !ok {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	if _, err := h.Floors.GetByID(c.Request().Context(), floorID); err != nil {
		if errors.Is(err, repository.ErrFloorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		c.Logger().Errorf("get floor %s: %v", floorID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load desks"})
	}

	desks, err := h.Desks.ListByFloorForDate(c.Request().Context(), floorID, date)
	if err != nil {
		c.Logger().Errorf("list desks for %s on %s: %v", floorID, date, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load desks"})
	}

	items := make([]deskItem, 0, len(desks))
	for _, d := range desks {
		items = append(items, toDeskItem(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "date": date})
}

func toDeskItem(d repository.DeskForDate) deskItem {
	item := deskItem{
		ID:           d.Desk.ID,
		Number:       d.Desk.Number,
		Status:       d.Desk.Status,
		Reservations: []deskReservationItem{},
	}
	if d.Reservation != nil {
		item.Reservations = append(item.Reservations, toReservationItem(d.Reservation))
	}
	return item
}

func toReservationItem(r *model.Reservation) deskReservationItem {
	return deskReservationItem{
		ID:          r.ID,
		DeskID:      r.DeskID,
		OwnerID:     r.UserID,
		CreatorID:   r.CreatedBy,
		Date:        r.Date,
		Status:      r.Status,
		BookingName: r.BookingName,
	}
}
