package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/desk-reservation/internal/repository"
)

// BrowseHandler serves the public location/office/floor drill-down used to
// narrow a desk search.  All three endpoints return flat {id, name} lists
// sorted by name.
type BrowseHandler struct {
	Locations *repository.LocationRepo
	Offices   *repository.OfficeRepo
	Floors    *repository.FloorRepo
}

type option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetLocations lists every location.
func (h *BrowseHandler) GetLocations(c echo.Context) error {
	locs, err := h.Locations.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list locations: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load locations"})
	}
	items := make([]option, 0, len(locs))
	for _, l := range locs {
		items = append(items, option{ID: l.ID, Name: l.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOfficesByLocation lists the offices under a location.  An unknown
// location is a 404, not an empty list, so clients can tell a stale
// selection apart from a location with no offices yet.
func (h *BrowseHandler) GetOfficesByLocation(c echo.Context) error {
	locID := c.Param("id")
	if _, err := h.Locations.GetByID(c.Request().Context(), locID); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		c.Logger().Errorf("get location %s: %v", locID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load offices"})
	}
	offs, err := h.Offices.ListByLocation(c.Request().Context(), locID)
	if err != nil {
		c.Logger().Errorf("list offices for %s: %v", locID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load offices"})
	}
	items := make([]option, 0, len(offs))
	for _, o := range offs {
		items = append(items, option{ID: o.ID, Name: o.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetFloorsByOffice lists the floors under an office.
func (h *BrowseHandler) GetFloorsByOffice(c echo.Context) error {
	offID := c.Param("id")
	if _, err := h.Offices.GetByID(c.Request().Context(), offID); err != nil {
		if errors.Is(err, repository.ErrOfficeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "office not found"})
		}
		c.Logger().Errorf("get office %s: %v", offID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load floors"})
	}
	floors, err := h.Floors.ListByOffice(c.Request().Context(), offID)
	if err != nil {
		c.Logger().Errorf("list floors for %s: %v", offID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load floors"})
	}
	items := make([]option, 0, len(floors))
	for _, f := range floors {
		items = append(items, option{ID: f.ID, Name: f.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
