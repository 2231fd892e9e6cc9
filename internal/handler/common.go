package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// getUserID reads the authenticated user's ID that the JWT middleware
// stored in the request context.  An empty result means the route was
// registered without the middleware, which is a wiring bug.
func getUserID(c echo.Context) string {
	v, _ := c.Get("user_id").(string)
	return v
}

// dateParam returns the validated ?date= query parameter, defaulting to
// today (UTC) when absent.  The second return value is false when the
// parameter is present but not a real YYYY-MM-DD date.
func dateParam(c echo.Context) (string, bool) {
	d := c.QueryParam("date")
	if d == "" {
		return time.Now().UTC().Format("2006-01-02"), true
	}
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return "", false
	}
	return d, true
}

// badRequest writes a 400 with a short machine-readable error code.
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
