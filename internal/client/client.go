// Package client is an HTTP implementation of booking.Backend against the
// desk reservation API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/desk-reservation/internal/booking"
)

// Client talks to a desk reservation server with a bearer access token.
// It is safe for concurrent use.
type Client struct {
	base  string
	token string
	http  *http.Client
}

// New returns a Client for the given base URL (e.g. "http://host:8080")
// and access token.
func New(baseURL, token string) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-2xx response decoded from the server's error
// envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// ListLocations implements booking.Backend.
func (c *Client) ListLocations(ctx context.Context) ([]booking.Option, error) {
	var env struct {
		Items []booking.Option `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/locations", nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// ListOffices implements booking.Backend.
func (c *Client) ListOffices(ctx context.Context, locationID string) ([]booking.Option, error) {
	var env struct {
		Items []booking.Option `json:"items"`
	}
	path := "/v1/locations/" + url.PathEscape(locationID) + "/offices"
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// ListFloors implements booking.Backend.
func (c *Client) ListFloors(ctx context.Context, officeID string) ([]booking.Option, error) {
	var env struct {
		Items []booking.Option `json:"items"`
	}
	path := "/v1/offices/" + url.PathEscape(officeID) + "/floors"
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// ListDesks implements booking.Backend.
func (c *Client) ListDesks(ctx context.Context, floorID, date string) ([]booking.Desk, error) {
	var env struct {
		Items []booking.Desk `json:"items"`
	}
	path := "/v1/floors/" + url.PathEscape(floorID) + "/desks?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// GetDeskReservation implements booking.Backend.  A desk with no active
// reservation on the date yields (nil, nil).
func (c *Client) GetDeskReservation(ctx context.Context, deskID, date string) (*booking.Reservation, error) {
	var env struct {
		Item booking.Reservation `json:"item"`
	}
	path := "/v1/desks/" + url.PathEscape(deskID) + "/reservation?date=" + url.QueryEscape(date)
	err := c.do(ctx, http.MethodGet, path, nil, &env)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &env.Item, nil
}

// CreateReservation implements booking.Backend.
func (c *Client) CreateReservation(ctx context.Context, deskID, date, bookingName string) (string, error) {
	body := map[string]string{
		"desk_id":      deskID,
		"date":         date,
		"booking_name": bookingName,
	}
	var env struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/reservations", body, &env); err != nil {
		return "", err
	}
	return env.ID, nil
}

// CancelReservation implements booking.Backend.
func (c *Client) CancelReservation(ctx context.Context, reservationID string) error {
	path := "/v1/reservations/" + url.PathEscape(reservationID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ListUserReservations implements booking.Backend.  The server derives
// the user from the bearer token; userID is not sent.
func (c *Client) ListUserReservations(ctx context.Context, userID string) ([]booking.Reservation, error) {
	var env struct {
		Items []booking.Reservation `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/my-reservations", nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// do performs one request.  A non-2xx status is returned as *APIError
// with the server's error message when one can be decoded.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
