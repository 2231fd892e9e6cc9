// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/desk-reservation/internal/config"
	"github.com/iliyamo/desk-reservation/internal/handler"
	"github.com/iliyamo/desk-reservation/internal/middleware"
)

// Handlers groups everything RegisterRoutes needs to build the route
// table.
type Handlers struct {
	Auth         *handler.AuthHandler
	Browse       *handler.BrowseHandler
	Desks        *handler.DeskHandler
	Reservations *handler.ReservationHandler
}

// RegisterRoutes attaches all API routes under /v1.
//
// The browse hierarchy is public and cached; everything touching
// reservations requires a valid access token, and the two write endpoints
// additionally pass through the Redis token bucket.
func RegisterRoutes(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.GET("/healthz", handler.Health)

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	authMW := middleware.JWTAuth(cfg.JWTSecret)

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	browse := e.Group("/v1", cacheMW)
	browse.GET("/locations", h.Browse.GetLocations)
	browse.GET("/locations/:id/offices", h.Browse.GetOfficesByLocation)
	browse.GET("/offices/:id/floors", h.Browse.GetFloorsByOffice)

	api := e.Group("/v1", authMW)
	api.GET("/me", h.Auth.Me)
	api.GET("/floors/:id/desks", h.Desks.GetDesksByFloor)
	api.GET("/desks/:id/reservation", h.Reservations.GetDeskReservation)
	api.GET("/my-reservations", h.Reservations.ListMine)

	api.POST("/reservations", h.Reservations.Create, limitMW)
	api.DELETE("/reservations/:id", h.Reservations.Cancel, limitMW)
}
