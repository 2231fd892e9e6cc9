package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/desk-reservation/internal/config"
	"github.com/iliyamo/desk-reservation/internal/database"
	"github.com/iliyamo/desk-reservation/internal/handler"
	"github.com/iliyamo/desk-reservation/internal/queue"
	"github.com/iliyamo/desk-reservation/internal/repository"
	"github.com/iliyamo/desk-reservation/internal/router"
	queuepublisher "github.com/iliyamo/desk-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; features degrade

	h := router.Handlers{
		Auth: &handler.AuthHandler{
			Cfg:   cfg,
			Users: repository.NewUserRepo(db),
		},
		Browse: &handler.BrowseHandler{
			Locations: repository.NewLocationRepo(db),
			Offices:   repository.NewOfficeRepo(db),
			Floors:    repository.NewFloorRepo(db),
		},
		Desks: &handler.DeskHandler{
			Floors: repository.NewFloorRepo(db),
			Desks:  repository.NewDeskRepo(db),
		},
		Reservations: &handler.ReservationHandler{
			Reservations: repository.NewReservationRepo(db),
			Desks:        repository.NewDeskRepo(db),
			Publish:      queuepublisher.PublishReservationEvent,
		},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	router.RegisterRoutes(e, cfg, rdb, h)

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
