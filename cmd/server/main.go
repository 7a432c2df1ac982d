package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sahithiburada/seat-occupancy-system/internal/config"
	"github.com/sahithiburada/seat-occupancy-system/internal/database"
	"github.com/sahithiburada/seat-occupancy-system/internal/handler"
	"github.com/sahithiburada/seat-occupancy-system/internal/queue"
	"github.com/sahithiburada/seat-occupancy-system/internal/repository"
	"github.com/sahithiburada/seat-occupancy-system/internal/router"
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	// Redis is optional: without it the cache and rate limiter become
	// pass-throughs and everything else keeps working.
	rdb := config.NewRedisClient()

	sessions := repository.NewSessionRepo(db)
	bookings := repository.NewBookingRepo(db)
	seats := repository.NewSeatRepo(db)
	staff := repository.NewStaffRepo(db)

	scanH := handler.NewScanHandler(sessions, bookings, seats)
	sessH := handler.NewSessionHandler(sessions)
	searchH := handler.NewSearchHandler(sessions)
	authH := handler.NewAuthHandler(cfg, staff)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, scanH, sessH, searchH, rdb)
	router.RegisterAuth(e, authH, cfg.JWTSecret)

	// Attendance log consumer; runs its own reconnect loop forever.
	go func() {
		if err := queue.StartScanConsumer(); err != nil {
			log.Printf("scan consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
