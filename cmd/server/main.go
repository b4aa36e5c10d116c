package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // optional .env loading for local runs
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/farahelsenaryyy/Autofixer/internal/config"
	"github.com/farahelsenaryyy/Autofixer/internal/database"
	"github.com/farahelsenaryyy/Autofixer/internal/handler"
	"github.com/farahelsenaryyy/Autofixer/internal/middleware"
	"github.com/farahelsenaryyy/Autofixer/internal/queue"
	"github.com/farahelsenaryyy/Autofixer/internal/repository"
	"github.com/farahelsenaryyy/Autofixer/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	migCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migCtx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and session revocation disabled")
	}

	users := repository.NewUserRepo(db)
	cars := repository.NewCarRepo(db)
	bookings := repository.NewBookingRepo(db)
	sessions := repository.NewSessionStore(rdb)

	authH := handler.NewAuthHandler(cfg, users, sessions)
	carH := handler.NewCarHandler(cars)
	bookingH := handler.NewBookingHandler(cars, bookings)
	adminH := handler.NewAdminHandler(db)

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	session := middleware.RequireSession(cfg.SessionSecret, sessions)

	e := echo.New()
	router.RegisterPages(e)
	router.RegisterAuth(e, authH, limit, session)
	router.RegisterBooking(e, carH, bookingH, session)
	router.RegisterAdmin(e, adminH, cfg.AdminUser, cfg.AdminPass)

	// Background consumer appends booking.created events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
