package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"fishhook/internal/booking/pricing"
	"fishhook/internal/cache"
	"fishhook/internal/config"
	"fishhook/internal/handlers"
	"fishhook/internal/repositories"
	"fishhook/internal/services"
	"fishhook/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config
	db       *sql.DB

	wsManager *WebSocketManager

	bookingService *services.BookingService
	sessionRepo    *repositories.SessionRepository
	tokenManager   *utils.Manager

	bookingHandler *handlers.BookingHandler
	modelHandler   *handlers.ModelHandler
	userHandler    *handlers.UserHandler
}

// bookingChangeFanout delivers the engine's "booking changed" signal to every
// dependent view: cached redis projections and connected websocket clients.
type bookingChangeFanout struct {
	cache *cache.Invalidator
	hub   *WebSocketManager
}

func (f *bookingChangeFanout) BookingChanged(ctx context.Context, modelID, userID string) {
	f.cache.BookingChanged(ctx, modelID, userID)
	f.hub.NotifyBookingChanged(modelID, userID)
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	bookingRepo := repositories.BookingRepository{DB: db}
	modelRepo := repositories.ModelRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}
	sessionRepo := repositories.SessionRepository{DB: db}

	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	wsManager := NewWebSocketManager()
	fanout := &bookingChangeFanout{
		cache: cache.NewInvalidator(rdb),
		hub:   wsManager,
	}

	// Services
	calc := pricing.NewCalculator(cfg.Booking.CommissionRate)
	expiry := time.Duration(cfg.Booking.ExpiryThresholdMinutes) * time.Minute
	bookingService := services.NewBookingService(&bookingRepo, &modelRepo, &userRepo, fanout, calc, expiry)
	bookingService.ErrorLog = errorLog

	accessTTL := time.Duration(cfg.Auth.AccessTTLMinutes) * time.Minute
	refreshTTL := time.Duration(cfg.Auth.RefreshTTLHours) * time.Hour
	userService := &services.UserService{
		UserRepo:     &userRepo,
		SessionRepo:  &sessionRepo,
		TokenManager: tokenManager,
		AccessTTL:    accessTTL,
		RefreshTTL:   refreshTTL,
	}
	modelService := &services.ModelService{
		ModelRepo:    &modelRepo,
		SessionRepo:  &sessionRepo,
		TokenManager: tokenManager,
		AccessTTL:    accessTTL,
		RefreshTTL:   refreshTTL,
	}

	// Handlers
	bookingHandler := &handlers.BookingHandler{Service: bookingService}
	modelHandler := &handlers.ModelHandler{Service: modelService}
	userHandler := &handlers.UserHandler{Service: userService}

	return &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		cfg:            cfg,
		db:             db,
		wsManager:      wsManager,
		bookingService: bookingService,
		sessionRepo:    &sessionRepo,
		tokenManager:   tokenManager,
		bookingHandler: bookingHandler,
		modelHandler:   modelHandler,
		userHandler:    userHandler,
	}
}
