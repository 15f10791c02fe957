package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"devevent/config"
	_ "devevent/docs"
	"devevent/internal/adapters/analytics"
	"devevent/internal/adapters/storage"
	deliveryhttp "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

// @title DevEvent API
// @version 1.0
// @description Event listing and booking backend.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Error("ensure schema", "err", err)
		os.Exit(1)
	}

	imageStore, err := storage.NewImageStore(storage.Config{
		Provider: cfg.StorageProvider,
		S3: storage.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BaseURL:         cfg.S3BaseURL,
		},
	})
	if err != nil {
		logger.Error("init image store", "err", err)
		os.Exit(1)
	}

	sink := analytics.NewSink(logger, analytics.Config{
		Provider: cfg.AnalyticsProvider,
		APIKey:   cfg.PosthogAPIKey,
		Endpoint: cfg.PosthogEndpoint,
	})

	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	eventService := services.NewEventService(eventRepo, imageStore, cfg.RequestTimeout)
	bookingService := services.NewBookingService(eventRepo, bookingRepo, cfg.RequestTimeout)

	eventController := controllers.NewEventController(logger, eventService)
	bookingController := controllers.NewBookingController(logger, bookingService, sink)

	mux := deliveryhttp.NewRouter(eventController, bookingController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
