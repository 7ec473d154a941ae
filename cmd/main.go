package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/hokkyo/riichi-league/config"
	"github.com/hokkyo/riichi-league/db"
	_ "github.com/hokkyo/riichi-league/docs"
	"github.com/hokkyo/riichi-league/handlers"
	"github.com/hokkyo/riichi-league/realtime"
	"github.com/hokkyo/riichi-league/repositories"
	api "github.com/hokkyo/riichi-league/routes"
	"github.com/hokkyo/riichi-league/services"
	"github.com/hokkyo/riichi-league/storage"
)

// @title        Riichi League API
// @version      1.0
// @description  Round pairing, standings and scheduling for a riichi mahjong league.
// @BasePath     /
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	var (
		playerRepo   repositories.PlayerRepository
		roundRepo    repositories.RoundRepository
		scheduleRepo repositories.ScheduleRepository
	)
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		}()
		if err := repositories.Migrate(context.Background(), dbConn); err != nil {
			logger.Error("failed to run migrations", slog.Any("error", err))
			os.Exit(1)
		}
		playerRepo = repositories.NewPostgresPlayerRepository(dbConn)
		roundRepo = repositories.NewPostgresRoundRepository(dbConn)
		scheduleRepo = repositories.NewPostgresScheduleRepository(dbConn)
		logger.Info("database connection established")
	} else {
		playerRepo = repositories.NewMemoryPlayerRepository()
		roundRepo = repositories.NewMemoryRoundRepository()
		scheduleRepo = repositories.NewMemoryScheduleRepository()
		logger.Warn("DATABASE_URL not set, using in-memory store")
	}

	var uploader storage.FileUploader
	if cfg.BackupConfigured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 settings incomplete, schedule backups disabled")
	}

	wsHub := realtime.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	gameService := services.NewGameService(playerRepo, roundRepo, nil, wsHub, logger)
	playerService := services.NewPlayerService(playerRepo, wsHub, logger)
	historyService := services.NewHistoryService(playerRepo, roundRepo, wsHub, logger)
	scheduleService := services.NewScheduleService(playerRepo, scheduleRepo, roundRepo, wsHub, logger)
	adminService := services.NewAdminService(playerRepo, roundRepo, scheduleRepo, gameService, uploader, wsHub, logger)
	logger.Info("services initialized")

	// First boot of an empty store seeds the default roster and round 1.
	players, err := playerRepo.List(context.Background())
	if err != nil {
		logger.Error("failed to read roster", slog.Any("error", err))
		os.Exit(1)
	}
	if len(players) == 0 {
		if err := adminService.Reset(context.Background()); err != nil {
			logger.Error("failed to seed initial league state", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("seeded default roster and first round")
	}

	playerHandler := handlers.NewPlayerHandler(playerService)
	gameHandler := handlers.NewGameHandler(gameService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	adminHandler := handlers.NewAdminHandler(adminService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		playerHandler,
		gameHandler,
		historyHandler,
		scheduleHandler,
		adminHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
