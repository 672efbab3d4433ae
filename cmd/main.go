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

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/config"
	"github.com/Dosada05/tournament-predictor/db"
	_ "github.com/Dosada05/tournament-predictor/docs"
	"github.com/Dosada05/tournament-predictor/handlers"
	"github.com/Dosada05/tournament-predictor/repositories"
	api "github.com/Dosada05/tournament-predictor/routes"
	"github.com/Dosada05/tournament-predictor/services"
	"github.com/Dosada05/tournament-predictor/storage"
)

// @title Tournament Predictor API
// @version 1.0
// @description Group standings, playoff brackets and score predictions for a football tournament.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("tiebreak_preset", cfg.TiebreakPreset),
		slog.Bool("provisional_group_outcomes", cfg.ProvisionalGroupOutcomes),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.SnapshotsEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
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
		logger.Info("snapshot publishing to Cloudflare R2 enabled", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("snapshot publishing disabled")
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	playoffRepo := repositories.NewPostgresPlayoffRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	formatRepo := repositories.NewPostgresFormatRepository(dbConn)

	predictionService := services.NewPredictionService(predictionRepo, gameRepo, nil, wsHub, uploader, logger)
	tournamentService := services.NewTournamentService(
		gameRepo,
		playoffRepo,
		teamRepo,
		formatRepo,
		wsHub,
		predictionService,
		uploader,
		services.TournamentOptions{
			DefaultPreset:            cfg.TiebreakPreset,
			ProvisionalGroupOutcomes: cfg.ProvisionalGroupOutcomes,
		},
		logger,
	)
	formatService := services.NewFormatService(formatRepo)
	dashboardService := services.NewDashboardService(gameRepo, playoffRepo, teamRepo, predictionRepo)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		cfg.CORSAllowedOrigins,
		handlers.NewGroupHandler(tournamentService),
		handlers.NewBracketHandler(tournamentService),
		handlers.NewPredictionHandler(predictionService),
		handlers.NewFormatHandler(formatService),
		handlers.NewDashboardHandler(dashboardService),
		handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
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
			stop()
			os.Exit(1)
		}
		logger.Info("server stopped")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	// stops the hub and closes websocket clients
	stop()
	logger.Info("application exited")
}
