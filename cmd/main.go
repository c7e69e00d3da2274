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

	"github.com/DucQuyen199/quanlybongda/config"
	"github.com/DucQuyen199/quanlybongda/db"
	"github.com/DucQuyen199/quanlybongda/handlers"
	"github.com/DucQuyen199/quanlybongda/metrics"
	"github.com/DucQuyen199/quanlybongda/repositories"
	api "github.com/DucQuyen199/quanlybongda/routes"
	"github.com/DucQuyen199/quanlybongda/services"
	"github.com/DucQuyen199/quanlybongda/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("application exited")
}

func run() error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("db_driver", cfg.DBDriver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DBDriver, cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.DBApplySchema {
		if err := db.ApplySchema(ctx, dbConn); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		logger.Info("database schema applied")
	}

	// Ссылки на логотипы команд (S3/R2)
	logos, err := newLogoResolver(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize logo storage: %w", err)
	}
	if logos == nil {
		logger.Warn("logo storage is not configured; team logos will be omitted")
	}

	appMetrics := metrics.New()

	// Инициализация репозиториев
	tournamentRepo := repositories.NewTournamentRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	matchRepo := repositories.NewMatchRepository(dbConn)
	scheduleRepo := repositories.NewScheduleRepository(dbConn)

	// Инициализация сервисов
	validator := services.NewReferenceValidator(tournamentRepo, teamRepo)
	matchEngine := services.NewMatchUpsertEngine(matchRepo, logger)
	scheduleService := services.NewScheduleService(
		dbConn,
		scheduleRepo,
		validator,
		matchEngine,
		logos,
		appMetrics,
		logger,
	)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Dependencies{
		ScheduleHandler: handlers.NewScheduleHandler(scheduleService),
		HealthHandler:   handlers.NewHealthHandler(dbConn),
		Metrics:         appMetrics,
		JWTSecret:       []byte(cfg.JWTSecretKey),
		AllowedOrigins:  cfg.AllowedOrigins,
		RequestTimeout:  30 * time.Second,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Ожидание сигнала завершения или падения сервера
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

// newLogoResolver возвращает nil, если хранилище не настроено.
func newLogoResolver(ctx context.Context, cfg config.StorageConfig) (storage.LogoResolver, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if cfg.Bucket == "" {
		return storage.NewPublicURLResolver(cfg.PublicBaseURL)
	}
	return storage.NewS3LogoResolver(ctx, storage.S3LogoResolverConfig{
		Endpoint:        cfg.Endpoint,
		Region:          cfg.Region,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		BucketName:      cfg.Bucket,
		PublicBaseURL:   cfg.PublicBaseURL,
		PresignTTL:      cfg.PresignTTL,
	})
}
