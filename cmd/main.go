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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sut-badminton/registration/config"
	"github.com/sut-badminton/registration/db"
	"github.com/sut-badminton/registration/handlers"
	"github.com/sut-badminton/registration/live"
	"github.com/sut-badminton/registration/metrics"
	"github.com/sut-badminton/registration/middleware"
	"github.com/sut-badminton/registration/repositories"
	api "github.com/sut-badminton/registration/routes"
	"github.com/sut-badminton/registration/services"
	"github.com/sut-badminton/registration/storage"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("log_level", cfg.LogLevel.String()))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
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
	logger.Info("database connection established")

	if cfg.DBAutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := db.Migrate(migrateCtx, dbConn)
		cancel()
		if err != nil {
			logger.Error("failed to apply database schema", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("database schema applied")
	}

	// Инициализация загрузчика файлов (Supabase Storage, S3-совместимый API)
	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	uploader, err := storage.NewSupabaseS3Uploader(initCtx, storage.SupabaseS3UploaderConfig{
		Endpoint:        cfg.Storage.S3Endpoint(),
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		BucketName:      cfg.Storage.BucketName,
		PublicBaseURL:   cfg.Storage.PublicBaseURL(),
	})
	cancelInit()
	if err != nil {
		logger.Error("failed to initialize Supabase storage uploader", slog.Any("error", err))
		os.Exit(1)
	}
	files := storage.NewGateway(uploader)
	logger.Info("Supabase storage uploader initialized", slog.String("bucket", cfg.Storage.BucketName))

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collectorsSet := metrics.New(registry)

	// Redis нужен только для ограничения частоты запросов
	var publicLimiter, loginLimiter *middleware.RateLimiter
	if cfg.RedisURL != "" {
		redisClient, err := newRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Error("redis unavailable, rate limiting disabled", slog.Any("error", err))
		} else {
			defer redisClient.Close()
			publicLimiter = middleware.NewRateLimiter(redisClient, "public", cfg.RateLimitMax, cfg.RateLimitWindow, collectorsSet, logger)
			loginLimiter = middleware.NewRateLimiter(redisClient, "login", cfg.RateLimitMax, cfg.RateLimitWindow, collectorsSet, logger)
			logger.Info("rate limiting enabled",
				slog.Int("max", cfg.RateLimitMax),
				slog.Duration("window", cfg.RateLimitWindow),
			)
		}
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	configRepo := repositories.NewPostgresConfigRepository(dbConn)
	transactor := repositories.NewSQLTransactor(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	configService := services.NewConfigService(configRepo, files, wsHub, collectorsSet, logger)
	registrationService := services.NewRegistrationService(transactor, teamRepo, playerRepo, files, wsHub, collectorsSet, logger)
	teamService := services.NewTeamService(teamRepo, playerRepo, configService, files, wsHub, collectorsSet, logger)
	adminService := services.NewAdminService(teamRepo, playerRepo, wsHub, logger)
	authService := services.NewAuthService(cfg.AdminPasswordHash)
	logger.Info("Services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Dependencies{
		Logger:             logger,
		CORS:               cfg.CORS,
		JWTSecret:          cfg.JWTSecretKey,
		Metrics:            collectorsSet,
		Gatherer:           registry,
		PublicWriteLimiter: publicLimiter,
		LoginLimiter:       loginLimiter,
		Registration:       handlers.NewRegistrationHandler(registrationService, logger),
		Team:               handlers.NewTeamHandler(teamService, logger),
		Admin:              handlers.NewAdminHandler(adminService, logger),
		Config:             handlers.NewConfigHandler(configService, logger),
		Auth:               handlers.NewAuthHandler(authService, cfg.JWTSecretKey, cfg.AdminTokenTTL, logger),
		WebSocket:          handlers.NewWebSocketHandler(wsHub, middleware.OriginChecker(cfg.CORS), logger),
		Health:             handlers.NewHealthHandler(dbConn, logger),
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
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

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
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

func newRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
