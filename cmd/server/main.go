package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/tripsplit/internal/adapter/http"
	"github.com/iho/tripsplit/internal/adapter/http/handler"
	"github.com/iho/tripsplit/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/tripsplit/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/tripsplit/internal/adapter/repository/redis"
	"github.com/iho/tripsplit/internal/infrastructure/config"
	"github.com/iho/tripsplit/internal/infrastructure/logger"
	"github.com/iho/tripsplit/internal/infrastructure/postgres"
	"github.com/iho/tripsplit/internal/infrastructure/redis"
	"github.com/iho/tripsplit/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.DefaultContextLogger = &log.Logger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis. The settlement cache and idempotency store are
	// optional: without redis every settlement request recomputes.
	var settlementCache usecase.Cache
	var idempotencyStore usecase.IdempotencyStore
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without settlement cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		settlementCache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		log.Info().Msg("connected to redis")
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	tripRepo := postgresRepo.NewTripRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	tripUC := usecase.NewTripUseCase(tripRepo, idGen)
	expenseUC := usecase.NewExpenseUseCase(txManager, tripRepo, expenseRepo, settlementCache, retrier, idGen)
	settlementUC := usecase.NewSettlementUseCase(tripRepo, expenseRepo, settlementCache)

	// Initialize handlers
	tripHandler := handler.NewTripHandler(tripUC)
	expenseHandler := handler.NewExpenseHandler(expenseUC)
	settlementHandler := handler.NewSettlementHandler(settlementUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TripHandler:       tripHandler,
		ExpenseHandler:    expenseHandler,
		SettlementHandler: settlementHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:            log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
