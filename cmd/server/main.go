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

	httpAdapter "github.com/nalacredit/depositcore/internal/adapter/http"
	"github.com/nalacredit/depositcore/internal/adapter/http/handler"
	"github.com/nalacredit/depositcore/internal/adapter/ledger"
	postgresRepo "github.com/nalacredit/depositcore/internal/adapter/repository/postgres"
	redisRepo "github.com/nalacredit/depositcore/internal/adapter/repository/redis"
	"github.com/nalacredit/depositcore/internal/domain"
	"github.com/nalacredit/depositcore/internal/infrastructure/config"
	"github.com/nalacredit/depositcore/internal/infrastructure/logger"
	"github.com/nalacredit/depositcore/internal/infrastructure/metrics"
	"github.com/nalacredit/depositcore/internal/infrastructure/postgres"
	"github.com/nalacredit/depositcore/internal/infrastructure/redis"
	"github.com/nalacredit/depositcore/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize adapters
	appMetrics := metrics.New()
	ledgerClient := ledger.NewClient(cfg.LedgerBaseURL, cfg.LedgerTimeout, appLogger, appMetrics)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	rates := domain.NewRateNormalizer(nil)
	classifier := domain.NewClassifier(domain.ClassifierConfig{})
	depositUC := usecase.NewDepositUseCase(ledgerClient, auditRepo, cache, idGen, rates)
	transactionUC := usecase.NewTransactionUseCase(ledgerClient, cache, classifier)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(depositUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		HealthHandler:      healthHandler,
		Logger:             appLogger,
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
