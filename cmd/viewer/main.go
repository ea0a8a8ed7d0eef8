package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/ledgerview/internal/adapter/http"
	"github.com/iho/ledgerview/internal/adapter/http/handler"
	"github.com/iho/ledgerview/internal/adapter/ledgerapi"
	"github.com/iho/ledgerview/internal/adapter/push"
	"github.com/iho/ledgerview/internal/idgen"
	"github.com/iho/ledgerview/internal/infrastructure/config"
	"github.com/iho/ledgerview/internal/infrastructure/logger"
	"github.com/iho/ledgerview/internal/infrastructure/logging"
	"github.com/iho/ledgerview/internal/infrastructure/metrics"
	"github.com/iho/ledgerview/internal/infrastructure/redis"
	"github.com/iho/ledgerview/internal/infrastructure/session"
	"github.com/iho/ledgerview/internal/reconcile"
	"github.com/iho/ledgerview/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Switch to the configured logger once config is available
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics
	registry := prometheus.NewRegistry()
	engineMetrics := metrics.New(registry)

	// Ledger collaborators
	ledgerClient := ledgerapi.New(ledgerapi.Config{
		BaseURL:    cfg.LedgerBaseURL,
		Timeout:    cfg.LedgerTimeout,
		MaxRetries: cfg.LedgerMaxRetries,
		Logger:     slogger.Logger,
		Metrics:    engineMetrics,
	})

	listener := push.NewListener(push.Config{
		Client:      redisClient,
		TopicPrefix: cfg.PushTopicPrefix,
		Logger:      slogger.Logger,
		Metrics:     engineMetrics,
	})

	// Session resolution
	var resolver usecase.SessionResolver
	switch {
	case cfg.SessionToken != "":
		resolver = session.NewTokenResolver(cfg.SessionJWTSecret, cfg.SessionToken)
	default:
		resolver = session.NewStaticResolver(cfg.AccountID)
	}

	// Reconciliation engine
	store := reconcile.New()
	submitUC := usecase.NewSubmitUseCase(store, ledgerClient, idgen.New(), slogger.Logger)

	viewer := usecase.NewViewer(usecase.ViewerConfig{
		Store:              store,
		History:            ledgerClient,
		Submit:             submitUC,
		Sessions:           resolver,
		Listener:           listener,
		Logger:             slogger.Logger,
		Metrics:            engineMetrics,
		RefreshOnReconnect: cfg.RefreshOnReconnect,
	})
	defer viewer.Close()

	if err := viewer.Bind(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to bind account")
	}

	// Optional periodic refresh as a backstop for missed pushes
	if cfg.RefreshInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.RefreshInterval)
			defer ticker.Stop()

			for range ticker.C {
				if err := viewer.Refresh(context.Background()); err != nil {
					log.Warn().Err(err).Msg("periodic refresh failed")
				}
			}
		}()
	}

	// Local view surface
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ViewHandler:   handler.NewViewHandler(viewer),
		HealthHandler: handler.NewHealthHandler(redisClient),
		Logger:        log.Logger,
		Gatherer:      registry,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting viewer")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down viewer...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("viewer stopped")
}
