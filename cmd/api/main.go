package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pad2skills/backend/internal/adapters/cache"
	"github.com/pad2skills/backend/internal/adapters/database"
	"github.com/pad2skills/backend/internal/adapters/datafile"
	"github.com/pad2skills/backend/internal/adapters/session"
	"github.com/pad2skills/backend/internal/api/handlers"
	"github.com/pad2skills/backend/internal/api/middleware"
	"github.com/pad2skills/backend/internal/api/routes"
	"github.com/pad2skills/backend/internal/application/services"
	"github.com/pad2skills/backend/internal/domain/providers"
	"github.com/pad2skills/backend/internal/domain/repositories"
	"github.com/pad2skills/backend/internal/infrastructure/clients/postgres"
	"github.com/pad2skills/backend/internal/infrastructure/clients/redis"
	"github.com/pad2skills/backend/internal/infrastructure/observability"
	"github.com/pad2skills/backend/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize structured logging
	env := os.Getenv("ENV")
	if env == "" {
		env = "production"
	}
	observability.InitLogger(cfg.OTEL.ServiceName, env)

	log.Info().
		Str("service", cfg.OTEL.ServiceName).
		Str("version", cfg.OTEL.ServiceVersion).
		Str("env", env).
		Str("data_source", cfg.Data.Source).
		Msg("Starting API Server")

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize the fact repository from the configured source
	var factRepo repositories.FactRepository
	switch cfg.Data.Source {
	case "postgres":
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		log.Info().Msg("PostgreSQL client initialized successfully")
		factRepo = database.NewFactAdapter(pgClient)
	case "csv":
		factRepo = datafile.NewCSVFactAdapter(cfg.Data.Dir)
		log.Info().Str("dir", cfg.Data.Dir).Msg("CSV fact source configured")
	default:
		log.Fatal().Str("source", cfg.Data.Source).Msg("Unknown DATA_SOURCE, expected csv or postgres")
	}

	// Fact tables are read-only per process, so reads go through the
	// load-once caching layer
	factRepo = database.NewCachedFactAdapter(factRepo, metrics)

	// Initialize Redis client; the app degrades to in-process state
	// without it
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without it")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Session store: Redis when configured and reachable, otherwise the
	// in-process store
	var sessionStore repositories.SessionStore
	if cfg.Session.Store == "redis" && redisClient != nil {
		sessionStore = session.NewRedisStore(redisClient, cfg.Session.TTLSeconds)
		log.Info().Int("ttl_seconds", cfg.Session.TTLSeconds).Msg("Redis session store initialized")
	} else {
		if cfg.Session.Store == "redis" {
			log.Warn().Msg("SESSION_STORE=redis but Redis is unavailable, using in-memory sessions")
		}
		sessionStore = session.NewMemoryStore()
		log.Info().Msg("In-memory session store initialized")
	}

	// Initialize services
	filterService := services.NewFilterService()
	aggregationService := services.NewAggregationService()
	chatService := services.NewChatService(metrics)
	dashboardService := services.NewDashboardService(
		factRepo,
		filterService,
		aggregationService,
		cfg.Data.PageSize,
		cfg.Data.SampleSize,
	)
	sessionService := services.NewSessionService(
		sessionStore,
		dashboardService,
		filterService,
		chatService,
		factRepo,
	)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, sessionService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	chatHandler := handlers.NewChatHandler(sessionService, chatService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Info().Msg("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		dashboardHandler,
		sessionHandler,
		chatHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
