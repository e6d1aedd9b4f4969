package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/ride-records/internal/api/handlers"
	"github.com/gocomet/ride-records/internal/api/middleware"
	"github.com/gocomet/ride-records/internal/api/routes"
	"github.com/gocomet/ride-records/internal/config"
	"github.com/gocomet/ride-records/internal/repository/postgres"
	"github.com/gocomet/ride-records/internal/service/rides"
	"github.com/gocomet/ride-records/pkg/cache"
	"github.com/gocomet/ride-records/pkg/database"
	"github.com/gocomet/ride-records/pkg/logger"
	"github.com/gocomet/ride-records/pkg/monitoring"
	"github.com/gocomet/ride-records/pkg/websocket"
	"github.com/jmoiron/sqlx"
)

const poolStatsInterval = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Log.Logger())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting ride records service",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(cfg.NewRelic.Monitoring())
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
	} else if nrApp.IsEnabled() {
		appLogger.Info("New Relic APM initialized successfully",
			logger.String("app_name", cfg.NewRelic.AppName),
			logger.Bool("enabled", true))
	} else {
		appLogger.Info("New Relic APM disabled")
	}
	defer nrApp.Shutdown(10 * time.Second)

	// Initialize PostgreSQL
	pgConfig := cfg.Database.Postgres()
	postgresDB, err := database.NewPostgresDB(pgConfig)
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresDB.Close()

	appLogger.Info("Connected to PostgreSQL successfully")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(pgConfig); err != nil {
			appLogger.Fatal("Failed to migrate database", logger.Err(err))
		}
		appLogger.Info("Database schema is up to date")
	}

	checks := map[string]handlers.Check{
		"postgres": postgresDB.PingContext,
	}

	// Initialize Redis only when it backs the rate limiter
	var createLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Cache())
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		defer cache.Close(redisClient)

		appLogger.Info("Connected to Redis successfully",
			logger.Int("ride_requests_per_minute", cfg.RateLimit.RideRequestsPerMinute))

		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
		createLimit = middleware.RateLimit(middleware.RateLimitConfig{
			Counter: cache.NewWindowCounter(redisClient, "rate:rides:create"),
			Limit:   cfg.RateLimit.RideRequestsPerMinute,
			Window:  time.Minute,
			Logger:  appLogger,
		})
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize WebSocket hub
	wsHub := websocket.NewHub(appLogger)
	go wsHub.Run(ctx)

	go reportPoolStats(ctx, postgresDB, nrApp)

	rideService := rides.NewService(postgres.NewRideRepository(postgresDB), wsHub, nrApp, appLogger)

	h := handlers.NewHandlers(rideService, wsHub, appLogger, handlers.Options{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		Checks:          checks,
	})

	// Initialize Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, h, nrApp.App(), createLimit)

	appLogger.Info("Routes configured successfully")

	// Create HTTP server
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	// closes feed connections, which Shutdown does not track
	stop()

	appLogger.Info("Server stopped gracefully")
}

// reportPoolStats sends connection pool usage to New Relic until ctx ends
func reportPoolStats(ctx context.Context, db *sqlx.DB, nr *monitoring.NewRelicApp) {
	if !nr.IsEnabled() {
		return
	}

	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := db.Stats()
			nr.RecordDatabasePoolStats(stats.OpenConnections, stats.InUse, stats.Idle)
		}
	}
}
