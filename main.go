package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/tradelink-ops/logistics-backend/pkg/monitoring"
	"github.com/tradelink-ops/logistics-backend/shared/redis"
	"github.com/tradelink-ops/logistics-backend/shared/utils"
	v1 "github.com/tradelink-ops/logistics-backend/v1"
	"github.com/tradelink-ops/logistics-backend/v1/cache"
	"github.com/tradelink-ops/logistics-backend/v1/config"
	"github.com/tradelink-ops/logistics-backend/v1/events"
	v1handlers "github.com/tradelink-ops/logistics-backend/v1/handlers"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
	"github.com/tradelink-ops/logistics-backend/v1/services"
	"gorm.io/gorm"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting logistics backend initialization")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownMetrics, err := monitoring.Setup(ctx, monitoring.Config{
		ServiceName: utils.GetEnvOrDefault("SERVICE_NAME", "logistics-backend"),
	})
	if err != nil {
		slog.Error("Failed to set up metrics", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(utils.GetEnvOrDefault("DASHBOARD_CONFIG", "config/dashboard.yaml"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	dbConfig := v1.NewDatabaseConfig()
	gormDB, err := v1.ConnectGormDB(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to GORM database", "error", err)
		os.Exit(1)
	}

	queryCache := cache.New(cache.Options{Logger: logger})
	bus := events.NewBus(cfg.Events.BusBuffer)
	events.NewCoordinator(queryCache).Register(bus)
	go bus.Start(ctx)

	relay, redisClient := startRelay(ctx, bus, cfg.Events)

	svc := services.New(repository.NewRepositories(gormDB), queryCache, bus, cfg)
	handler := v1handlers.NewHandler(svc)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(monitoring.HTTPMetricsMiddleware)
	router.Use(utils.PanicRecoveryMiddleware)

	router.Get("/health", healthHandler(gormDB, dbConfig.Database))
	router.Method(http.MethodGet, "/metrics", monitoring.Handler())
	router.Mount("/api/v1", handler.Routes())

	server := utils.CreateServer(utils.DefaultServerConfig(), router)
	// Shutdown does not cancel request contexts; end /watch streams explicitly
	server.RegisterOnShutdown(queryCache.CloseSubscriptions)

	go func() {
		slog.Info("Logistics backend listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if relay != nil {
		if err := relay.Close(shutdownCtx); err != nil {
			slog.Warn("Failed to remove relay consumer group", "error", err)
		}
		_ = redisClient.Close()
	}
	<-bus.Done()
	queryCache.Close()
	if err := shutdownMetrics(shutdownCtx); err != nil {
		slog.Warn("Failed to shut down metrics", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("Server gracefully stopped")
}

// startRelay connects the bus to the shared redis stream when REDIS_ADDR is
// set. Without it, invalidation stays within this process.
func startRelay(ctx context.Context, bus *events.Bus, settings config.EventSettings) (*events.RedisRelay, *redis.RedisClient) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		slog.Info("REDIS_ADDR not set, change events stay in-process")
		return nil, nil
	}

	client, err := redis.NewClient(&redis.Config{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       utils.GetEnvIntOrDefault("REDIS_DB", 0),
		MaxLen:   int64(utils.GetEnvIntOrDefault("REDIS_STREAM_MAXLEN", 10000)),
	})
	if err != nil {
		slog.Warn("Redis unavailable, change events stay in-process", "addr", addr, "error", err)
		return nil, nil
	}

	relay := events.NewRedisRelay(client, bus, settings)
	if err := relay.Start(ctx); err != nil {
		slog.Warn("Failed to start change relay", "error", err)
		_ = client.Close()
		return nil, nil
	}
	slog.Info("Change relay started", "addr", addr, "stream", settings.StreamName)
	return relay, client
}

func healthHandler(gormDB *gorm.DB, database string) http.HandlerFunc {
	type DBHealth struct {
		Status   string `json:"status"`
		Error    string `json:"error,omitempty"`
		Database string `json:"database,omitempty"`
	}
	type HealthStatus struct {
		Status   string   `json:"status"`
		Service  string   `json:"service"`
		Database DBHealth `json:"database"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := HealthStatus{Status: "healthy", Service: "logistics-backend"}
		sqlDB, err := gormDB.DB()
		if err != nil {
			status.Database = DBHealth{Status: "unhealthy", Error: fmt.Sprintf("failed to get sql.DB: %v", err)}
		} else if err := sqlDB.PingContext(ctx); err != nil {
			status.Database = DBHealth{Status: "unhealthy", Error: err.Error()}
		} else {
			status.Database = DBHealth{Status: "healthy", Database: database}
		}

		code := http.StatusOK
		if status.Database.Status != "healthy" {
			status.Status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		utils.RespondWithJSON(w, code, status)
	}
}
