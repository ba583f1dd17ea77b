package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	redisAdapter "github.com/odilboooy10/nestar/internal/adapter/cache/redis"
	natsAdapter "github.com/odilboooy10/nestar/internal/adapter/messaging/nats"
	mongoRepo "github.com/odilboooy10/nestar/internal/adapter/repository/mongodb"

	"github.com/odilboooy10/nestar/internal/app"
	"github.com/odilboooy10/nestar/internal/config"
	"github.com/odilboooy10/nestar/internal/platform/logger"
	"github.com/odilboooy10/nestar/internal/platform/metrics"
	"github.com/odilboooy10/nestar/internal/platform/tracer"
	"github.com/odilboooy10/nestar/internal/usecase"

	"github.com/joho/godotenv"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, for local development)
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Application starting...")

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	var tp *sdktrace.TracerProvider
	if cfg.OTExporterOTLPEndpoint != "" {
		tp = tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
		defer func() {
			appLogger.Info("Shutting down tracer provider...")
			ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := tp.Shutdown(ctxShutdown); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
		appLogger.Info("OpenTelemetry Tracer initialized.")
	} else {
		appLogger.Info("OpenTelemetry Tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	mongoClient, err := mongoRepo.Connect(context.Background(), cfg.MongoURI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		appLogger.Info("Disconnecting from MongoDB...")
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)

	redisClient, err := redisAdapter.NewClient(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	cacheRepo := redisAdapter.NewCacheRepository(redisClient, appLogger)

	natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
	if err != nil {
		appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
	}
	defer natsPublisher.Close()
	appLogger.Info("NATS Publisher initialized.")

	metricsManager := metrics.NewManager(cfg.ServiceName)

	likeRepo := mongoRepo.NewLikeRepository(db, appLogger)
	viewRepo := mongoRepo.NewViewRepository(db, appLogger)
	followRepo := mongoRepo.NewFollowRepository(db, appLogger)
	memberRepo := mongoRepo.NewMemberRepository(db, appLogger)
	propertyRepo := mongoRepo.NewPropertyRepository(db, appLogger)
	appLogger.Info("Repositories initialized.")

	likeUC := usecase.NewLikeUsecase(likeRepo, natsPublisher, metricsManager, appLogger)
	viewUC := usecase.NewViewUsecase(viewRepo, natsPublisher, metricsManager, appLogger)
	memberUC := usecase.NewMemberUsecase(memberRepo, followRepo, likeUC, viewUC, cacheRepo, cfg.MemberCacheTTL, natsPublisher, metricsManager, appLogger)
	propertyUC := usecase.NewPropertyUsecase(propertyRepo, memberRepo, likeUC, viewUC, natsPublisher, metricsManager, appLogger)
	appLogger.Info("Usecases initialized.")

	application := app.New(likeUC, viewUC, memberUC, propertyUC, appLogger)

	if cfg.PrometheusMetricsPort != "" {
		go func() {
			appLogger.Info("Starting Prometheus metrics server", zap.String("port", cfg.PrometheusMetricsPort))
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	} else {
		appLogger.Info("Prometheus metrics server not started (PROMETHEUS_METRICS_PORT not set).")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Application stopped with error", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
