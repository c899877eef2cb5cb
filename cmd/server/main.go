package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfare-travel/service-trip/internal/application"
	"github.com/wayfare-travel/service-trip/internal/common/database"
	"github.com/wayfare-travel/service-trip/internal/common/health"
	"github.com/wayfare-travel/service-trip/internal/common/kafka"
	"github.com/wayfare-travel/service-trip/internal/common/logger"
	"github.com/wayfare-travel/service-trip/internal/common/middleware"
	"github.com/wayfare-travel/service-trip/internal/config"
	"github.com/wayfare-travel/service-trip/internal/domain/pricing"
	tripEvents "github.com/wayfare-travel/service-trip/internal/events"
	"github.com/wayfare-travel/service-trip/internal/handler"
	"github.com/wayfare-travel/service-trip/internal/maps"
	"github.com/wayfare-travel/service-trip/internal/repository"
)

const serviceName = "service-trip"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-trip",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.IsDevelopment() {
		if err := db.AutoMigrate(&repository.QuoteModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	quoteRepo := repository.NewGormQuoteRepository(db)

	// Initialize pricing strategy
	rateCard := cfg.RateCard()
	pricingStrategy := pricing.NewStandardStrategy(rateCard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Place lookup is optional; without it free-text stops are charged the fallback distance
	var resolver application.PlaceResolver
	if cfg.Maps.APIKey != "" {
		geocoder, err := maps.NewGeocoder(cfg.Maps.APIKey, cfg.Maps.Region)
		if err != nil {
			log.Fatal("failed to create geocoder", zap.Error(err))
		}
		resolver = geocoder

		if cfg.RedisAddr != "" {
			redisClient, err := maps.NewRedisClient(ctx, cfg.RedisAddr)
			if err != nil {
				log.Warn("redis unavailable, geocoding without cache", zap.Error(err))
			} else {
				defer func() { _ = redisClient.Close() }()
				resolver = maps.NewCachedResolver(geocoder, redisClient, log)
			}
		}
		log.Info("place geocoding enabled", zap.String("region", cfg.Maps.Region))
	}

	// Initialize application services
	estimateService := application.NewEstimateService(
		pricingStrategy,
		resolver,
		cfg.EstimateSettings(),
		log,
	)
	quoteService := application.NewQuoteService(
		quoteRepo,
		estimateService,
		kafkaProducer,
		log,
	)

	// Initialize and start reservation event consumer in a goroutine
	reservationConsumer := tripEvents.NewReservationEventConsumer(
		cfg.KafkaConfig.Brokers,
		cfg.KafkaConfig.GroupID("reservation"),
		quoteService,
		log,
	)
	defer func() { _ = reservationConsumer.Close() }()

	go func() {
		log.Info("starting reservation event consumer")
		if err := reservationConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("reservation event consumer error", zap.Error(err))
		}
	}()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.MaxBodySize(cfg.MaxBodyBytes))

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register routes
	handler.NewCatalogHandler(rateCard).RegisterRoutes(&router.RouterGroup)
	handler.NewEstimateHandler(estimateService).RegisterRoutes(&router.RouterGroup)
	handler.NewQuoteHandler(quoteService).RegisterRoutes(&router.RouterGroup)
	handler.NewAdminQuoteHandler(quoteService).RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-trip...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-trip stopped")
}
