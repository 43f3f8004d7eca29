// Package main is the entry point for the Chat Routing Service.
// @title Chat Routing Service API
// @version 1.0
// @description Routes incoming support-chat sessions to human agents organized into shift teams plus an overflow pool

// @contact.name API Support
// @contact.url https://github.com/supporthub/chat-routing-service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1/chat-routing
// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/supporthub/chat-routing-service/docs"
	"github.com/supporthub/chat-routing-service/internal/api/handlers"
	"github.com/supporthub/chat-routing-service/internal/api/middleware"
	"github.com/supporthub/chat-routing-service/internal/api/routes"
	"github.com/supporthub/chat-routing-service/internal/config"
	"github.com/supporthub/chat-routing-service/internal/core/intake"
	"github.com/supporthub/chat-routing-service/internal/core/sessionstore"
	amqpintake "github.com/supporthub/chat-routing-service/internal/infrastructure/intake/amqp"
	memoryintake "github.com/supporthub/chat-routing-service/internal/infrastructure/intake/memory"
	mongostore "github.com/supporthub/chat-routing-service/internal/infrastructure/sessionstore/mongodb"
	redisstore "github.com/supporthub/chat-routing-service/internal/infrastructure/sessionstore/redis"
	"github.com/supporthub/chat-routing-service/internal/pkg/metrics"
	"github.com/supporthub/chat-routing-service/internal/services/chat"
	"github.com/supporthub/chat-routing-service/internal/services/coordinator"
	"github.com/supporthub/chat-routing-service/internal/services/matcher"
	"github.com/supporthub/chat-routing-service/internal/services/roster"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	setupLogging(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load roster
	rst, err := loadRoster(cfg.Roster)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load roster")
	}

	// Initialize session store using factory pattern
	store, err := createStore(ctx, cfg.Store)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize session store")
	}
	defer store.Close(context.Background())

	// Initialize intake transport using factory pattern
	publisher, source, err := createIntake(ctx, cfg.Intake)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize intake transport")
	}
	defer publisher.Close()
	defer source.Close()

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	agentMatcher := matcher.New(rst)

	// Start the routing loops
	coord, err := coordinator.New(&coordinator.Config{
		Store:               store,
		Source:              source,
		Roster:              rst,
		Matcher:             agentMatcher,
		Metrics:             recorder,
		Logger:              zlog.Logger,
		DispatchInterval:    cfg.Coordinator.DispatchInterval,
		DrainInterval:       cfg.Coordinator.DrainInterval,
		ReapInterval:        cfg.Coordinator.ReapInterval,
		ShiftInterval:       cfg.Coordinator.ShiftInterval,
		InactivityThreshold: cfg.Coordinator.InactivityThreshold,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize coordinator")
	}
	coord.Start(ctx)

	// Initialize chat service
	chatService, err := chat.NewService(&chat.Config{
		Store:     store,
		Publisher: publisher,
		Matcher:   agentMatcher,
		Metrics:   recorder,
		Logger:    zlog.Logger,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize chat service")
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	router := setupRouter(chatService, store, rst)

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		zlog.Info().Str("addr", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("shutting down")

	// Stop the routing loops before closing their dependencies
	cancel()
	coord.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("server forced to shutdown")
	}

	zlog.Info().Msg("server exited")
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadRoster loads the roster file, falling back to the built-in default.
func loadRoster(cfg config.RosterConfig) (*roster.Roster, error) {
	if cfg.Path == "" {
		zlog.Warn().Msg("ROSTER_PATH not set, using built-in default roster")
		return roster.Default(), nil
	}
	return roster.Load(cfg.Path)
}

// createStore creates a session store based on the configuration.
func createStore(ctx context.Context, cfg config.StoreConfig) (sessionstore.Store, error) {
	switch sessionstore.Type(cfg.Type) {
	case sessionstore.TypeRedis:
		return redisstore.NewStore(redisstore.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case sessionstore.TypeMongoDB:
		return mongostore.NewStore(ctx, &mongostore.Config{
			URI:          cfg.MongoURI,
			DatabaseName: cfg.MongoDatabase,
		})
	default:
		zlog.Fatal().Str("type", cfg.Type).Msg("unsupported store type")
		return nil, nil
	}
}

// createIntake creates the intake transport based on the configuration.
func createIntake(ctx context.Context, cfg config.IntakeConfig) (intake.Publisher, intake.Source, error) {
	switch intake.Type(cfg.Type) {
	case intake.TypeAMQP:
		publisher, err := amqpintake.NewPublisher(ctx, amqpintake.PublisherConfig{
			URL:           cfg.AMQPURL,
			Queue:         cfg.Queue,
			RetryAttempts: cfg.RetryAttempts,
			RetryDelay:    cfg.RetryDelay,
			Logger:        zlog.Logger,
		})
		if err != nil {
			return nil, nil, err
		}
		consumer, err := amqpintake.NewConsumer(ctx, amqpintake.ConsumerConfig{
			URL:           cfg.AMQPURL,
			Queue:         cfg.Queue,
			BufferSize:    cfg.BufferSize,
			RetryAttempts: cfg.RetryAttempts,
			RetryDelay:    cfg.RetryDelay,
			Logger:        zlog.Logger,
		})
		if err != nil {
			publisher.Close()
			return nil, nil, err
		}
		return publisher, consumer, nil
	case intake.TypeMemory:
		queue := memoryintake.NewQueue(cfg.BufferSize)
		return queue, queue, nil
	default:
		zlog.Fatal().Str("type", cfg.Type).Msg("unsupported intake type")
		return nil, nil, nil
	}
}

// setupRouter creates and configures the Gin router.
func setupRouter(chatService chat.Service, store sessionstore.Store, rst *roster.Roster) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()

	routesCfg := &routes.Config{
		HealthHandler: handlers.NewHealthHandler(store),
		ChatHandler:   handlers.NewChatHandler(chatService),
		RosterHandler: handlers.NewRosterHandler(rst),
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw)

	// Swagger documentation endpoint
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
