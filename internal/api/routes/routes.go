// Package routes defines the HTTP routes for the Chat Routing Service.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/supporthub/chat-routing-service/internal/api/handlers"
	"github.com/supporthub/chat-routing-service/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler *handlers.HealthHandler
	ChatHandler   *handlers.ChatHandler
	RosterHandler *handlers.RosterHandler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	// API v1 routes - all routes under /api/v1/chat-routing
	v1 := r.Group("/api/v1/chat-routing")
	{
		// Health check routes
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// Session intake and polling
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", cfg.ChatHandler.CreateSession)
			sessions.POST("/:sessionId/poll", cfg.ChatHandler.Poll)
		}

		// Read-only roster view
		v1.GET("/roster", cfg.RosterHandler.GetRoster)
	}

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	// Apply global middleware
	r.Use(middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(loggingMw.Logger())
	r.Use(loggingMw.RequestLogger())
	r.Use(errorMw.Recovery())
	r.Use(gin.Recovery())

	// Setup routes
	Setup(r, cfg)
}
