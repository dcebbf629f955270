package routes

import (
	"dua-reminders/api/handlers"
	"dua-reminders/api/middleware"
	"dua-reminders/internal/reminder"
	"dua-reminders/internal/scheduler"
	"dua-reminders/internal/storage"
	"dua-reminders/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies groups what the HTTP layer needs from the rest of the process
type Dependencies struct {
	Service     reminder.ReminderService
	Store       storage.KeyValueStore
	Scheduler   scheduler.Scheduler
	RateLimiter *middleware.ClientRateLimiter
	Logger      *logger.Logger
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// Add middleware
	router.Use(middleware.RequestLogging(deps.Logger))
	router.Use(gin.Recovery())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Scheduler, deps.Logger)
	reminderHandler := handlers.NewReminderHandler(deps.Service, deps.Logger)

	// Setup routes
	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(middleware.RateLimit(deps.RateLimiter))
	}
	{
		v1.GET("/health", healthHandler.Check)

		reminders := v1.Group("/reminders")
		reminders.GET("", reminderHandler.List)
		reminders.POST("", reminderHandler.Create)
		reminders.GET("/stats", reminderHandler.Stats)
		reminders.GET("/history", reminderHandler.History)
		reminders.GET("/export", reminderHandler.Export)
		reminders.POST("/import", reminderHandler.Import)
		reminders.POST("/cleanup", reminderHandler.Cleanup)
		reminders.POST("/reset", reminderHandler.Reset)
		reminders.GET("/:id", reminderHandler.Get)
		reminders.PATCH("/:id", reminderHandler.Update)
		reminders.DELETE("/:id", reminderHandler.Delete)
		reminders.POST("/:id/toggle", reminderHandler.Toggle)
		reminders.POST("/:id/pause", reminderHandler.Pause)
		reminders.POST("/:id/resume", reminderHandler.Resume)
		reminders.POST("/:id/complete", reminderHandler.Complete)

		notifications := v1.Group("/notifications")
		notifications.POST("/test", reminderHandler.TestNotification)
		notifications.GET("/scheduled", reminderHandler.ScheduledNotifications)
		notifications.POST("/sync", reminderHandler.Sync)
	}

	// Root health check
	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
