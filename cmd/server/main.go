package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dua-reminders/api/middleware"
	"dua-reminders/api/routes"
	"dua-reminders/internal/catalog"
	"dua-reminders/internal/common"
	"dua-reminders/internal/config"
	"dua-reminders/internal/database"
	"dua-reminders/internal/events"
	"dua-reminders/internal/metrics"
	"dua-reminders/internal/notifier"
	"dua-reminders/internal/reminder"
	"dua-reminders/internal/scheduler"
	"dua-reminders/internal/storage"
	"dua-reminders/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.Server.Environment)
	defer logger.Sync()

	// Get the underlying zap logger for services
	zapLogger := logger.Zap()

	location, err := time.LoadLocation(cfg.Reminder.Timezone)
	if err != nil {
		logger.Fatalw("Invalid reminder timezone", "timezone", cfg.Reminder.Timezone, "error", err)
	}
	clock := common.NewRealClock(location)

	ctx := context.Background()

	// Initialize storage
	store, err := openStore(ctx, cfg, zapLogger)
	if err != nil {
		logger.Fatalw("Failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer store.Close()

	texts, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatalw("Failed to load supplication catalog", "path", cfg.Catalog.Path, "error", err)
	}

	// Initialize event bus
	eventBus := events.NewEventBus(zapLogger)

	// Initialize services
	localNotifier := notifier.NewLocalNotifier(cfg.Notifier.PermissionGranted, zapLogger)
	reminderService := reminder.NewReminderService(
		reminder.NewReminderStore(store, zapLogger),
		localNotifier,
		eventBus,
		clock,
		zapLogger,
		reminder.ServiceConfig{
			RecordFiredEvents: cfg.Reminder.RecordFiredEvents,
			PreviewLength:     cfg.Reminder.PreviewLength,
			TestDelay:         time.Duration(cfg.Reminder.TestDelaySeconds) * time.Second,
			FiredRetryDelay:   time.Duration(cfg.Reminder.FiredRetrySeconds) * time.Second,
			PublishRetries:    cfg.Events.PublishRetries,
			Texts:             texts,
			Metrics:           metrics.NewRecorder(),
		},
	)

	// The notifier is in-process, so every pending notification is rebuilt from storage
	syncResult, err := reminderService.SyncNotifications(ctx)
	if err != nil {
		logger.Errorw("Failed to sync notifications on startup", "error", err)
	} else {
		logger.Infow("Notifications synced",
			"scheduled", syncResult.Scheduled,
			"cancelled", syncResult.Cancelled,
			"deactivated", syncResult.Deactivated)
	}

	// Initialize scheduler
	var reminderScheduler scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sender, err := newSender(ctx, cfg.Notifier, zapLogger)
		if err != nil {
			logger.Fatalw("Failed to create notification sender", "sender", cfg.Notifier.Sender, "error", err)
		}

		reminderScheduler, err = scheduler.NewScheduler(cfg.Scheduler, localNotifier, sender, reminderService, eventBus, clock, zapLogger)
		if err != nil {
			logger.Fatalw("Failed to create scheduler", "error", err)
		}

		if err := reminderScheduler.Start(ctx); err != nil {
			logger.Fatalw("Scheduler failed to start", "error", err)
		}

		logger.Infow("Notification scheduler started",
			"poll_interval", cfg.Scheduler.PollInterval,
			"worker_count", cfg.Scheduler.WorkerCount,
			"cleanup_schedule", cfg.Scheduler.CleanupSchedule,
			"sender", sender.Name())
	} else {
		logger.Info("Notification scheduler disabled")
	}

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, routes.Dependencies{
		Service:     reminderService,
		Store:       store,
		Scheduler:   reminderScheduler,
		RateLimiter: middleware.NewClientRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		Logger:      logger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Infow("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Stop scheduler first
	if reminderScheduler != nil {
		logger.Info("Stopping notification scheduler...")
		if err := reminderScheduler.Stop(); err != nil {
			logger.Errorw("Error stopping scheduler", "error", err)
		} else {
			logger.Info("Notification scheduler stopped")
		}
	}

	// Drain in-flight fired handlers before storage is closed
	if err := eventBus.Close(); err != nil {
		logger.Errorw("Error closing event bus", "error", err)
	}

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

// openStore connects the key-value backend selected by storage.driver
func openStore(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (storage.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.NewPostgresConnection(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := storage.RunMigrations(db); err != nil {
			return nil, fmt.Errorf("failed to run storage migrations: %w", err)
		}
		return storage.NewGormStore(db, zapLogger), nil
	case "mongo":
		store, err := storage.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection,
			time.Duration(cfg.Mongo.Timeout)*time.Second, zapLogger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		zapLogger.Warn("Using in-memory storage, reminders are lost on restart")
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// newSender builds the delivery channel for fired notifications, wrapped with retries
func newSender(ctx context.Context, cfg config.NotifierConfig, zapLogger *zap.Logger) (notifier.Sender, error) {
	var sender notifier.Sender
	switch cfg.Sender {
	case "log":
		sender = notifier.NewLogSender(zapLogger)
	case "fcm":
		fcm, err := notifier.NewFCMSender(ctx, cfg.FCM.CredentialsFile, cfg.FCM.DeviceToken, zapLogger)
		if err != nil {
			return nil, err
		}
		sender = fcm
	case "telegram":
		telegram, err := notifier.NewTelegramSender(cfg.Telegram.Token, cfg.Telegram.ChatID, zapLogger)
		if err != nil {
			return nil, err
		}
		sender = telegram
	default:
		return nil, fmt.Errorf("unknown notification sender %q", cfg.Sender)
	}
	return notifier.NewRetryingSender(sender, cfg.MaxRetries, zapLogger), nil
}
