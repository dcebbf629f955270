// Package scheduler runs the background side of the reminder service: workers that
// deliver due notifications and a cron job that deactivates expired reminders.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dua-reminders/internal/common"
	"dua-reminders/internal/config"
	"dua-reminders/internal/events"
	"dua-reminders/internal/notifier"
	"dua-reminders/internal/reminder"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	deliveryTimeout = 30 * time.Second
	cleanupTimeout  = time.Minute
	maxRestarts     = 3
)

// DueSource hands out each notification once its trigger has passed
type DueSource interface {
	TakeDue(now time.Time) []reminder.ScheduledNotification
}

// Maintainer deactivates reminders whose end date has passed and realigns the
// scheduled notifications with the stored reminders
type Maintainer interface {
	CleanupExpiredReminders(ctx context.Context) (*reminder.CleanupResult, error)
	SyncNotifications(ctx context.Context) (*reminder.SyncResult, error)
}

// Scheduler defines the interface for the background notification dispatcher
type Scheduler interface {
	Start(ctx context.Context) error
	Stop() error
	IsRunning() bool
	GetMetrics() *SchedulerMetrics
}

// scheduler implements the Scheduler interface
type scheduler struct {
	config     config.SchedulerConfig
	source     DueSource
	sender     notifier.Sender
	maintainer Maintainer
	publisher  *events.Publisher
	clock      common.Clock
	logger     *zap.Logger
	metrics    *SchedulerMetrics

	// Context and cancellation
	ctx    context.Context
	cancel context.CancelFunc

	// Goroutine management
	wg      sync.WaitGroup
	ticker  *time.Ticker
	cron    *cron.Cron
	running atomic.Bool
}

// NewScheduler creates a new scheduler instance. maintainer may be nil to disable the maintenance job.
func NewScheduler(cfg config.SchedulerConfig, source DueSource, sender notifier.Sender, maintainer Maintainer, eventBus events.EventBus, clock common.Clock, logger *zap.Logger) (Scheduler, error) {
	// Validate configuration
	if cfg.PollInterval <= 0 {
		return nil, NewConfigurationError("poll_interval", cfg.PollInterval, "must be greater than 0")
	}
	if cfg.WorkerCount <= 0 {
		return nil, NewConfigurationError("worker_count", cfg.WorkerCount, "must be greater than 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, NewConfigurationError("shutdown_timeout", cfg.ShutdownTimeout, "must be greater than 0")
	}
	if maintainer != nil && cfg.CleanupSchedule != "" {
		if _, err := cron.ParseStandard(cfg.CleanupSchedule); err != nil {
			return nil, NewConfigurationError("cleanup_schedule", cfg.CleanupSchedule, err.Error())
		}
	}

	return &scheduler{
		config:     cfg,
		source:     source,
		sender:     sender,
		maintainer: maintainer,
		publisher:  events.NewPublisher(eventBus, logger, 3),
		clock:      clock,
		logger:     logger,
		metrics:    NewSchedulerMetrics(),
	}, nil
}

// Start begins the scheduler operation with worker goroutines
func (s *scheduler) Start(ctx context.Context) error {
	if s.running.Load() {
		return NewSchedulerError(ErrSchedulerAlreadyRunning, "scheduler is already running")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.ticker = time.NewTicker(time.Duration(s.config.PollInterval) * time.Second)

	if s.maintainer != nil && s.config.CleanupSchedule != "" {
		s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
		if _, err := s.cron.AddFunc(s.config.CleanupSchedule, s.runMaintenance); err != nil {
			s.cancel()
			s.ticker.Stop()
			return NewConfigurationError("cleanup_schedule", s.config.CleanupSchedule, err.Error())
		}
		s.cron.Start()
	}

	s.running.Store(true)

	s.logger.Info("Starting notification scheduler",
		zap.Int("poll_interval_seconds", s.config.PollInterval),
		zap.Int("worker_count", s.config.WorkerCount),
		zap.String("sender", s.sender.Name()),
		zap.String("cleanup_schedule", s.config.CleanupSchedule))

	for i := 0; i < s.config.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.logger.Info("Notification scheduler started successfully")
	return nil
}

// Stop gracefully shuts down the scheduler
func (s *scheduler) Stop() error {
	if !s.running.Load() {
		return NewSchedulerError(ErrSchedulerNotRunning, "scheduler is not running")
	}

	s.logger.Info("Stopping notification scheduler...")

	if s.cancel != nil {
		s.cancel()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}

	var cronDone context.Context
	if s.cron != nil {
		cronDone = s.cron.Stop()
	}

	// Wait for workers and a running cleanup job with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		if cronDone != nil {
			<-cronDone.Done()
		}
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("All scheduler workers stopped successfully")
	case <-time.After(time.Duration(s.config.ShutdownTimeout) * time.Second):
		s.logger.Warn("Scheduler shutdown timed out, some workers may still be running")
		s.running.Store(false)
		return NewShutdownError("shutdown timeout exceeded", s.config.ShutdownTimeout)
	}

	s.running.Store(false)
	s.logger.Info("Notification scheduler stopped successfully")
	return nil
}

// IsRunning returns true if the scheduler is currently running
func (s *scheduler) IsRunning() bool {
	return s.running.Load()
}

// GetMetrics returns the current scheduler metrics
func (s *scheduler) GetMetrics() *SchedulerMetrics {
	return s.metrics
}

// worker restarts its loop after a panic, up to maxRestarts times
func (s *scheduler) worker(workerID int) {
	defer s.wg.Done()

	for restarts := 0; restarts <= maxRestarts; restarts++ {
		if s.runWorker(workerID, restarts) {
			return
		}

		select {
		case <-time.After(time.Duration(restarts+1) * time.Second):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("Worker exceeded restart limit, permanently stopping",
		zap.Int("worker_id", workerID),
		zap.Int("max_restarts", maxRestarts))
}

// runWorker processes ticks until the context ends. It returns false after a panic.
func (s *scheduler) runWorker(workerID, restarts int) (completed bool) {
	workerLogger := s.logger.With(zap.Int("worker_id", workerID))

	defer func() {
		if r := recover(); r != nil {
			workerLogger.Error("Worker panic recovered",
				zap.Int("restart_count", restarts),
				zap.Any("panic", r))
			s.metrics.RecordProcessingError(NewWorkerError(workerID, "panic_recovery", fmt.Errorf("worker panic: %v", r)))
			s.metrics.RecordWorkerActivity(workerID, false)
			completed = false
		}
	}()

	if restarts > 0 {
		workerLogger.Info("Worker restarted after panic", zap.Int("restart_count", restarts))
	} else {
		workerLogger.Info("Starting scheduler worker")
	}

	worker := &dispatchWorker{
		scheduler: s,
		workerID:  workerID,
		logger:    workerLogger,
	}

	for {
		select {
		case <-s.ctx.Done():
			workerLogger.Info("Worker stopping due to context cancellation")
			s.metrics.RecordWorkerActivity(workerID, false)
			return true
		case <-s.ticker.C:
			s.metrics.RecordWorkerActivity(workerID, true)
			if err := worker.dispatchDue(s.ctx); err != nil {
				workerLogger.Error("Failed to dispatch due notifications", zap.Error(err))
				s.metrics.RecordProcessingError(err)
			}
			s.metrics.RecordWorkerActivity(workerID, false)
		}
	}
}

// runMaintenance is the cron job deactivating expired reminders. It then resyncs the
// notifier so a reminder whose fired notification could not be processed is rescheduled.
func (s *scheduler) runMaintenance() {
	ctx, cancel := context.WithTimeout(s.ctx, cleanupTimeout)
	defer cancel()

	result, err := s.maintainer.CleanupExpiredReminders(ctx)
	if err != nil {
		s.logger.Error("Scheduled cleanup failed", zap.Error(NewCleanupError(err)))
		s.metrics.RecordCleanup(0, err)
	} else {
		s.metrics.RecordCleanup(len(result.Deactivated), nil)
		s.logger.Debug("Scheduled cleanup completed", zap.Int("deactivated", len(result.Deactivated)))
	}

	synced, err := s.maintainer.SyncNotifications(ctx)
	if err != nil {
		s.logger.Error("Scheduled notification sync failed", zap.Error(err))
		s.metrics.RecordProcessingError(err)
		return
	}
	s.logger.Debug("Scheduled notification sync completed",
		zap.Int("scheduled", synced.Scheduled),
		zap.Int("cancelled", synced.Cancelled),
		zap.Int("deactivated", synced.Deactivated))
}
