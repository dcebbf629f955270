package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"dua-reminders/internal/common"
	"dua-reminders/internal/events"

	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=../mocks/service_mocks.go -package=mocks

const firedHandlerTimeout = 30 * time.Second

var errStaleFire = errors.New("notification does not match a pending reminder")

// ReminderService defines the interface for reminder operations
type ReminderService interface {
	CreateReminder(ctx context.Context, req CreateReminderRequest) (*SupplicationReminder, error)
	UpdateReminder(ctx context.Context, id common.ID, update ReminderUpdate) (*SupplicationReminder, error)
	DeleteReminder(ctx context.Context, id common.ID) error
	ToggleReminder(ctx context.Context, id common.ID) (*SupplicationReminder, error)
	PauseReminder(ctx context.Context, id common.ID) (*SupplicationReminder, error)
	ResumeReminder(ctx context.Context, id common.ID) (*SupplicationReminder, error)
	MarkReminderCompleted(ctx context.Context, id common.ID) (*SupplicationReminder, error)
	CleanupExpiredReminders(ctx context.Context) (*CleanupResult, error)

	GetReminders(ctx context.Context) ([]SupplicationReminder, error)
	GetReminder(ctx context.Context, id common.ID) (*SupplicationReminder, error)
	GetReminderStats(ctx context.Context) (*ReminderStats, error)
	GetReminderHistory(ctx context.Context, limit int) ([]ReminderHistory, error)

	ExportReminders(ctx context.Context) (*ExportDocument, error)
	ImportReminders(ctx context.Context, data []byte) (*ImportResult, error)
	ResetReminders(ctx context.Context) error

	TestNotification(ctx context.Context) (*ScheduledNotification, error)
	ListScheduledNotifications(ctx context.Context) ([]ScheduledNotification, error)
	SyncNotifications(ctx context.Context) (*SyncResult, error)
	HandleNotificationFired(ctx context.Context, event events.NotificationFired) error
}

// MetricsRecorder receives the outcome of every service operation
type MetricsRecorder interface {
	ObserveOperation(operation string, err error)
	SetActiveReminders(count int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, error) {}
func (nopMetrics) SetActiveReminders(int)         {}

// ServiceConfig holds the tunables of the reminder service
type ServiceConfig struct {
	RecordFiredEvents bool
	PreviewLength     int
	TestDelay         time.Duration
	FiredRetryDelay   time.Duration
	PublishRetries    int
	Texts             SupplicationTexts
	Metrics           MetricsRecorder
}

// reminderService implements the ReminderService interface.
// mu serializes every mutation so the store and the notifier move together.
type reminderService struct {
	store     ReminderStore
	notifier  PlatformNotifier
	eventBus  events.EventBus
	publisher *events.Publisher
	clock     common.Clock
	logger    *zap.Logger
	validator *ReminderValidator
	cfg       ServiceConfig
	metrics   MetricsRecorder
	mu        sync.Mutex
}

// NewReminderService creates a new instance of ReminderService
func NewReminderService(store ReminderStore, notifier PlatformNotifier, eventBus events.EventBus, clock common.Clock, logger *zap.Logger, cfg ServiceConfig) ReminderService {
	if cfg.TestDelay <= 0 {
		cfg.TestDelay = 2 * time.Second
	}
	if cfg.FiredRetryDelay <= 0 {
		cfg.FiredRetryDelay = time.Minute
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = DefaultPreviewLength
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	var publisher *events.Publisher
	if eventBus != nil {
		publisher = events.NewPublisher(eventBus, logger, cfg.PublishRetries)
	}

	service := &reminderService{
		store:     store,
		notifier:  notifier,
		eventBus:  eventBus,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		validator: NewReminderValidator(),
		cfg:       cfg,
		metrics:   metrics,
	}

	service.setupEventSubscriptions()

	return service
}

// setupEventSubscriptions sets up event subscriptions for the reminder service
func (s *reminderService) setupEventSubscriptions() {
	if s.eventBus == nil {
		return
	}
	// async: the handler publishes lifecycle events of its own
	if err := s.eventBus.SubscribeAsync(events.TopicNotificationFired, s.handleNotificationFired); err != nil {
		s.logger.Error("Failed to subscribe to NotificationFired events", zap.Error(err))
	}
}

func (s *reminderService) handleNotificationFired(event events.NotificationFired) {
	ctx, cancel := context.WithTimeout(context.Background(), firedHandlerTimeout)
	defer cancel()

	if err := s.HandleNotificationFired(ctx, event); err != nil {
		s.logger.Error("Failed to handle fired notification",
			zap.String("notificationID", event.NotificationID),
			zap.Error(err))
	}
}

// CreateReminder validates the request, computes the first trigger, persists and schedules it.
// A reminder without any upcoming occurrence is stored inactive.
func (s *reminderService) CreateReminder(ctx context.Context, req CreateReminderRequest) (result *SupplicationReminder, err error) {
	defer s.observe("create", &err)

	if err := s.validator.ValidateCreateRequest(req); err != nil {
		s.logger.Warn("Reminder validation failed", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	style := req.NotificationStyle
	if style == "" {
		style = StylePreview
	}

	r := SupplicationReminder{
		ID:                common.NewID(),
		SupplicationID:    req.SupplicationID,
		SupplicationTitle: req.SupplicationTitle,
		Category:          req.Category,
		ScheduledTime:     req.ScheduledTime,
		Frequency:         req.Frequency,
		DaysOfWeek:        normalizeDays(req.DaysOfWeek),
		CustomInterval:    req.CustomInterval,
		EndDate:           copyTime(req.EndDate),
		IsActive:          true,
		SoundEnabled:      boolOr(req.SoundEnabled, true),
		VibrationEnabled:  boolOr(req.VibrationEnabled, true),
		NotificationStyle: style,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.NextTrigger = NextTrigger(r, now)
	if r.NextTrigger == nil {
		r.IsActive = false
		s.logger.Info("Reminder has no upcoming occurrence, storing inactive",
			zap.String("reminderID", r.ID.String()))
	}

	applied := false
	err = s.store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		if err := s.transition(ctx, nil, &r); err != nil {
			return nil, err
		}
		applied = true
		return append(list, r), nil
	})
	if err != nil {
		if applied {
			s.revert(ctx, nil, &r)
		}
		s.logger.Error("Failed to create reminder", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Reminder created",
		zap.String("reminderID", r.ID.String()),
		zap.String("frequency", string(r.Frequency)),
		zap.Bool("active", r.IsActive))

	s.publisher.Publish(events.TopicReminderCreated, events.ReminderCreated{
		Event:             events.NewEvent(),
		ReminderID:        r.ID.String(),
		SupplicationTitle: r.SupplicationTitle,
		Frequency:         string(r.Frequency),
		NextTrigger:       copyTime(r.NextTrigger),
	})

	created := r.clone()
	return &created, nil
}

// UpdateReminder applies a partial update and reschedules from now
func (s *reminderService) UpdateReminder(ctx context.Context, id common.ID, update ReminderUpdate) (result *SupplicationReminder, err error) {
	defer s.observe("update", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	before, after, err := s.mutateLocked(ctx, id, func(r SupplicationReminder, now time.Time) (SupplicationReminder, error) {
		updated := update.Apply(r)
		updated.DaysOfWeek = normalizeDays(updated.DaysOfWeek)
		if err := s.validator.ValidateReminder(updated); err != nil {
			return r, err
		}
		if updated.IsScheduled() {
			updated.NextTrigger = NextTrigger(updated, now)
			if updated.NextTrigger == nil {
				updated.IsActive = false
			}
		} else {
			updated.NextTrigger = nil
		}
		return updated, nil
	})
	if err != nil {
		return nil, err
	}

	s.publishChange("update", before, after, "recurrence exhausted")
	return &after, nil
}

// DeleteReminder cancels the notification and removes the reminder; its history is kept
func (s *reminderService) DeleteReminder(ctx context.Context, id common.ID) (err error) {
	defer s.observe("delete", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed SupplicationReminder
	applied := false
	err = s.store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		idx := findReminder(list, id)
		if idx < 0 {
			return nil, NewNotFoundError(id)
		}
		removed = list[idx].clone()
		if err := s.transition(ctx, &removed, nil); err != nil {
			return nil, err
		}
		applied = true
		return append(list[:idx], list[idx+1:]...), nil
	})
	if err != nil {
		if applied {
			s.revert(ctx, &removed, nil)
		}
		return err
	}

	s.logger.Info("Reminder deleted", zap.String("reminderID", id.String()))
	s.publisher.Publish(events.TopicReminderDeleted, events.ReminderDeleted{
		Event:      events.NewEvent(),
		ReminderID: id.String(),
	})
	return nil
}

// ToggleReminder flips IsActive. Turning on clears IsPaused and schedules from now.
func (s *reminderService) ToggleReminder(ctx context.Context, id common.ID) (result *SupplicationReminder, err error) {
	defer s.observe("toggle", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	before, after, err := s.mutateLocked(ctx, id, func(r SupplicationReminder, now time.Time) (SupplicationReminder, error) {
		if r.IsActive {
			r.IsActive = false
			r.NextTrigger = nil
			return r, nil
		}
		r.IsActive = true
		r.IsPaused = false
		next := NextTrigger(r, now)
		if next == nil {
			return r, NewValidationError("next_trigger", nil, "reminder has no upcoming occurrence")
		}
		r.NextTrigger = next
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	s.publishChange("toggle", before, after, "toggled off")
	return &after, nil
}

// PauseReminder suspends an active reminder without losing its configuration
func (s *reminderService) PauseReminder(ctx context.Context, id common.ID) (result *SupplicationReminder, err error) {
	defer s.observe("pause", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	before, after, err := s.mutateLocked(ctx, id, func(r SupplicationReminder, now time.Time) (SupplicationReminder, error) {
		if !r.IsActive {
			return r, NewValidationError("is_active", false, "inactive reminders cannot be paused")
		}
		r.IsPaused = true
		r.NextTrigger = nil
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	s.publishChange("pause", before, after, "")
	return &after, nil
}

// ResumeReminder unpauses a reminder and schedules its next occurrence from now.
// Occurrences missed while paused are not caught up.
func (s *reminderService) ResumeReminder(ctx context.Context, id common.ID) (result *SupplicationReminder, err error) {
	defer s.observe("resume", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	before, after, err := s.mutateLocked(ctx, id, func(r SupplicationReminder, now time.Time) (SupplicationReminder, error) {
		if !r.IsActive {
			return r, NewValidationError("is_active", false, "inactive reminders cannot be resumed")
		}
		if !r.IsPaused {
			return r, nil
		}
		r.IsPaused = false
		next := NextTrigger(r, now)
		if next == nil {
			return r, NewValidationError("next_trigger", nil, "reminder has no upcoming occurrence")
		}
		r.NextTrigger = next
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	s.publishChange("resume", before, after, "")
	return &after, nil
}

// MarkReminderCompleted records a confirmed completion and schedules the following occurrence
func (s *reminderService) MarkReminderCompleted(ctx context.Context, id common.ID) (result *SupplicationReminder, err error) {
	defer s.observe("complete", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	var completedAt time.Time
	before, after, err := s.mutateLocked(ctx, id, func(r SupplicationReminder, now time.Time) (SupplicationReminder, error) {
		completedAt = now
		r.CompletionCount++
		r.LastTriggered = &completedAt

		switch {
		case r.Frequency == FrequencyOnce:
			r.IsActive = false
			r.NextTrigger = nil
		case r.IsScheduled():
			r.NextTrigger = NextTrigger(r, now)
			if r.NextTrigger == nil {
				r.IsActive = false
			}
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	entry := ReminderHistory{
		ID:                common.NewID(),
		ReminderID:        id,
		SupplicationTitle: after.SupplicationTitle,
		TriggeredAt:       completedAt,
		CompletedAt:       &completedAt,
		WasCompleted:      true,
	}
	if err := s.store.AppendHistory(ctx, entry); err != nil {
		s.logger.Error("Failed to record completion, rolling back reminder",
			zap.String("reminderID", id.String()),
			zap.Error(err))
		s.rollbackLocked(ctx, before, after)
		return nil, err
	}

	s.logger.Info("Reminder completed",
		zap.String("reminderID", id.String()),
		zap.Int("completionCount", after.CompletionCount))

	s.publisher.Publish(events.TopicReminderCompleted, events.ReminderCompleted{
		Event:             events.NewEvent(),
		ReminderID:        id.String(),
		SupplicationTitle: after.SupplicationTitle,
		CompletedAt:       completedAt,
		CompletionCount:   after.CompletionCount,
	})
	s.publishChange("complete", before, after, "completed")
	return &after, nil
}

// CleanupExpiredReminders deactivates every active reminder whose end date has passed
func (s *reminderService) CleanupExpiredReminders(ctx context.Context) (result *CleanupResult, err error) {
	defer s.observe("cleanup", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var cancelled []SupplicationReminder

	err = s.store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		for i := range list {
			r := list[i]
			if !r.IsActive || !r.IsExpired(now) {
				continue
			}
			if err := s.notifier.Cancel(ctx, r.ID); err != nil {
				s.logger.Warn("Failed to cancel expired reminder, leaving it active",
					zap.String("reminderID", r.ID.String()),
					zap.Error(err))
				continue
			}
			cancelled = append(cancelled, r.clone())
			list[i].IsActive = false
			list[i].NextTrigger = nil
			list[i].UpdatedAt = now
		}
		return list, nil
	})
	if err != nil {
		for i := range cancelled {
			s.restore(ctx, &cancelled[i])
		}
		return nil, err
	}

	result = &CleanupResult{Deactivated: make([]common.ID, 0, len(cancelled))}
	for _, r := range cancelled {
		result.Deactivated = append(result.Deactivated, r.ID)
		s.publisher.Publish(events.TopicReminderDeactivated, events.ReminderDeactivated{
			Event:      events.NewEvent(),
			ReminderID: r.ID.String(),
			Reason:     "end date passed",
		})
	}

	if len(cancelled) > 0 {
		s.logger.Info("Expired reminders deactivated", zap.Int("count", len(cancelled)))
	}
	return result, nil
}

// GetReminders returns all reminders in creation order
func (s *reminderService) GetReminders(ctx context.Context) ([]SupplicationReminder, error) {
	return s.store.List(ctx)
}

// GetReminder returns a single reminder
func (s *reminderService) GetReminder(ctx context.Context, id common.ID) (*SupplicationReminder, error) {
	reminders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := findReminder(reminders, id)
	if idx < 0 {
		return nil, NewNotFoundError(id)
	}
	r := reminders[idx]
	return &r, nil
}

// GetReminderStats recomputes statistics from the current reminders and history
func (s *reminderService) GetReminderStats(ctx context.Context) (result *ReminderStats, err error) {
	defer s.observe("stats", &err)

	reminders := s.store.GetAll(ctx)
	history, err := s.store.GetHistory(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(reminders, history, s.clock.Now())
	s.metrics.SetActiveReminders(stats.ActiveReminders)
	return &stats, nil
}

// GetReminderHistory returns history entries, most recent first. limit <= 0 returns all.
func (s *reminderService) GetReminderHistory(ctx context.Context, limit int) ([]ReminderHistory, error) {
	history, err := s.store.GetHistory(ctx)
	if err != nil {
		return nil, err
	}

	// reverse first so that equal timestamps keep most-recently-appended first
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].TriggeredAt.After(history[j].TriggeredAt)
	})

	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

// testNotificationType marks diagnostic notifications that belong to no reminder
const testNotificationType = "test"

// TestNotification schedules a short-delay diagnostic notification
func (s *reminderService) TestNotification(ctx context.Context) (result *ScheduledNotification, err error) {
	defer s.observe("test_notification", &err)

	notification := ScheduledNotification{
		ID: common.NewID(),
		Content: NotificationContent{
			Title:     "Test notification",
			Body:      "Supplication reminders are working",
			Sound:     true,
			Vibration: true,
			Data:      map[string]string{"type": testNotificationType},
		},
		Trigger: s.clock.Now().Add(s.cfg.TestDelay),
	}

	if err := s.notifier.Schedule(ctx, notification); err != nil {
		return nil, WrapNotifierError(err, notification.ID, "test notification")
	}

	s.logger.Info("Test notification scheduled",
		zap.String("notificationID", notification.ID.String()),
		zap.Time("trigger", notification.Trigger))
	return &notification, nil
}

// ListScheduledNotifications exposes the notifier's pending set for diagnostics
func (s *reminderService) ListScheduledNotifications(ctx context.Context) ([]ScheduledNotification, error) {
	scheduled, err := s.notifier.ListScheduled(ctx)
	if err != nil {
		return nil, WrapNotifierError(err, "", "list scheduled")
	}
	sort.Slice(scheduled, func(i, j int) bool {
		return scheduled[i].Trigger.Before(scheduled[j].Trigger)
	})
	return scheduled, nil
}

// SyncNotifications reconciles the notifier with the stored reminders: missing
// notifications are scheduled, orphaned ones cancelled, and stale triggers recomputed.
// It is idempotent and safe to rerun after a failure.
func (s *reminderService) SyncNotifications(ctx context.Context) (result *SyncResult, err error) {
	defer s.observe("sync", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	scheduled, err := s.notifier.ListScheduled(ctx)
	if err != nil {
		return nil, WrapNotifierError(err, "", "list scheduled")
	}
	pending := make(map[common.ID]ScheduledNotification, len(scheduled))
	for _, n := range scheduled {
		pending[n.ID] = n
	}

	now := s.clock.Now()
	result = &SyncResult{}

	err = s.store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		keep := make(map[common.ID]bool, len(list))
		for i := range list {
			r := &list[i]
			if !r.IsScheduled() {
				r.NextTrigger = nil
				continue
			}
			if r.NextTrigger == nil || !r.NextTrigger.After(now) {
				// a due or retried delivery is still queued for the dispatcher
				if existing, ok := pending[r.ID]; ok && r.NextTrigger != nil && !existing.Trigger.Before(*r.NextTrigger) {
					keep[r.ID] = true
					continue
				}
				r.NextTrigger = NextTrigger(*r, now)
				r.UpdatedAt = now
				if r.NextTrigger == nil {
					r.IsActive = false
					result.Deactivated++
					continue
				}
			}

			keep[r.ID] = true
			existing, ok := pending[r.ID]
			if ok && existing.Trigger.Equal(*r.NextTrigger) {
				continue
			}
			if err := s.notifier.Schedule(ctx, s.notificationFor(*r)); err != nil {
				return nil, WrapNotifierError(err, r.ID, "schedule")
			}
			result.Scheduled++
		}

		for _, n := range scheduled {
			if keep[n.ID] || n.Content.Data["type"] == testNotificationType {
				continue
			}
			if err := s.notifier.Cancel(ctx, n.ID); err != nil {
				return nil, WrapNotifierError(err, n.ID, "cancel")
			}
			result.Cancelled++
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Notifications synchronized",
		zap.Int("scheduled", result.Scheduled),
		zap.Int("cancelled", result.Cancelled),
		zap.Int("deactivated", result.Deactivated))
	return result, nil
}

// HandleNotificationFired advances a reminder after its notification was delivered.
// Fires that no longer match the reminder's pending trigger are ignored.
func (s *reminderService) HandleNotificationFired(ctx context.Context, event events.NotificationFired) (err error) {
	defer s.observe("fired", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	id := common.ID(event.NotificationID)
	var before, after SupplicationReminder
	applied := false

	err = s.store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		idx := findReminder(list, id)
		if idx < 0 {
			return nil, errStaleFire
		}
		r := list[idx]
		// A retried fire carries a later instant than the stored trigger
		if !r.IsScheduled() || r.NextTrigger == nil || event.ScheduledFor.Before(*r.NextTrigger) {
			return nil, errStaleFire
		}

		before = r.clone()
		firedAt := *r.NextTrigger
		updated := r.clone()
		updated.LastTriggered = &firedAt
		updated.UpdatedAt = now
		updated.NextTrigger = NextTrigger(updated, now)
		if updated.NextTrigger == nil {
			updated.IsActive = false
		}

		if err := s.transition(ctx, &before, &updated); err != nil {
			return nil, err
		}
		applied = true
		after = updated
		list[idx] = updated
		return list, nil
	})
	if errors.Is(err, errStaleFire) {
		s.logger.Debug("Ignoring fired notification without pending reminder",
			zap.String("notificationID", event.NotificationID))
		return nil
	}
	if err != nil {
		if applied {
			s.revert(ctx, &before, &after)
		}
		s.requeueFired(ctx, event, &before, now)
		return err
	}

	if s.cfg.RecordFiredEvents {
		entry := ReminderHistory{
			ID:                common.NewID(),
			ReminderID:        id,
			SupplicationTitle: after.SupplicationTitle,
			TriggeredAt:       event.FiredAt,
			WasCompleted:      false,
		}
		if err := s.store.AppendHistory(ctx, entry); err != nil {
			s.logger.Warn("Failed to record fired notification in history",
				zap.String("reminderID", id.String()),
				zap.Error(err))
		}
	}

	s.publishChange("fired", before, after, "recurrence exhausted")
	return nil
}

// requeueFired schedules another attempt for a fire that could not be applied.
// before is used for the content when it was read, otherwise the event's content is reused.
func (s *reminderService) requeueFired(ctx context.Context, event events.NotificationFired, before *SupplicationReminder, now time.Time) {
	n := ScheduledNotification{
		ID: common.ID(event.NotificationID),
		Content: NotificationContent{
			Title:     event.Title,
			Body:      event.Body,
			Sound:     event.Sound,
			Vibration: event.Vibration,
		},
		Trigger: now.Add(s.cfg.FiredRetryDelay),
	}
	if hasPending(before) {
		n.Content = s.notificationFor(*before).Content
	}

	if err := s.notifier.Schedule(ctx, n); err != nil {
		s.logger.Error("Failed to requeue fired notification",
			zap.String("notificationID", event.NotificationID),
			zap.Error(err))
		return
	}
	s.logger.Warn("Fired notification requeued after failure",
		zap.String("notificationID", event.NotificationID),
		zap.Time("retryAt", n.Trigger))
}

// mutateLocked applies change to one reminder inside a store update and keeps the
// notifier aligned with the result. The caller must hold s.mu.
func (s *reminderService) mutateLocked(ctx context.Context, id common.ID, change func(SupplicationReminder, time.Time) (SupplicationReminder, error)) (SupplicationReminder, SupplicationReminder, error) {
	now := s.clock.Now()
	var before, after SupplicationReminder
	applied := false

	err := s.store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		idx := findReminder(list, id)
		if idx < 0 {
			return nil, NewNotFoundError(id)
		}

		before = list[idx].clone()
		updated, err := change(list[idx].clone(), now)
		if err != nil {
			return nil, err
		}
		updated.UpdatedAt = now

		if err := s.transition(ctx, &before, &updated); err != nil {
			return nil, err
		}
		applied = true
		after = updated
		list[idx] = updated
		return list, nil
	})
	if err != nil {
		if applied {
			s.revert(ctx, &before, &after)
		}
		s.logger.Warn("Reminder mutation failed",
			zap.String("reminderID", id.String()),
			zap.Error(err))
		return before, after, err
	}

	return before, after.clone(), nil
}

// rollbackLocked restores before in the store and the notifier after a later step failed
func (s *reminderService) rollbackLocked(ctx context.Context, before, after SupplicationReminder) {
	err := s.store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		if idx := findReminder(list, before.ID); idx >= 0 {
			list[idx] = before
		}
		return list, nil
	})
	if err != nil {
		s.logger.Error("Failed to roll back reminder",
			zap.String("reminderID", before.ID.String()),
			zap.Error(err))
		return
	}
	s.revert(ctx, &before, &after)
}

// transition moves the notifier from the state of from to the state of to: cancel, then
// schedule. Either side may be nil. On a scheduling failure from is restored.
func (s *reminderService) transition(ctx context.Context, from, to *SupplicationReminder) error {
	if from != nil {
		if err := s.notifier.Cancel(ctx, from.ID); err != nil {
			return WrapNotifierError(err, from.ID, "cancel")
		}
	}
	if hasPending(to) {
		if err := s.notifier.Schedule(ctx, s.notificationFor(*to)); err != nil {
			s.restore(ctx, from)
			return WrapNotifierError(err, to.ID, "schedule")
		}
	}
	return nil
}

// revert undoes a completed transition from -> to
func (s *reminderService) revert(ctx context.Context, from, to *SupplicationReminder) {
	if to != nil {
		if err := s.notifier.Cancel(ctx, to.ID); err != nil {
			s.logger.Error("Failed to cancel notification during revert",
				zap.String("reminderID", to.ID.String()),
				zap.Error(err))
		}
	}
	s.restore(ctx, from)
}

func (s *reminderService) restore(ctx context.Context, r *SupplicationReminder) {
	if !hasPending(r) {
		return
	}
	if err := s.notifier.Schedule(ctx, s.notificationFor(*r)); err != nil {
		s.logger.Error("Failed to restore notification",
			zap.String("reminderID", r.ID.String()),
			zap.Error(err))
	}
}

func (s *reminderService) notificationFor(r SupplicationReminder) ScheduledNotification {
	var text string
	if s.cfg.Texts != nil {
		text, _ = s.cfg.Texts.Text(r.SupplicationID)
	}
	return ScheduledNotification{
		ID:      r.ID,
		Content: BuildContent(r, text, s.cfg.PreviewLength),
		Trigger: *r.NextTrigger,
	}
}

func (s *reminderService) publishChange(operation string, before, after SupplicationReminder, reason string) {
	s.publisher.Publish(events.TopicReminderUpdated, events.ReminderUpdated{
		Event:       events.NewEvent(),
		ReminderID:  after.ID.String(),
		Operation:   operation,
		IsActive:    after.IsActive,
		IsPaused:    after.IsPaused,
		NextTrigger: copyTime(after.NextTrigger),
	})
	if before.IsActive && !after.IsActive {
		s.publisher.Publish(events.TopicReminderDeactivated, events.ReminderDeactivated{
			Event:      events.NewEvent(),
			ReminderID: after.ID.String(),
			Reason:     reason,
		})
	}
}

func (s *reminderService) observe(operation string, err *error) {
	s.metrics.ObserveOperation(operation, *err)
}

func hasPending(r *SupplicationReminder) bool {
	return r != nil && r.IsScheduled() && r.NextTrigger != nil
}

func findReminder(list []SupplicationReminder, id common.ID) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
