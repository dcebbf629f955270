package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dua-reminders/internal/common"
	"dua-reminders/internal/config"
	"dua-reminders/internal/events"
	"dua-reminders/internal/notifier"
	"dua-reminders/internal/reminder"
	"dua-reminders/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

type fakeSender struct {
	mu   sync.Mutex
	sent []reminder.ScheduledNotification
	err  error
}

func (f *fakeSender) Send(ctx context.Context, n reminder.ScheduledNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, n)
	return f.err
}

func (f *fakeSender) Name() string { return "fake" }

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.sent)
}

type fakeMaintainer struct {
	result    *reminder.CleanupResult
	err       error
	calls     int
	syncErr   error
	syncCalls int
}

func (f *fakeMaintainer) CleanupExpiredReminders(ctx context.Context) (*reminder.CleanupResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeMaintainer) SyncNotifications(ctx context.Context) (*reminder.SyncResult, error) {
	f.syncCalls++
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return &reminder.SyncResult{}, nil
}

func validConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		PollInterval:    1,
		WorkerCount:     2,
		ShutdownTimeout: 10,
		CleanupSchedule: "@every 1h",
		Enabled:         true,
	}
}

func newTestScheduler(t *testing.T, source DueSource, sender notifier.Sender, maintainer Maintainer, bus events.EventBus) *scheduler {
	t.Helper()
	s, err := NewScheduler(validConfig(), source, sender, maintainer, bus, common.NewMockClock(testNow), zaptest.NewLogger(t))
	require.NoError(t, err)
	impl := s.(*scheduler)
	impl.ctx = context.Background()
	return impl
}

func notificationAt(trigger time.Time) reminder.ScheduledNotification {
	return reminder.ScheduledNotification{
		ID:      common.NewID(),
		Content: reminder.NotificationContent{Title: "Morning remembrance"},
		Trigger: trigger,
	}
}

func TestScheduler_Configuration(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.SchedulerConfig)
		expectError   bool
		expectedError string
	}{
		{
			name:   "valid configuration",
			mutate: func(c *config.SchedulerConfig) {},
		},
		{
			name:          "invalid poll interval",
			mutate:        func(c *config.SchedulerConfig) { c.PollInterval = 0 },
			expectError:   true,
			expectedError: "must be greater than 0",
		},
		{
			name:          "invalid worker count",
			mutate:        func(c *config.SchedulerConfig) { c.WorkerCount = 0 },
			expectError:   true,
			expectedError: "must be greater than 0",
		},
		{
			name:          "invalid shutdown timeout",
			mutate:        func(c *config.SchedulerConfig) { c.ShutdownTimeout = -1 },
			expectError:   true,
			expectedError: "must be greater than 0",
		},
		{
			name:          "invalid cleanup schedule",
			mutate:        func(c *config.SchedulerConfig) { c.CleanupSchedule = "every hour" },
			expectError:   true,
			expectedError: "cleanup_schedule",
		},
		{
			name:   "cleanup disabled",
			mutate: func(c *config.SchedulerConfig) { c.CleanupSchedule = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			s, err := NewScheduler(cfg, notifier.NewLocalNotifier(true, zap.NewNop()), &fakeSender{}, &fakeMaintainer{}, events.NewMockEventBus(), common.NewMockClock(testNow), zap.NewNop())
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, IsConfigurationError(err))
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestScheduler_DispatchDue(t *testing.T) {
	ctx := context.Background()
	local := notifier.NewLocalNotifier(true, zap.NewNop())
	bus := events.NewMockEventBus()
	sender := &fakeSender{}
	s := newTestScheduler(t, local, sender, nil, bus)

	early := notificationAt(testNow.Add(-time.Hour))
	exact := notificationAt(testNow)
	future := notificationAt(testNow.Add(time.Minute))
	for _, n := range []reminder.ScheduledNotification{future, exact, early} {
		require.NoError(t, local.Schedule(ctx, n))
	}

	worker := &dispatchWorker{scheduler: s, logger: zap.NewNop()}
	require.NoError(t, worker.dispatchDue(ctx))

	require.Equal(t, 2, sender.count())
	assert.Equal(t, early.ID, sender.sent[0].ID, "due notifications are sent in trigger order")
	assert.Equal(t, exact.ID, sender.sent[1].ID)
	assert.Equal(t, 1, local.Len())

	published := bus.GetPublishedEvents(events.TopicNotificationFired)
	require.Len(t, published, 2)
	fired := published[0].(events.NotificationFired)
	assert.Equal(t, early.ID.String(), fired.NotificationID)
	assert.True(t, early.Trigger.Equal(fired.ScheduledFor))
	assert.True(t, testNow.Equal(fired.FiredAt))

	summary := s.GetMetrics().GetMetricsSummary()
	assert.Equal(t, int64(2), summary.NotificationsDispatched)
	assert.Zero(t, summary.DeliveryFailures)

	// nothing left that is due
	require.NoError(t, worker.dispatchDue(ctx))
	assert.Equal(t, 2, sender.count())
}

func TestScheduler_DeliveryFailureStillAdvances(t *testing.T) {
	ctx := context.Background()
	local := notifier.NewLocalNotifier(true, zap.NewNop())
	bus := events.NewMockEventBus()
	sender := &fakeSender{err: notifier.ErrUndeliverable}
	s := newTestScheduler(t, local, sender, nil, bus)

	require.NoError(t, local.Schedule(ctx, notificationAt(testNow)))

	worker := &dispatchWorker{scheduler: s, logger: zap.NewNop()}
	require.NoError(t, worker.dispatchDue(ctx))

	events.AssertEventCount(t, bus, events.TopicNotificationFired, 1)
	summary := s.GetMetrics().GetMetricsSummary()
	assert.Equal(t, int64(1), summary.DeliveryFailures)
	assert.Equal(t, int64(1), summary.ProcessingErrors)
}

func TestScheduler_PublishFailure(t *testing.T) {
	ctx := context.Background()
	local := notifier.NewLocalNotifier(true, zap.NewNop())
	bus := events.NewMockEventBus()
	bus.SetPublishError(events.ErrBusClosed)
	s := newTestScheduler(t, local, &fakeSender{}, nil, bus)

	n := notificationAt(testNow)
	worker := &dispatchWorker{scheduler: s, logger: zap.NewNop()}
	err := worker.dispatch(ctx, n, testNow)

	var dispatchErr *DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Equal(t, "publish_event", dispatchErr.Operation)
	assert.ErrorIs(t, err, events.ErrBusClosed)
	assert.True(t, IsTemporaryError(err))
}

func TestScheduler_Cleanup(t *testing.T) {
	t.Run("records deactivated reminders", func(t *testing.T) {
		maintainer := &fakeMaintainer{result: &reminder.CleanupResult{Deactivated: []common.ID{common.NewID(), common.NewID()}}}
		s := newTestScheduler(t, notifier.NewLocalNotifier(true, zap.NewNop()), &fakeSender{}, maintainer, nil)

		s.runMaintenance()

		assert.Equal(t, 1, maintainer.calls)
		assert.Equal(t, 1, maintainer.syncCalls)
		summary := s.GetMetrics().GetMetricsSummary()
		assert.Equal(t, int64(1), summary.CleanupRuns)
		assert.Equal(t, int64(2), summary.RemindersDeactivated)
		assert.Zero(t, summary.ProcessingErrors)
	})

	t.Run("records failures", func(t *testing.T) {
		maintainer := &fakeMaintainer{err: errors.New("storage unavailable")}
		s := newTestScheduler(t, notifier.NewLocalNotifier(true, zap.NewNop()), &fakeSender{}, maintainer, nil)

		s.runMaintenance()

		summary := s.GetMetrics().GetMetricsSummary()
		assert.Equal(t, int64(1), summary.CleanupRuns)
		assert.Equal(t, int64(1), summary.ProcessingErrors)
		assert.Equal(t, 1, maintainer.syncCalls, "sync still runs after a failed cleanup")
	})

	t.Run("records sync failures", func(t *testing.T) {
		maintainer := &fakeMaintainer{
			result:  &reminder.CleanupResult{},
			syncErr: errors.New("notifier unavailable"),
		}
		s := newTestScheduler(t, notifier.NewLocalNotifier(true, zap.NewNop()), &fakeSender{}, maintainer, nil)

		s.runMaintenance()

		summary := s.GetMetrics().GetMetricsSummary()
		assert.Equal(t, int64(1), summary.CleanupRuns)
		assert.Equal(t, int64(1), summary.ProcessingErrors)
	})
}

func TestScheduler_FiredNotificationAdvancesReminder(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	clock := common.NewMockClock(time.Date(2024, 3, 13, 8, 0, 0, 0, time.UTC))
	local := notifier.NewLocalNotifier(true, logger)
	bus := events.NewMockEventBus()
	store := reminder.NewReminderStore(storage.NewMemoryStore(), logger)
	service := reminder.NewReminderService(store, local, bus, clock, logger, reminder.ServiceConfig{RecordFiredEvents: true})

	created, err := service.CreateReminder(ctx, reminder.CreateReminderRequest{
		SupplicationTitle: "Morning remembrance",
		ScheduledTime:     reminder.TimeOfDay{Hour: 9},
		Frequency:         reminder.FrequencyDaily,
	})
	require.NoError(t, err)

	sender := &fakeSender{}
	s, err := NewScheduler(validConfig(), local, sender, service, bus, clock, logger)
	require.NoError(t, err)
	impl := s.(*scheduler)
	impl.ctx = ctx

	clock.SetTime(time.Date(2024, 3, 13, 9, 0, 30, 0, time.UTC))
	worker := &dispatchWorker{scheduler: impl, logger: logger}
	require.NoError(t, worker.dispatchDue(ctx))

	require.Equal(t, 1, sender.count())
	assert.Equal(t, "Morning remembrance", sender.sent[0].Content.Title)

	stored, err := service.GetReminder(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.NextTrigger)
	assert.True(t, time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC).Equal(*stored.NextTrigger))

	scheduled, err := local.ListScheduled(ctx)
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.True(t, stored.NextTrigger.Equal(scheduled[0].Trigger))
}

func TestScheduler_FiredNotificationFailures(t *testing.T) {
	nine := time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)
	retryAt := nine.Add(time.Minute)
	tomorrow := nine.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		fail    func(kv *storage.MemoryStore)
		recover func(kv *storage.MemoryStore)
	}{
		{
			name:    "storage unavailable while the fire is applied",
			fail:    func(kv *storage.MemoryStore) { kv.FailReads(errors.New("connection reset")) },
			recover: func(kv *storage.MemoryStore) { kv.FailReads(nil) },
		},
		{
			name:    "storage rejects the advanced reminder",
			fail:    func(kv *storage.MemoryStore) { kv.FailWrites(reminder.RemindersKey, errors.New("disk full")) },
			recover: func(kv *storage.MemoryStore) { kv.FailWrites(reminder.RemindersKey, nil) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			logger := zaptest.NewLogger(t)
			clock := common.NewMockClock(time.Date(2024, 3, 13, 8, 0, 0, 0, time.UTC))
			local := notifier.NewLocalNotifier(true, logger)
			bus := events.NewMockEventBus()
			kv := storage.NewMemoryStore()
			service := reminder.NewReminderService(reminder.NewReminderStore(kv, logger), local, bus, clock, logger, reminder.ServiceConfig{})

			created, err := service.CreateReminder(ctx, reminder.CreateReminderRequest{
				SupplicationTitle: "Morning remembrance",
				ScheduledTime:     reminder.TimeOfDay{Hour: 9},
				Frequency:         reminder.FrequencyDaily,
			})
			require.NoError(t, err)

			sender := &fakeSender{}
			s := newTestScheduler(t, local, sender, service, bus)
			s.clock = clock
			worker := &dispatchWorker{scheduler: s, logger: logger}

			clock.SetTime(nine)
			tt.fail(kv)
			require.NoError(t, worker.dispatchDue(ctx))
			require.Equal(t, 1, sender.count())

			scheduled, err := local.ListScheduled(ctx)
			require.NoError(t, err)
			require.Len(t, scheduled, 1, "the reminder keeps a pending notification")
			assert.True(t, retryAt.Equal(scheduled[0].Trigger))
			assert.Equal(t, "Morning remembrance", scheduled[0].Content.Title)

			tt.recover(kv)
			clock.SetTime(retryAt)
			require.NoError(t, worker.dispatchDue(ctx))

			stored, err := service.GetReminder(ctx, created.ID)
			require.NoError(t, err)
			require.NotNil(t, stored.NextTrigger)
			assert.True(t, tomorrow.Equal(*stored.NextTrigger))
			require.NotNil(t, stored.LastTriggered)
			assert.True(t, nine.Equal(*stored.LastTriggered))

			scheduled, err = local.ListScheduled(ctx)
			require.NoError(t, err)
			require.Len(t, scheduled, 1)
			assert.True(t, tomorrow.Equal(scheduled[0].Trigger))
		})
	}
}

func TestScheduler_PublishFailureIsHealedByMaintenance(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	clock := common.NewMockClock(time.Date(2024, 3, 13, 8, 0, 0, 0, time.UTC))
	local := notifier.NewLocalNotifier(true, logger)
	bus := events.NewMockEventBus()
	service := reminder.NewReminderService(reminder.NewReminderStore(storage.NewMemoryStore(), logger), local, bus, clock, logger, reminder.ServiceConfig{})

	created, err := service.CreateReminder(ctx, reminder.CreateReminderRequest{
		SupplicationTitle: "Morning remembrance",
		ScheduledTime:     reminder.TimeOfDay{Hour: 9},
		Frequency:         reminder.FrequencyDaily,
	})
	require.NoError(t, err)

	s := newTestScheduler(t, local, &fakeSender{}, service, bus)
	s.clock = clock
	worker := &dispatchWorker{scheduler: s, logger: logger}

	clock.SetTime(time.Date(2024, 3, 13, 9, 0, 30, 0, time.UTC))
	bus.SetPublishError(events.ErrBusClosed)
	require.NoError(t, worker.dispatchDue(ctx))
	assert.Zero(t, local.Len())
	assert.Equal(t, int64(1), s.GetMetrics().GetMetricsSummary().ProcessingErrors)

	bus.SetPublishError(nil)
	s.runMaintenance()

	stored, err := service.GetReminder(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.NextTrigger)
	assert.True(t, time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC).Equal(*stored.NextTrigger))

	scheduled, err := local.ListScheduled(ctx)
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.True(t, stored.NextTrigger.Equal(scheduled[0].Trigger))
}

func TestScheduler_StartStop(t *testing.T) {
	local := notifier.NewLocalNotifier(true, zap.NewNop())
	sender := &fakeSender{}
	s, err := NewScheduler(validConfig(), local, sender, &fakeMaintainer{result: &reminder.CleanupResult{}}, events.NewMockEventBus(), common.NewMockClock(testNow), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, local.Schedule(context.Background(), notificationAt(testNow)))

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	assert.Eventually(t, func() bool { return sender.count() == 1 }, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
}

func TestScheduler_DoubleStartStop(t *testing.T) {
	s, err := NewScheduler(validConfig(), notifier.NewLocalNotifier(true, zap.NewNop()), &fakeSender{}, nil, nil, common.NewMockClock(testNow), zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()

	// First start should succeed
	err = s.Start(ctx)
	assert.NoError(t, err)

	// Second start should fail
	err = s.Start(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	// First stop should succeed
	err = s.Stop()
	assert.NoError(t, err)

	// Second stop should fail
	err = s.Stop()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not running")
}

func TestSchedulerMetrics_Health(t *testing.T) {
	m := NewSchedulerMetrics()
	assert.True(t, m.IsHealthy(), "an idle dispatcher is healthy")

	m.RecordDelivery("fake", nil)
	m.RecordProcessingError(errors.New("boom"))
	m.RecordProcessingError(errors.New("boom"))

	status := m.GetHealthStatus()
	assert.False(t, status.IsHealthy)
	assert.Equal(t, int64(2), status.ProcessingErrors)
	assert.InDelta(t, 2.0/3.0, status.ErrorRate, 0.001)
}
