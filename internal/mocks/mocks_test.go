package mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"dua-reminders/internal/common"
	"dua-reminders/internal/notifier"
	"dua-reminders/internal/reminder"
	"dua-reminders/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/mock/gomock"
)

var (
	_ scheduler.Scheduler        = (*MockScheduler)(nil)
	_ notifier.Sender            = (*MockSender)(nil)
	_ reminder.PlatformNotifier  = (*MockPlatformNotifier)(nil)
	_ reminder.ReminderService   = (*MockReminderService)(nil)
	_ reminder.MetricsRecorder   = (*MockMetricsRecorder)(nil)
	_ reminder.SupplicationTexts = (*MockSupplicationTexts)(nil)
)

func TestMockScheduler_Lifecycle(t *testing.T) {
	m := NewMockScheduler()

	assert.NoError(t, m.Start(context.Background()))
	m.AssertStarted(t)

	assert.NoError(t, m.Stop())
	m.AssertStopped(t)

	assert.Equal(t, 1, m.GetCallCount("Start"))
	assert.Equal(t, 1, m.GetCallCount("Stop"))
	assert.NotNil(t, m.GetMetrics())
}

func TestMockScheduler_StartFailure(t *testing.T) {
	m := CreateFailingScheduler()

	err := m.Start(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mock start failure")
	assert.False(t, m.IsRunning())
}

func TestMockSender(t *testing.T) {
	sender := &MockSender{}
	n := reminder.ScheduledNotification{ID: common.NewID(), Trigger: time.Now()}

	sender.On("Name").Return("mock")
	sender.On("Send", mock.Anything, n).Return(notifier.ErrUndeliverable)

	assert.Equal(t, "mock", sender.Name())
	assert.ErrorIs(t, sender.Send(context.Background(), n), notifier.ErrUndeliverable)

	sender.AssertExpectations(t)
}

func TestMockPlatformNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockPlatformNotifier(ctrl)
	id := common.NewID()

	m.EXPECT().Cancel(gomock.Any(), id).Return(errors.New("boom"))
	m.EXPECT().ListScheduled(gomock.Any()).Return([]reminder.ScheduledNotification{{ID: id}}, nil)

	assert.Error(t, m.Cancel(context.Background(), id))
	list, err := m.ListScheduled(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}
