package mocks

import (
	"context"

	"dua-reminders/internal/reminder"

	"github.com/stretchr/testify/mock"
)

// MockSender is a testify mock of notifier.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, notification reminder.ScheduledNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockSender) Name() string {
	args := m.Called()
	return args.String(0)
}
