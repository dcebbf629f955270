package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dua-reminders/internal/reminder"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ErrUndeliverable marks delivery failures that retrying cannot fix
var ErrUndeliverable = errors.New("notification undeliverable")

// Sender delivers a due notification to the user
type Sender interface {
	Send(ctx context.Context, notification reminder.ScheduledNotification) error
	Name() string
}

// LogSender writes notifications to the log instead of a device
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, notification reminder.ScheduledNotification) error {
	s.logger.Info("Notification delivered",
		zap.String("notificationID", notification.ID.String()),
		zap.String("title", notification.Content.Title),
		zap.String("body", notification.Content.Body),
		zap.Bool("sound", notification.Content.Sound),
		zap.Bool("vibration", notification.Content.Vibration),
		zap.Time("trigger", notification.Trigger))
	return nil
}

func (s *LogSender) Name() string {
	return "log"
}

// RetryingSender retries transient delivery failures with exponential backoff
type RetryingSender struct {
	next       Sender
	maxRetries uint64
	newBackOff func() backoff.BackOff
	logger     *zap.Logger
}

// NewRetryingSender wraps next with bounded retries
func NewRetryingSender(next Sender, maxRetries int, logger *zap.Logger) *RetryingSender {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingSender{
		next:       next,
		maxRetries: uint64(maxRetries),
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:     logger,
	}
}

func (s *RetryingSender) Send(ctx context.Context, notification reminder.ScheduledNotification) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := s.next.Send(ctx, notification)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrUndeliverable) {
			return backoff.Permanent(err)
		}
		s.logger.Warn("Notification delivery failed, retrying",
			zap.String("sender", s.next.Name()),
			zap.String("notificationID", notification.ID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("%s delivery failed after %d attempts: %w", s.next.Name(), attempt, err)
	}
	return nil
}

func (s *RetryingSender) Name() string {
	return s.next.Name()
}

// formatMessage renders title and body as one plain-text message
func formatMessage(content reminder.NotificationContent) string {
	if strings.TrimSpace(content.Body) == "" {
		return content.Title
	}
	return content.Title + "\n\n" + content.Body
}
