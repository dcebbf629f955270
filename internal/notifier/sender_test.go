package notifier

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dua-reminders/internal/reminder"

	"firebase.google.com/go/v4/messaging"
	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type flakySender struct {
	errs  []error
	calls int
}

func (f *flakySender) Send(ctx context.Context, n reminder.ScheduledNotification) error {
	f.calls++
	if f.calls <= len(f.errs) {
		return f.errs[f.calls-1]
	}
	return nil
}

func (f *flakySender) Name() string { return "flaky" }

func newTestRetryingSender(t *testing.T, next Sender, maxRetries int) *RetryingSender {
	s := NewRetryingSender(next, maxRetries, zaptest.NewLogger(t))
	s.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return s
}

func TestRetryingSender(t *testing.T) {
	transient := errors.New("timeout")

	tests := []struct {
		name      string
		errs      []error
		retries   int
		wantErr   bool
		wantCalls int
	}{
		{name: "first attempt succeeds", retries: 3, wantCalls: 1},
		{name: "recovers after transient failures", errs: []error{transient, transient}, retries: 3, wantCalls: 3},
		{name: "gives up after max retries", errs: []error{transient, transient, transient}, retries: 2, wantErr: true, wantCalls: 3},
		{name: "undeliverable is not retried", errs: []error{fmt.Errorf("%w: blocked", ErrUndeliverable)}, retries: 5, wantErr: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &flakySender{errs: tt.errs}
			sender := newTestRetryingSender(t, next, tt.retries)

			err := sender.Send(context.Background(), notificationAt("a", time.Now()))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, next.calls)
			assert.Equal(t, "flaky", sender.Name())
		})
	}
}

func TestLogSender(t *testing.T) {
	sender := NewLogSender(zaptest.NewLogger(t))
	assert.NoError(t, sender.Send(context.Background(), notificationAt("a", time.Now())))
	assert.Equal(t, "log", sender.Name())
}

type fakeFCMClient struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeFCMClient) Send(ctx context.Context, message *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, message)
	return "projects/test/messages/1", nil
}

func TestFCMSender_Send(t *testing.T) {
	client := &fakeFCMClient{}
	sender := newFCMSender(client, "device-token", zaptest.NewLogger(t))

	n := notificationAt("a", time.Now())
	n.Content.Body = "Body"
	n.Content.Sound = true
	n.Content.Vibration = true

	require.NoError(t, sender.Send(context.Background(), n))
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	assert.Equal(t, "device-token", msg.Token)
	assert.Equal(t, "Title a", msg.Notification.Title)
	assert.Equal(t, "Body", msg.Notification.Body)
	assert.Equal(t, "default", msg.Android.Notification.Sound)
	assert.True(t, msg.Android.Notification.DefaultVibrateTimings)
	assert.Equal(t, "default", msg.APNS.Payload.Aps.Sound)
	assert.Equal(t, "fcm", sender.Name())
}

func TestFCMSender_SilentNotification(t *testing.T) {
	msg := buildFCMMessage("token", notificationAt("a", time.Now()))
	assert.Empty(t, msg.Android.Notification.Sound)
	assert.False(t, msg.Android.Notification.DefaultVibrateTimings)
	assert.Empty(t, msg.APNS.Payload.Aps.Sound)
}

func TestFCMSender_TransientError(t *testing.T) {
	client := &fakeFCMClient{err: errors.New("connection reset")}
	sender := newFCMSender(client, "device-token", zaptest.NewLogger(t))

	err := sender.Send(context.Background(), notificationAt("a", time.Now()))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUndeliverable)
}

type fakeTelegramAPI struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeTelegramAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestTelegramSender_Send(t *testing.T) {
	api := &fakeTelegramAPI{}
	sender := newTelegramSender(api, 42, zaptest.NewLogger(t))

	n := notificationAt("a", time.Now())
	n.Content.Body = "Read it slowly"

	require.NoError(t, sender.Send(context.Background(), n))
	require.Len(t, api.sent, 1)
	assert.Equal(t, int64(42), api.sent[0].ChatID)
	assert.Equal(t, "Title a\n\nRead it slowly", api.sent[0].Text)
	assert.True(t, api.sent[0].DisableNotification)
	assert.Equal(t, "telegram", sender.Name())
}

func TestTelegramSender_Errors(t *testing.T) {
	tests := []struct {
		name              string
		err               error
		wantUndeliverable bool
	}{
		{name: "bot blocked", err: &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}, wantUndeliverable: true},
		{name: "network failure", err: errors.New("dial tcp: timeout"), wantUndeliverable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := newTelegramSender(&fakeTelegramAPI{err: tt.err}, 42, zaptest.NewLogger(t))
			err := sender.Send(context.Background(), notificationAt("a", time.Now()))
			require.Error(t, err)
			assert.Equal(t, tt.wantUndeliverable, errors.Is(err, ErrUndeliverable))
		})
	}
}

func TestNewSenders_RequireConfiguration(t *testing.T) {
	_, err := NewTelegramSender("", 1, zaptest.NewLogger(t))
	assert.Error(t, err)

	_, err = NewFCMSender(context.Background(), "", "", zaptest.NewLogger(t))
	assert.Error(t, err)
}
