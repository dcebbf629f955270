package notifier

import (
	"context"
	"fmt"

	"dua-reminders/internal/reminder"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// fcmClient is the subset of messaging.Client used for delivery
type fcmClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSender delivers notifications as Firebase Cloud Messaging pushes to one device
type FCMSender struct {
	client fcmClient
	token  string
	logger *zap.Logger
}

// NewFCMSender initializes a Firebase app from credentialsFile (or ambient credentials when empty)
func NewFCMSender(ctx context.Context, credentialsFile, deviceToken string, logger *zap.Logger) (*FCMSender, error) {
	if deviceToken == "" {
		return nil, fmt.Errorf("fcm device token is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	logger.Info("FCM sender initialized")
	return newFCMSender(client, deviceToken, logger), nil
}

func newFCMSender(client fcmClient, token string, logger *zap.Logger) *FCMSender {
	return &FCMSender{
		client: client,
		token:  token,
		logger: logger,
	}
}

func (s *FCMSender) Send(ctx context.Context, notification reminder.ScheduledNotification) error {
	message := buildFCMMessage(s.token, notification)

	response, err := s.client.Send(ctx, message)
	if err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return fmt.Errorf("%w: %v", ErrUndeliverable, err)
		}
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	s.logger.Debug("FCM message sent",
		zap.String("notificationID", notification.ID.String()),
		zap.String("messageID", response))
	return nil
}

func (s *FCMSender) Name() string {
	return "fcm"
}

func buildFCMMessage(token string, notification reminder.ScheduledNotification) *messaging.Message {
	content := notification.Content

	android := &messaging.AndroidNotification{
		DefaultVibrateTimings: content.Vibration,
	}
	aps := &messaging.Aps{}
	if content.Sound {
		android.Sound = "default"
		aps.Sound = "default"
	}

	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: content.Title,
			Body:  content.Body,
		},
		Data: content.Data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: android,
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{Aps: aps},
		},
	}
}
