package notifier

import (
	"context"
	"errors"
	"fmt"

	"dua-reminders/internal/reminder"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegramAPI is the subset of tgbotapi.BotAPI used for delivery
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender delivers notifications as messages to one Telegram chat
type TelegramSender struct {
	bot    telegramAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramSender creates a bot client and validates the token
func NewTelegramSender(token string, chatID int64, logger *zap.Logger) (*TelegramSender, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram sender initialized", zap.String("username", bot.Self.UserName))
	return newTelegramSender(bot, chatID, logger), nil
}

func newTelegramSender(bot telegramAPI, chatID int64, logger *zap.Logger) *TelegramSender {
	return &TelegramSender{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}
}

func (s *TelegramSender) Send(ctx context.Context, notification reminder.ScheduledNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(s.chatID, formatMessage(notification.Content))
	msg.DisableNotification = !notification.Content.Sound

	if _, err := s.bot.Send(msg); err != nil {
		var apiErr *tgbotapi.Error
		// 400 and 403 mean the chat is gone or the bot was blocked
		if errors.As(err, &apiErr) && (apiErr.Code == 400 || apiErr.Code == 403) {
			return fmt.Errorf("%w: %v", ErrUndeliverable, err)
		}
		s.logger.Error("Failed to send telegram message",
			zap.Int64("chat_id", s.chatID),
			zap.Error(err))
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.logger.Debug("Telegram message sent",
		zap.String("notificationID", notification.ID.String()),
		zap.Int64("chat_id", s.chatID))
	return nil
}

func (s *TelegramSender) Name() string {
	return "telegram"
}
