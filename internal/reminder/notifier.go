package reminder

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"dua-reminders/internal/common"
)

//go:generate mockgen -source=notifier.go -destination=../mocks/notifier_mocks.go -package=mocks

// DefaultPreviewLength is the snippet length, in runes, of preview-style notifications
const DefaultPreviewLength = 100

// NotificationContent is what a notification shows, plus delivery hints
type NotificationContent struct {
	Title     string            `json:"title"`
	Body      string            `json:"body,omitempty"`
	Sound     bool              `json:"sound"`
	Vibration bool              `json:"vibration"`
	Data      map[string]string `json:"data,omitempty"`
}

// ScheduledNotification is a one-shot notification handed to the platform
type ScheduledNotification struct {
	ID      common.ID           `json:"id"`
	Content NotificationContent `json:"content"`
	Trigger time.Time           `json:"trigger"`
}

// PlatformNotifier schedules, cancels and lists notifications on the delivery surface.
// Scheduling an id that is already scheduled replaces it; cancelling an unknown id is not an error.
// Implementations report a refused permission as ErrPermissionDenied.
type PlatformNotifier interface {
	Schedule(ctx context.Context, notification ScheduledNotification) error
	Cancel(ctx context.Context, id common.ID) error
	ListScheduled(ctx context.Context) ([]ScheduledNotification, error)
}

// SupplicationTexts resolves the full text of a supplication from the content catalog
type SupplicationTexts interface {
	Text(supplicationID string) (string, bool)
}

// BuildContent derives the notification content from the reminder's style.
// text is the full supplication text and may be empty when the catalog does not know it.
func BuildContent(r SupplicationReminder, text string, previewLength int) NotificationContent {
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}

	content := NotificationContent{
		Title:     r.SupplicationTitle,
		Sound:     r.SoundEnabled,
		Vibration: r.VibrationEnabled,
		Data: map[string]string{
			"reminder_id":     r.ID.String(),
			"supplication_id": r.SupplicationID,
		},
	}

	text = strings.TrimSpace(text)
	switch r.NotificationStyle {
	case StylePreview:
		if text == "" {
			content.Body = r.Category
		} else {
			content.Body = snippet(text, previewLength)
		}
	case StyleFull:
		if text == "" {
			content.Body = r.Category
		} else {
			content.Body = text
		}
	}

	return content
}

func snippet(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
