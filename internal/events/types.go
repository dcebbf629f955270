package events

import (
	"time"

	"github.com/google/uuid"
)

// Event represents the base event structure with common fields
type Event struct {
	CorrelationID string    `json:"correlation_id" validate:"required"`
	Timestamp     time.Time `json:"timestamp" validate:"required"`
}

// NewEvent creates a new base event with generated correlation ID
func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// ReminderCreated is published after a reminder has been persisted and scheduled
type ReminderCreated struct {
	Event
	ReminderID        string     `json:"reminder_id" validate:"required"`
	SupplicationTitle string     `json:"supplication_title" validate:"required"`
	Frequency         string     `json:"frequency" validate:"required"`
	NextTrigger       *time.Time `json:"next_trigger,omitempty"`
}

// ReminderUpdated is published after any change to a reminder's configuration or state
type ReminderUpdated struct {
	Event
	ReminderID  string     `json:"reminder_id" validate:"required"`
	Operation   string     `json:"operation" validate:"required"`
	IsActive    bool       `json:"is_active"`
	IsPaused    bool       `json:"is_paused"`
	NextTrigger *time.Time `json:"next_trigger,omitempty"`
}

// ReminderCompleted is published when the user confirms a supplication
type ReminderCompleted struct {
	Event
	ReminderID        string    `json:"reminder_id" validate:"required"`
	SupplicationTitle string    `json:"supplication_title" validate:"required"`
	CompletedAt       time.Time `json:"completed_at" validate:"required"`
	CompletionCount   int       `json:"completion_count"`
}

// ReminderDeactivated is published when a reminder reaches its terminal state
type ReminderDeactivated struct {
	Event
	ReminderID string `json:"reminder_id" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

// ReminderDeleted is published after a reminder has been removed
type ReminderDeleted struct {
	Event
	ReminderID string `json:"reminder_id" validate:"required"`
}

// NotificationFired is published by the dispatcher once a scheduled notification was delivered
type NotificationFired struct {
	Event
	NotificationID string    `json:"notification_id" validate:"required"`
	Title          string    `json:"title"`
	Body           string    `json:"body,omitempty"`
	Sound          bool      `json:"sound"`
	Vibration      bool      `json:"vibration"`
	ScheduledFor   time.Time `json:"scheduled_for" validate:"required"`
	FiredAt        time.Time `json:"fired_at" validate:"required"`
}

// RemindersImported is published after a backup document replaced the dataset
type RemindersImported struct {
	Event
	ReminderCount int `json:"reminder_count"`
	HistoryCount  int `json:"history_count"`
	Rescheduled   int `json:"rescheduled"`
}

// Event topics constants
const (
	TopicReminderCreated     = "reminder.created"
	TopicReminderUpdated     = "reminder.updated"
	TopicReminderCompleted   = "reminder.completed"
	TopicReminderDeactivated = "reminder.deactivated"
	TopicReminderDeleted     = "reminder.deleted"
	TopicNotificationFired   = "notification.fired"
	TopicRemindersImported   = "reminders.imported"
)
