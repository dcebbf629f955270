package reminder

import (
	"fmt"
	"time"

	"dua-reminders/internal/common"
)

// Frequency represents how often a reminder recurs
type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// IsValid checks if the frequency is one of the supported values
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return true
	default:
		return false
	}
}

// NotificationStyle controls how much of the supplication a notification shows
type NotificationStyle string

const (
	StyleMinimal NotificationStyle = "minimal"
	StylePreview NotificationStyle = "preview"
	StyleFull    NotificationStyle = "full"
)

// IsValid checks if the notification style is one of the supported values
func (s NotificationStyle) IsValid() bool {
	switch s {
	case StyleMinimal, StylePreview, StyleFull:
		return true
	default:
		return false
	}
}

// TimeOfDay is a wall-clock time independent of any date
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// On returns the instant at this time of day on the calendar date of day, in day's location
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// IsValid checks the hour and minute ranges
func (t TimeOfDay) IsValid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// SupplicationReminder is a scheduled intent to be notified about one supplication
type SupplicationReminder struct {
	ID                common.ID         `json:"id"`
	SupplicationID    string            `json:"supplication_id"`
	SupplicationTitle string            `json:"supplication_title"`
	Category          string            `json:"category"`
	ScheduledTime     TimeOfDay         `json:"scheduled_time"`
	Frequency         Frequency         `json:"frequency"`
	DaysOfWeek        []int             `json:"days_of_week,omitempty"`
	CustomInterval    int               `json:"custom_interval,omitempty"`
	EndDate           *time.Time        `json:"end_date,omitempty"`
	IsActive          bool              `json:"is_active"`
	IsPaused          bool              `json:"is_paused"`
	SoundEnabled      bool              `json:"sound_enabled"`
	VibrationEnabled  bool              `json:"vibration_enabled"`
	NotificationStyle NotificationStyle `json:"notification_style"`
	NextTrigger       *time.Time        `json:"next_trigger,omitempty"`
	LastTriggered     *time.Time        `json:"last_triggered,omitempty"`
	CompletionCount   int               `json:"completion_count"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// IsScheduled reports whether the reminder should have a pending notification
func (r SupplicationReminder) IsScheduled() bool {
	return r.IsActive && !r.IsPaused
}

// IsExpired reports whether the reminder's end date is at or before now
func (r SupplicationReminder) IsExpired(now time.Time) bool {
	return r.EndDate != nil && !now.Before(*r.EndDate)
}

// clone returns a deep copy so callers never share pointer fields with stored state
func (r SupplicationReminder) clone() SupplicationReminder {
	c := r
	if r.DaysOfWeek != nil {
		c.DaysOfWeek = append([]int(nil), r.DaysOfWeek...)
	}
	c.EndDate = copyTime(r.EndDate)
	c.NextTrigger = copyTime(r.NextTrigger)
	c.LastTriggered = copyTime(r.LastTriggered)
	return c
}

// ReminderHistory is an append-only record of one firing or completion
type ReminderHistory struct {
	ID                common.ID  `json:"id"`
	ReminderID        common.ID  `json:"reminder_id"`
	SupplicationTitle string     `json:"supplication_title"`
	TriggeredAt       time.Time  `json:"triggered_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	WasCompleted      bool       `json:"was_completed"`
}

// ReminderStats is derived from history on every read and never persisted
type ReminderStats struct {
	TotalReminders       int    `json:"total_reminders"`
	ActiveReminders      int    `json:"active_reminders"`
	CompletedToday       int    `json:"completed_today"`
	CompletedThisWeek    int    `json:"completed_this_week"`
	CompletedThisMonth   int    `json:"completed_this_month"`
	StreakDays           int    `json:"streak_days"`
	FavoriteSupplication string `json:"favorite_supplication,omitempty"`
}

// CreateReminderRequest carries the user supplied fields of a new reminder
type CreateReminderRequest struct {
	SupplicationID    string            `json:"supplication_id"`
	SupplicationTitle string            `json:"supplication_title"`
	Category          string            `json:"category"`
	ScheduledTime     TimeOfDay         `json:"scheduled_time"`
	Frequency         Frequency         `json:"frequency"`
	DaysOfWeek        []int             `json:"days_of_week,omitempty"`
	CustomInterval    int               `json:"custom_interval,omitempty"`
	EndDate           *time.Time        `json:"end_date,omitempty"`
	SoundEnabled      *bool             `json:"sound_enabled,omitempty"`
	VibrationEnabled  *bool             `json:"vibration_enabled,omitempty"`
	NotificationStyle NotificationStyle `json:"notification_style,omitempty"`
}

// ReminderUpdate holds a partial update; nil fields are left unchanged
type ReminderUpdate struct {
	SupplicationTitle *string            `json:"supplication_title,omitempty"`
	Category          *string            `json:"category,omitempty"`
	ScheduledTime     *TimeOfDay         `json:"scheduled_time,omitempty"`
	Frequency         *Frequency         `json:"frequency,omitempty"`
	DaysOfWeek        *[]int             `json:"days_of_week,omitempty"`
	CustomInterval    *int               `json:"custom_interval,omitempty"`
	EndDate           *time.Time         `json:"end_date,omitempty"`
	ClearEndDate      bool               `json:"clear_end_date,omitempty"`
	SoundEnabled      *bool              `json:"sound_enabled,omitempty"`
	VibrationEnabled  *bool              `json:"vibration_enabled,omitempty"`
	NotificationStyle *NotificationStyle `json:"notification_style,omitempty"`
}

// Apply returns a copy of r with the update's fields applied
func (u ReminderUpdate) Apply(r SupplicationReminder) SupplicationReminder {
	out := r.clone()
	if u.SupplicationTitle != nil {
		out.SupplicationTitle = *u.SupplicationTitle
	}
	if u.Category != nil {
		out.Category = *u.Category
	}
	if u.ScheduledTime != nil {
		out.ScheduledTime = *u.ScheduledTime
	}
	if u.Frequency != nil {
		out.Frequency = *u.Frequency
	}
	if u.DaysOfWeek != nil {
		out.DaysOfWeek = append([]int(nil), (*u.DaysOfWeek)...)
	}
	if u.CustomInterval != nil {
		out.CustomInterval = *u.CustomInterval
	}
	if u.ClearEndDate {
		out.EndDate = nil
	} else if u.EndDate != nil {
		out.EndDate = copyTime(u.EndDate)
	}
	if u.SoundEnabled != nil {
		out.SoundEnabled = *u.SoundEnabled
	}
	if u.VibrationEnabled != nil {
		out.VibrationEnabled = *u.VibrationEnabled
	}
	if u.NotificationStyle != nil {
		out.NotificationStyle = *u.NotificationStyle
	}
	return out
}

// ExportDocument is the backup format holding the whole dataset
type ExportDocument struct {
	Reminders  []SupplicationReminder `json:"reminders"`
	History    []ReminderHistory      `json:"history"`
	ExportedAt time.Time              `json:"exported_at"`
	Version    int                    `json:"version"`
}

// ImportResult summarizes a successful import
type ImportResult struct {
	Reminders   int `json:"reminders"`
	History     int `json:"history"`
	Rescheduled int `json:"rescheduled"`
}

// CleanupResult summarizes an expired-reminder sweep
type CleanupResult struct {
	Deactivated []common.ID `json:"deactivated"`
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// SyncResult summarizes a reconciliation between stored reminders and the notifier
type SyncResult struct {
	Scheduled   int `json:"scheduled"`
	Cancelled   int `json:"cancelled"`
	Deactivated int `json:"deactivated"`
}
