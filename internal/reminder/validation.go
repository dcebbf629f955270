package reminder

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Business rule constants
const (
	MaxTitleLength    = 255
	MaxCategoryLength = 100
	MaxCustomInterval = 365
)

// ReminderValidator validates reminder requests before any side effect
type ReminderValidator struct{}

// NewReminderValidator creates a new ReminderValidator
func NewReminderValidator() *ReminderValidator {
	return &ReminderValidator{}
}

// ValidateCreateRequest checks a creation request
func (v *ReminderValidator) ValidateCreateRequest(req CreateReminderRequest) error {
	if req.NotificationStyle != "" && !req.NotificationStyle.IsValid() {
		return NewValidationError("notification_style", req.NotificationStyle, "notification style must be one of minimal, preview, full")
	}
	return v.validateRule(req.SupplicationTitle, req.Category, req.ScheduledTime, req.Frequency, req.DaysOfWeek, req.CustomInterval)
}

// ValidateReminder checks a complete reminder, as stored or imported
func (v *ReminderValidator) ValidateReminder(r SupplicationReminder) error {
	if !r.ID.IsValid() {
		return NewValidationError("id", r.ID, "reminder ID must be a valid UUID")
	}
	if !r.NotificationStyle.IsValid() {
		return NewValidationError("notification_style", r.NotificationStyle, "notification style must be one of minimal, preview, full")
	}
	if r.CompletionCount < 0 {
		return NewValidationError("completion_count", r.CompletionCount, "completion count cannot be negative")
	}
	return v.validateRule(r.SupplicationTitle, r.Category, r.ScheduledTime, r.Frequency, r.DaysOfWeek, r.CustomInterval)
}

// ValidateHistory checks an imported history entry
func (v *ReminderValidator) ValidateHistory(h ReminderHistory) error {
	if !h.ID.IsValid() {
		return NewValidationError("history.id", h.ID, "history ID must be a valid UUID")
	}
	if h.ReminderID == "" {
		return NewValidationError("history.reminder_id", h.ReminderID, "reminder ID is required")
	}
	if h.TriggeredAt.IsZero() {
		return NewValidationError("history.triggered_at", h.TriggeredAt, "triggered time is required")
	}
	return nil
}

func (v *ReminderValidator) validateRule(title, category string, at TimeOfDay, freq Frequency, days []int, interval int) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("supplication_title", title, "title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return NewValidationError("supplication_title", title, fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength))
	}
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return NewValidationError("category", category, fmt.Sprintf("category cannot exceed %d characters", MaxCategoryLength))
	}
	if !at.IsValid() {
		return NewValidationError("scheduled_time", at.String(), "hour must be 0-23 and minute 0-59")
	}
	if !freq.IsValid() {
		return NewValidationError("frequency", freq, "frequency must be one of once, daily, weekly, monthly, custom")
	}

	switch freq {
	case FrequencyWeekly:
		if len(days) == 0 {
			return NewValidationError("days_of_week", days, "weekly reminders require at least one day")
		}
		for _, d := range days {
			if d < 0 || d > 6 {
				return NewValidationError("days_of_week", days, "days must be between 0 (Sunday) and 6 (Saturday)")
			}
		}
	case FrequencyCustom:
		if interval < 1 {
			return NewValidationError("custom_interval", interval, "custom interval must be at least 1 day")
		}
		if interval > MaxCustomInterval {
			return NewValidationError("custom_interval", interval, fmt.Sprintf("custom interval cannot exceed %d days", MaxCustomInterval))
		}
	}

	return nil
}

// normalizeDays sorts and deduplicates weekday indices
func normalizeDays(days []int) []int {
	if len(days) == 0 {
		return days
	}
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}
