package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dua-reminders/internal/common"
	"dua-reminders/internal/events"

	"go.uber.org/zap"
)

// ExportVersion is the backup document format version written by ExportReminders
const ExportVersion = 1

// ParseExportDocument decodes and validates a backup document as a whole.
// Nothing is applied unless every reminder and history entry is valid.
func ParseExportDocument(data []byte) (*ExportDocument, error) {
	var raw struct {
		Reminders  *json.RawMessage `json:"reminders"`
		History    *json.RawMessage `json:"history"`
		ExportedAt time.Time        `json:"exported_at"`
		Version    int              `json:"version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, NewValidationError("document", nil, fmt.Sprintf("backup is not valid JSON: %v", err))
	}
	if raw.Reminders == nil {
		return nil, NewValidationError("reminders", nil, "backup is missing the reminders array")
	}
	if raw.Version > ExportVersion {
		return nil, NewValidationError("version", raw.Version, fmt.Sprintf("unsupported backup version, expected at most %d", ExportVersion))
	}

	doc := &ExportDocument{
		ExportedAt: raw.ExportedAt,
		Version:    raw.Version,
	}
	if err := json.Unmarshal(*raw.Reminders, &doc.Reminders); err != nil || doc.Reminders == nil {
		return nil, NewValidationError("reminders", nil, "reminders must be an array")
	}
	if raw.History != nil {
		if err := json.Unmarshal(*raw.History, &doc.History); err != nil {
			return nil, NewValidationError("history", nil, "history must be an array")
		}
	}
	if doc.History == nil {
		doc.History = []ReminderHistory{}
	}

	validator := NewReminderValidator()
	seen := make(map[common.ID]bool, len(doc.Reminders))
	for i, r := range doc.Reminders {
		if err := validator.ValidateReminder(r); err != nil {
			return nil, NewValidationError(fmt.Sprintf("reminders[%d]", i), r.ID, err.Error())
		}
		if seen[r.ID] {
			return nil, NewValidationError(fmt.Sprintf("reminders[%d].id", i), r.ID, "duplicate reminder ID")
		}
		seen[r.ID] = true
	}
	for i, h := range doc.History {
		if err := validator.ValidateHistory(h); err != nil {
			return nil, NewValidationError(fmt.Sprintf("history[%d]", i), h.ID, err.Error())
		}
	}

	return doc, nil
}

// ExportReminders snapshots the full reminder list and history
func (s *reminderService) ExportReminders(ctx context.Context) (result *ExportDocument, err error) {
	defer s.observe("export", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.store.GetHistory(ctx)
	if err != nil {
		return nil, err
	}

	return &ExportDocument{
		Reminders:  reminders,
		History:    history,
		ExportedAt: s.clock.Now(),
		Version:    ExportVersion,
	}, nil
}

// ImportReminders replaces both collections with a backup document and reschedules
// every active, unpaused reminder. On any failure the previous state is kept.
func (s *reminderService) ImportReminders(ctx context.Context, data []byte) (result *ImportResult, err error) {
	defer s.observe("import", &err)

	doc, err := ParseExportDocument(data)
	if err != nil {
		s.logger.Warn("Rejected backup document", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	reminders := prepareImported(doc.Reminders, now)

	previous, err := s.notifier.ListScheduled(ctx)
	if err != nil {
		return nil, WrapNotifierError(err, "", "list scheduled")
	}

	var scheduled []common.ID
	rollback := func() {
		s.replaceScheduled(ctx, scheduled, previous)
	}

	for _, n := range previous {
		if err := s.notifier.Cancel(ctx, n.ID); err != nil {
			rollback()
			return nil, WrapNotifierError(err, n.ID, "cancel")
		}
	}

	for i := range reminders {
		if !hasPending(&reminders[i]) {
			continue
		}
		if err := s.notifier.Schedule(ctx, s.notificationFor(reminders[i])); err != nil {
			rollback()
			return nil, WrapNotifierError(err, reminders[i].ID, "schedule")
		}
		scheduled = append(scheduled, reminders[i].ID)
	}

	if err := s.store.ReplaceAll(ctx, reminders, doc.History); err != nil {
		rollback()
		s.logger.Error("Failed to persist imported reminders", zap.Error(err))
		return nil, err
	}

	result = &ImportResult{
		Reminders:   len(reminders),
		History:     len(doc.History),
		Rescheduled: len(scheduled),
	}

	s.logger.Info("Reminders imported",
		zap.Int("reminders", result.Reminders),
		zap.Int("history", result.History),
		zap.Int("rescheduled", result.Rescheduled))

	s.publisher.Publish(events.TopicRemindersImported, events.RemindersImported{
		Event:         events.NewEvent(),
		ReminderCount: result.Reminders,
		HistoryCount:  result.History,
		Rescheduled:   result.Rescheduled,
	})
	return result, nil
}

// ResetReminders drops every reminder and history entry and cancels all notifications
func (s *reminderService) ResetReminders(ctx context.Context) (err error) {
	defer s.observe("reset", &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.notifier.ListScheduled(ctx)
	if err != nil {
		return WrapNotifierError(err, "", "list scheduled")
	}

	for _, n := range previous {
		if err := s.notifier.Cancel(ctx, n.ID); err != nil {
			s.replaceScheduled(ctx, nil, previous)
			return WrapNotifierError(err, n.ID, "cancel")
		}
	}

	if err := s.store.ReplaceAll(ctx, []SupplicationReminder{}, []ReminderHistory{}); err != nil {
		s.replaceScheduled(ctx, nil, previous)
		return err
	}

	s.logger.Info("Reminders reset", zap.Int("cancelled", len(previous)))
	return nil
}

// replaceScheduled cancels ids and schedules previous again, best effort
func (s *reminderService) replaceScheduled(ctx context.Context, ids []common.ID, previous []ScheduledNotification) {
	for _, id := range ids {
		if err := s.notifier.Cancel(ctx, id); err != nil {
			s.logger.Error("Failed to cancel notification during rollback",
				zap.String("notificationID", id.String()),
				zap.Error(err))
		}
	}
	for _, n := range previous {
		if err := s.notifier.Schedule(ctx, n); err != nil {
			s.logger.Error("Failed to restore notification during rollback",
				zap.String("notificationID", n.ID.String()),
				zap.Error(err))
		}
	}
}

// prepareImported keeps still-valid pending triggers and recomputes stale ones from now
func prepareImported(reminders []SupplicationReminder, now time.Time) []SupplicationReminder {
	out := make([]SupplicationReminder, len(reminders))
	for i, r := range reminders {
		r = r.clone()
		if !r.IsScheduled() {
			r.NextTrigger = nil
			out[i] = r
			continue
		}
		if r.NextTrigger == nil || !r.NextTrigger.After(now) || (r.EndDate != nil && !r.NextTrigger.Before(*r.EndDate)) {
			r.NextTrigger = NextTrigger(r, now)
			if r.NextTrigger == nil {
				r.IsActive = false
			}
		}
		out[i] = r
	}
	return out
}
