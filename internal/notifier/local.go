// Package notifier holds the in-process notification surface: a scheduled set
// that the dispatcher drains when triggers come due, and the senders that
// deliver due notifications.
package notifier

import (
	"context"
	"sort"
	"sync"
	"time"

	"dua-reminders/internal/common"
	"dua-reminders/internal/reminder"

	"go.uber.org/zap"
)

// LocalNotifier implements reminder.PlatformNotifier with an in-memory scheduled set.
// It is constructed once at startup and shared by the service and the dispatcher.
type LocalNotifier struct {
	mu                sync.RWMutex
	scheduled         map[common.ID]reminder.ScheduledNotification
	permissionGranted bool
	logger            *zap.Logger
}

// NewLocalNotifier creates a LocalNotifier
func NewLocalNotifier(permissionGranted bool, logger *zap.Logger) *LocalNotifier {
	return &LocalNotifier{
		scheduled:         make(map[common.ID]reminder.ScheduledNotification),
		permissionGranted: permissionGranted,
		logger:            logger,
	}
}

// Schedule adds or replaces the notification with the same id
func (n *LocalNotifier) Schedule(ctx context.Context, notification reminder.ScheduledNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.permissionGranted {
		return reminder.ErrPermissionDenied
	}

	n.scheduled[notification.ID] = copyNotification(notification)

	n.logger.Debug("Notification scheduled",
		zap.String("notificationID", notification.ID.String()),
		zap.Time("trigger", notification.Trigger))
	return nil
}

// Cancel removes the notification; unknown ids are ignored
func (n *LocalNotifier) Cancel(ctx context.Context, id common.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.scheduled[id]; ok {
		delete(n.scheduled, id)
		n.logger.Debug("Notification cancelled", zap.String("notificationID", id.String()))
	}
	return nil
}

// ListScheduled returns the pending notifications ordered by trigger
func (n *LocalNotifier) ListScheduled(ctx context.Context) ([]reminder.ScheduledNotification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]reminder.ScheduledNotification, 0, len(n.scheduled))
	for _, notification := range n.scheduled {
		out = append(out, copyNotification(notification))
	}
	sortByTrigger(out)
	return out, nil
}

// TakeDue removes and returns every notification whose trigger is at or before now
func (n *LocalNotifier) TakeDue(now time.Time) []reminder.ScheduledNotification {
	n.mu.Lock()
	defer n.mu.Unlock()

	var due []reminder.ScheduledNotification
	for id, notification := range n.scheduled {
		if !notification.Trigger.After(now) {
			due = append(due, notification)
			delete(n.scheduled, id)
		}
	}
	sortByTrigger(due)
	return due
}

// SetPermission changes whether new notifications may be scheduled
func (n *LocalNotifier) SetPermission(granted bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.permissionGranted = granted
}

// Len returns the number of pending notifications
func (n *LocalNotifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.scheduled)
}

func sortByTrigger(list []reminder.ScheduledNotification) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Trigger.Equal(list[j].Trigger) {
			return list[i].ID < list[j].ID
		}
		return list[i].Trigger.Before(list[j].Trigger)
	})
}

func copyNotification(n reminder.ScheduledNotification) reminder.ScheduledNotification {
	if n.Content.Data != nil {
		data := make(map[string]string, len(n.Content.Data))
		for k, v := range n.Content.Data {
			data[k] = v
		}
		n.Content.Data = data
	}
	return n
}
