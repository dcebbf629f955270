package scheduler

import (
	"context"
	"time"

	"dua-reminders/internal/events"
	"dua-reminders/internal/reminder"

	"go.uber.org/zap"
)

// dispatchWorker delivers due notifications and announces them on the event bus
type dispatchWorker struct {
	scheduler *scheduler
	workerID  int
	logger    *zap.Logger
}

// dispatchDue takes every due notification and dispatches it
func (w *dispatchWorker) dispatchDue(ctx context.Context) error {
	startTime := time.Now()
	now := w.scheduler.clock.Now()

	due := w.scheduler.source.TakeDue(now)
	if len(due) == 0 {
		return nil
	}

	w.logger.Info("Dispatching due notifications", zap.Int("notification_count", len(due)))

	delivered := 0
	errorCount := 0
	for _, n := range due {
		if err := w.dispatch(ctx, n, now); err != nil {
			w.logger.Error("Failed to dispatch notification",
				zap.String("notification_id", n.ID.String()),
				zap.Error(err))
			w.scheduler.metrics.RecordProcessingError(err)
			errorCount++
			continue
		}
		delivered++
	}

	duration := time.Since(startTime)
	w.scheduler.metrics.RecordDispatchCycle(duration)

	w.logger.Info("Dispatch cycle completed",
		zap.Int("total_notifications", len(due)),
		zap.Int("delivered_count", delivered),
		zap.Int("error_count", errorCount),
		zap.Duration("dispatch_duration", duration))

	return nil
}

// dispatch sends one notification and publishes NotificationFired. The event is published
// even when delivery failed so the reminder still advances to its next occurrence.
func (w *dispatchWorker) dispatch(ctx context.Context, n reminder.ScheduledNotification, firedAt time.Time) error {
	sendCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	sendErr := w.scheduler.sender.Send(sendCtx, n)
	w.scheduler.metrics.RecordDelivery(w.scheduler.sender.Name(), sendErr)

	fired := events.NotificationFired{
		Event:          events.NewEvent(),
		NotificationID: n.ID.String(),
		Title:          n.Content.Title,
		Body:           n.Content.Body,
		Sound:          n.Content.Sound,
		Vibration:      n.Content.Vibration,
		ScheduledFor:   n.Trigger,
		FiredAt:        firedAt,
	}
	if err := w.scheduler.publisher.PublishWithRetry(events.TopicNotificationFired, fired); err != nil {
		return NewDispatchError(n.ID.String(), "publish_event", err)
	}

	if sendErr != nil {
		return NewDispatchError(n.ID.String(), "send", sendErr)
	}

	w.logger.Debug("Notification dispatched",
		zap.String("notification_id", n.ID.String()),
		zap.Time("scheduled_for", n.Trigger))
	return nil
}
