// Package metrics holds the Prometheus collectors of the reminder service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReminderOperations tracks reminder service operations by outcome
	ReminderOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dua_reminders_operations_total",
			Help: "Total number of reminder service operations",
		},
		[]string{"operation", "status"},
	)

	// ActiveReminders tracks the number of active reminders at the last stats computation
	ActiveReminders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dua_reminders_active",
			Help: "Number of active reminders",
		},
	)

	// NotificationsDispatched tracks due notifications handed to a sender
	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dua_reminders_notifications_dispatched_total",
			Help: "Total number of due notifications dispatched",
		},
		[]string{"sender", "status"},
	)

	// DispatchDuration tracks the duration of one dispatch cycle
	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dua_reminders_dispatch_duration_seconds",
			Help:    "Dispatch cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CleanupRuns tracks scheduled expired-reminder sweeps
	CleanupRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dua_reminders_cleanup_runs_total",
			Help: "Total number of expired reminder cleanup runs",
		},
		[]string{"status"},
	)

	// RemindersDeactivated tracks reminders deactivated by cleanup
	RemindersDeactivated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dua_reminders_deactivated_total",
			Help: "Total number of reminders deactivated because their end date passed",
		},
	)

	// HTTPRequests tracks API requests
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dua_reminders_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RateLimitExceeded tracks rejected API requests
	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dua_reminders_rate_limit_exceeded_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// Status returns the status label for an outcome
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// Recorder implements reminder.MetricsRecorder on top of the package collectors
type Recorder struct{}

// NewRecorder creates a Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ObserveOperation(operation string, err error) {
	ReminderOperations.WithLabelValues(operation, Status(err)).Inc()
}

func (r *Recorder) SetActiveReminders(count int) {
	ActiveReminders.Set(float64(count))
}
