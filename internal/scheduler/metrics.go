package scheduler

import (
	"sync"
	"time"

	"dua-reminders/internal/metrics"
)

// SchedulerMetrics tracks dispatch and cleanup activity in-process and mirrors it to Prometheus
type SchedulerMetrics struct {
	mu                      sync.RWMutex
	NotificationsDispatched int64
	DeliveryFailures        int64
	ProcessingErrors        int64
	CleanupRuns             int64
	RemindersDeactivated    int64
	AverageDispatchTime     time.Duration
	LastDispatchTime        time.Time
	LastCleanupTime         time.Time
	WorkerUtilization       map[int]float64
	totalDispatchTime       time.Duration
	dispatchCycles          int64
}

// HealthStatus represents the health status of the scheduler
type HealthStatus struct {
	IsHealthy           bool      `json:"is_healthy"`
	LastDispatchTime    time.Time `json:"last_dispatch_time"`
	ProcessingErrors    int64     `json:"processing_errors"`
	AverageDispatchTime string    `json:"average_dispatch_time"`
	ErrorRate           float64   `json:"error_rate"`
}

// MetricsSummary provides a summary of scheduler metrics
type MetricsSummary struct {
	NotificationsDispatched int64           `json:"notifications_dispatched"`
	DeliveryFailures        int64           `json:"delivery_failures"`
	ProcessingErrors        int64           `json:"processing_errors"`
	CleanupRuns             int64           `json:"cleanup_runs"`
	RemindersDeactivated    int64           `json:"reminders_deactivated"`
	AverageDispatchTime     string          `json:"average_dispatch_time"`
	LastDispatchTime        time.Time       `json:"last_dispatch_time"`
	LastCleanupTime         time.Time       `json:"last_cleanup_time"`
	WorkerUtilization       map[int]float64 `json:"worker_utilization"`
	ErrorRate               float64         `json:"error_rate_percentage"`
}

// NewSchedulerMetrics creates a new metrics instance
func NewSchedulerMetrics() *SchedulerMetrics {
	return &SchedulerMetrics{
		WorkerUtilization: make(map[int]float64),
	}
}

// RecordDispatchCycle records one cycle that handled at least one due notification
func (m *SchedulerMetrics) RecordDispatchCycle(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastDispatchTime = time.Now()
	m.totalDispatchTime += duration
	m.dispatchCycles++
	m.AverageDispatchTime = m.totalDispatchTime / time.Duration(m.dispatchCycles)

	metrics.DispatchDuration.Observe(duration.Seconds())
}

// RecordDelivery records the outcome of handing one notification to the sender
func (m *SchedulerMetrics) RecordDelivery(sender string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.NotificationsDispatched++
	if err != nil {
		m.DeliveryFailures++
	}

	metrics.NotificationsDispatched.WithLabelValues(sender, metrics.Status(err)).Inc()
}

// RecordProcessingError increments the error counter
func (m *SchedulerMetrics) RecordProcessingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ProcessingErrors++
}

// RecordCleanup records one expired-reminder sweep
func (m *SchedulerMetrics) RecordCleanup(deactivated int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CleanupRuns++
	m.LastCleanupTime = time.Now()
	if err != nil {
		m.ProcessingErrors++
	} else {
		m.RemindersDeactivated += int64(deactivated)
		metrics.RemindersDeactivated.Add(float64(deactivated))
	}

	metrics.CleanupRuns.WithLabelValues(metrics.Status(err)).Inc()
}

// RecordWorkerActivity updates worker utilization metrics
func (m *SchedulerMetrics) RecordWorkerActivity(workerID int, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if active {
		m.WorkerUtilization[workerID] = 1.0
	} else {
		m.WorkerUtilization[workerID] = 0.0
	}
}

// IsHealthy reports a low error rate; an idle dispatcher is healthy
func (m *SchedulerMetrics) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.isHealthy()
}

func (m *SchedulerMetrics) isHealthy() bool {
	return m.calculateErrorRate() < 0.5
}

// GetHealthStatus returns detailed health information
func (m *SchedulerMetrics) GetHealthStatus() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return HealthStatus{
		IsHealthy:           m.isHealthy(),
		LastDispatchTime:    m.LastDispatchTime,
		ProcessingErrors:    m.ProcessingErrors,
		AverageDispatchTime: m.AverageDispatchTime.String(),
		ErrorRate:           m.calculateErrorRate(),
	}
}

// GetMetricsSummary returns a comprehensive metrics summary
func (m *SchedulerMetrics) GetMetricsSummary() MetricsSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSummary{
		NotificationsDispatched: m.NotificationsDispatched,
		DeliveryFailures:        m.DeliveryFailures,
		ProcessingErrors:        m.ProcessingErrors,
		CleanupRuns:             m.CleanupRuns,
		RemindersDeactivated:    m.RemindersDeactivated,
		AverageDispatchTime:     m.AverageDispatchTime.String(),
		LastDispatchTime:        m.LastDispatchTime,
		LastCleanupTime:         m.LastCleanupTime,
		WorkerUtilization:       m.copyWorkerUtilization(),
		ErrorRate:               m.calculateErrorRate() * 100,
	}
}

// calculateErrorRate is the share of failed operations among dispatches and errors
func (m *SchedulerMetrics) calculateErrorRate() float64 {
	total := m.NotificationsDispatched + m.ProcessingErrors
	if total == 0 {
		return 0.0
	}
	return float64(m.ProcessingErrors) / float64(total)
}

func (m *SchedulerMetrics) copyWorkerUtilization() map[int]float64 {
	out := make(map[int]float64, len(m.WorkerUtilization))
	for k, v := range m.WorkerUtilization {
		out[k] = v
	}
	return out
}
