package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"dua-reminders/internal/scheduler"
)

// MockScheduler implements the Scheduler interface for testing
type MockScheduler struct {
	started    atomic.Bool
	startError error
	stopError  error
	callCounts map[string]int
	metrics    *scheduler.SchedulerMetrics
	mu         sync.RWMutex
}

// NewMockScheduler creates a new mock scheduler
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{
		callCounts: make(map[string]int),
		metrics:    scheduler.NewSchedulerMetrics(),
	}
}

// Start implements the Scheduler interface
func (m *MockScheduler) Start(ctx context.Context) error {
	m.incrementCallCount("Start")
	if err := m.getStartError(); err != nil {
		return err
	}
	m.started.Store(true)
	return nil
}

// Stop implements the Scheduler interface
func (m *MockScheduler) Stop() error {
	m.incrementCallCount("Stop")
	m.mu.RLock()
	err := m.stopError
	m.mu.RUnlock()
	if err != nil {
		return err
	}
	m.started.Store(false)
	return nil
}

// IsRunning implements the Scheduler interface
func (m *MockScheduler) IsRunning() bool {
	m.incrementCallCount("IsRunning")
	return m.started.Load()
}

// GetMetrics implements the Scheduler interface
func (m *MockScheduler) GetMetrics() *scheduler.SchedulerMetrics {
	m.incrementCallCount("GetMetrics")
	return m.metrics
}

// Test configuration methods
func (m *MockScheduler) SetStartError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startError = err
}

func (m *MockScheduler) SetStopError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopError = err
}

func (m *MockScheduler) GetCallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.callCounts[method]
}

func (m *MockScheduler) getStartError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.startError
}

func (m *MockScheduler) incrementCallCount(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCounts[method]++
}

// CreateFailingScheduler creates a scheduler that fails on start
func CreateFailingScheduler() *MockScheduler {
	mock := NewMockScheduler()
	mock.SetStartError(scheduler.NewSchedulerError("start_failed", "mock start failure"))
	return mock
}

// AssertStarted verifies the scheduler is started
func (m *MockScheduler) AssertStarted(t TestingT) {
	if !m.IsRunning() {
		t.Errorf("Expected scheduler to be started, but it was not")
	}
}

// AssertStopped verifies the scheduler is stopped
func (m *MockScheduler) AssertStopped(t TestingT) {
	if m.IsRunning() {
		t.Errorf("Expected scheduler to be stopped, but it was running")
	}
}

// TestingT is a minimal interface for testing frameworks
type TestingT interface {
	Errorf(format string, args ...interface{})
}
