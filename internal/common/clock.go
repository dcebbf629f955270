package common

import (
	"sync"
	"time"
)

// Clock provides an abstraction over time operations to enable deterministic testing
type Clock interface {
	// Now returns the current time
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
// When a location is set, Now is reported in that location.
type RealClock struct {
	location *time.Location
}

// NewRealClock creates a new RealClock instance reporting times in the given location.
// A nil location means time.Local.
func NewRealClock(location *time.Location) *RealClock {
	if location == nil {
		location = time.Local
	}
	return &RealClock{location: location}
}

func (c *RealClock) Now() time.Time {
	return time.Now().In(c.location)
}

// MockClock implements Clock for testing with controllable time
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockClock creates a new MockClock with the specified initial time
func NewMockClock(initialTime time.Time) *MockClock {
	return &MockClock{currentTime: initialTime}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// Advance moves the mock clock forward by the specified duration
func (c *MockClock) Advance(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(duration)
}

// SetTime sets the mock clock to a specific time
func (c *MockClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}
