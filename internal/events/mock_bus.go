package events

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"
)

// MockEventBus provides an in-memory implementation of EventBus for testing.
// Handlers are always invoked synchronously, async subscriptions included.
type MockEventBus struct {
	subscriptions   map[string][]interface{}
	publishedEvents map[string][]interface{}
	mutex           sync.RWMutex
	closed          bool
	publishErr      error
}

// NewMockEventBus creates a new MockEventBus instance
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subscriptions:   make(map[string][]interface{}),
		publishedEvents: make(map[string][]interface{}),
	}
}

// Subscribe implements the EventBus interface
func (m *MockEventBus) Subscribe(topic string, handler interface{}) error {
	if reflect.TypeOf(handler) == nil || reflect.TypeOf(handler).Kind() != reflect.Func {
		return fmt.Errorf("%s is not of type reflect.Func", reflect.TypeOf(handler))
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions[topic] = append(m.subscriptions[topic], handler)
	return nil
}

// SubscribeAsync implements the EventBus interface
func (m *MockEventBus) SubscribeAsync(topic string, handler interface{}) error {
	return m.Subscribe(topic, handler)
}

// Unsubscribe implements the EventBus interface
func (m *MockEventBus) Unsubscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	handlers := m.subscriptions[topic]
	target := reflect.ValueOf(handler).Pointer()
	for i := len(handlers) - 1; i >= 0; i-- {
		if reflect.ValueOf(handlers[i]).Pointer() == target {
			handlers = append(handlers[:i], handlers[i+1:]...)
		}
	}
	m.subscriptions[topic] = handlers

	return nil
}

// Publish implements the EventBus interface
func (m *MockEventBus) Publish(topic string, event interface{}) error {
	m.mutex.Lock()
	if m.closed {
		m.mutex.Unlock()
		return ErrBusClosed
	}
	if m.publishErr != nil {
		err := m.publishErr
		m.mutex.Unlock()
		return err
	}
	m.publishedEvents[topic] = append(m.publishedEvents[topic], event)
	handlers := append([]interface{}(nil), m.subscriptions[topic]...)
	m.mutex.Unlock()

	for _, handler := range handlers {
		reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
	}

	return nil
}

// Close implements the EventBus interface
func (m *MockEventBus) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.closed = true
	return nil
}

// SetPublishError makes every following Publish fail with err until reset with nil
func (m *MockEventBus) SetPublishError(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.publishErr = err
}

// GetPublishedEvents returns all events published to a specific topic
func (m *MockEventBus) GetPublishedEvents(topic string) []interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return append([]interface{}(nil), m.publishedEvents[topic]...)
}

// GetSubscriberCount returns the number of subscribers for a topic
func (m *MockEventBus) GetSubscriberCount(topic string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.subscriptions[topic])
}

// ClearEvents clears all published events
func (m *MockEventBus) ClearEvents() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.publishedEvents = make(map[string][]interface{})
}

// WaitForEvent polls until an event was published on topic or the timeout expires
func (m *MockEventBus) WaitForEvent(topic string, timeout time.Duration) (interface{}, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if published := m.GetPublishedEvents(topic); len(published) > 0 {
			return published[len(published)-1], nil
		}
		time.Sleep(5 * time.Millisecond)
	}
	return nil, fmt.Errorf("timeout waiting for event on topic %s", topic)
}

// AssertEventCount verifies the number of events published to a topic
func AssertEventCount(t *testing.T, mockBus *MockEventBus, topic string, expectedCount int) {
	t.Helper()
	if got := len(mockBus.GetPublishedEvents(topic)); got != expectedCount {
		t.Errorf("Expected %d events for topic %s, got %d", expectedCount, topic, got)
	}
}
