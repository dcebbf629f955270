package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// flakyBus fails the first n publishes
type flakyBus struct {
	*MockEventBus
	failures int
	calls    int
}

func (f *flakyBus) Publish(topic string, event interface{}) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("transient failure")
	}
	return f.MockEventBus.Publish(topic, event)
}

func TestPublisher_PublishWithRetry(t *testing.T) {
	tests := []struct {
		name       string
		failures   int
		maxRetries int
		wantErr    bool
		wantCalls  int
	}{
		{name: "succeeds first time", failures: 0, maxRetries: 3, wantCalls: 1},
		{name: "succeeds after retries", failures: 2, maxRetries: 3, wantCalls: 3},
		{name: "gives up", failures: 10, maxRetries: 2, wantErr: true, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &flakyBus{MockEventBus: NewMockEventBus(), failures: tt.failures}
			publisher := NewPublisher(bus, zaptest.NewLogger(t), tt.maxRetries)

			err := publisher.PublishWithRetry(TopicReminderDeleted, ReminderDeleted{Event: NewEvent(), ReminderID: "r-1"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				AssertEventCount(t, bus.MockEventBus, TopicReminderDeleted, 1)
			}
			assert.Equal(t, tt.wantCalls, bus.calls)
		})
	}
}

func TestPublisher_ClosedBusIsPermanent(t *testing.T) {
	bus := NewMockEventBus()
	require.NoError(t, bus.Close())

	publisher := NewPublisher(bus, zaptest.NewLogger(t), 5)
	err := publisher.PublishWithRetry(TopicReminderDeleted, ReminderDeleted{})
	assert.ErrorIs(t, err, ErrBusClosed)

	// Publish swallows the error
	publisher.Publish(TopicReminderDeleted, ReminderDeleted{})
}

func TestPublisher_NilIsNoop(t *testing.T) {
	var publisher *Publisher
	assert.NoError(t, publisher.PublishWithRetry(TopicReminderDeleted, ReminderDeleted{}))
}
