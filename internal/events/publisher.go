package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Publisher publishes events with bounded retries. Publishing is best effort:
// failures are logged and never propagated to the caller's operation.
type Publisher struct {
	bus        EventBus
	logger     *zap.Logger
	maxRetries int
}

// NewPublisher creates a new Publisher instance
func NewPublisher(bus EventBus, logger *zap.Logger, maxRetries int) *Publisher {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Publisher{
		bus:        bus,
		logger:     logger,
		maxRetries: maxRetries,
	}
}

// PublishWithRetry publishes an event, retrying with exponential backoff on transient failures
func (p *Publisher) PublishWithRetry(topic string, event interface{}) error {
	if p == nil || p.bus == nil {
		return nil
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := p.bus.Publish(topic, event)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrBusClosed) {
			return backoff.Permanent(err)
		}
		p.logger.Warn("Failed to publish event, retrying",
			zap.String("topic", topic),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return err
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 20 * time.Millisecond
	exp.MaxInterval = 200 * time.Millisecond

	if err := backoff.Retry(operation, backoff.WithMaxRetries(exp, uint64(p.maxRetries))); err != nil {
		return fmt.Errorf("failed to publish event after %d attempts: %w", attempt, err)
	}
	return nil
}

// Publish publishes an event and logs instead of returning on failure
func (p *Publisher) Publish(topic string, event interface{}) {
	if err := p.PublishWithRetry(topic, event); err != nil {
		p.logger.Error("Dropping event",
			zap.String("topic", topic),
			zap.Error(err))
	}
}
