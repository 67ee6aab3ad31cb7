package infrastructure

import (
	"context"
	"time"

	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var _ events.Publisher = (*BreakerPublisher)(nil)

// BreakerPublisher fails fast while the transport is down. The caller's
// message is then left uncommitted and redelivered once the breaker closes.
type BreakerPublisher struct {
	next    events.Publisher
	breaker *gobreaker.CircuitBreaker
}

type BreakerSettings struct {
	Name             string
	FailureThreshold uint32
	OpenTimeout      time.Duration
	HalfOpenRequests uint32
}

// DefaultBreakerSettings opens after 5 consecutive failures for 10s
func DefaultBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:             name,
		FailureThreshold: 5,
		OpenTimeout:      10 * time.Second,
		HalfOpenRequests: 1,
	}
}

// NewBreakerPublisher wraps next with a circuit breaker
func NewBreakerPublisher(next events.Publisher, settings BreakerSettings, logger *zap.Logger) *BreakerPublisher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.HalfOpenRequests,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			// a cancelled caller says nothing about the broker
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("publisher circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakerPublisher{next: next, breaker: cb}
}

// Publish forwards to the wrapped publisher unless the breaker is open
func (p *BreakerPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.next.Publish(ctx, evts...)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Wrap(err, "publisher unavailable")
	}
	return err
}

// State reports the breaker state, e.g. for health checks
func (p *BreakerPublisher) State() gobreaker.State {
	return p.breaker.State()
}
