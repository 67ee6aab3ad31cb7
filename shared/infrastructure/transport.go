package infrastructure

import (
	"context"

	"github.com/draftea/order-saga/shared/config"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Transport bundles the publisher and subscriber of the configured broker
type Transport struct {
	Publisher  events.Publisher
	Subscriber events.Subscriber
	closers    []func() error
}

// NewTransport builds the Kafka or SNS/SQS transport. The publisher is
// wrapped in a circuit breaker either way.
func NewTransport(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Transport, error) {
	t := &Transport{}

	var publisher events.Publisher
	switch cfg.Transport {
	case config.TransportKafka:
		kafkaPublisher := NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.ClientID)
		publisher = kafkaPublisher
		t.closers = append(t.closers, kafkaPublisher.Close)
		t.Subscriber = NewKafkaEventSubscriber(cfg.Kafka.Brokers, cfg.Kafka.GroupID, logger)

	case config.TransportSNS:
		snsPublisher, err := NewSNSPublisherAdapter(ctx, cfg.AWS)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create SNS publisher")
		}
		publisher = snsPublisher
		t.closers = append(t.closers, snsPublisher.Close)

		sqsSubscriber, err := NewSQSSubscriberAdapter(ctx, cfg.AWS, logger)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create SQS subscriber")
		}
		t.Subscriber = sqsSubscriber
		t.closers = append(t.closers, sqsSubscriber.Close)

	default:
		return nil, errors.Errorf("unknown transport %q", cfg.Transport)
	}

	t.Publisher = NewBreakerPublisher(publisher, DefaultBreakerSettings(cfg.ServiceName+"-publisher"), logger)
	return t, nil
}

// Close releases broker connections
func (t *Transport) Close() error {
	var errs []error
	for _, closeFn := range t.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("errors closing transport: %v", errs)
	}
	return nil
}
