package infrastructure

import (
	"context"

	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

var _ events.Publisher = (*KafkaEventPublisher)(nil)

const (
	headerEventID       = "event_id"
	headerCorrelationID = "correlation_id"
)

// messageWriter abstracts kafka.Writer so tests can capture messages
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventPublisher writes saga events to the topic named by each event.
// The order id is the message key and the Hash balancer maps it to a fixed
// partition, which keeps every hop of one saga in publish order.
type KafkaEventPublisher struct {
	writer messageWriter
}

// NewKafkaEventPublisher creates a publisher over brokers
func NewKafkaEventPublisher(brokers []string, clientID string) *KafkaEventPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		Transport: &kafka.Transport{
			ClientID: clientID,
		},
	}
	return &KafkaEventPublisher{writer: w}
}

// Publish writes events synchronously; it returns once every message is acknowledged
func (p *KafkaEventPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(evts))
	for _, event := range evts {
		value, err := event.ToJSON()
		if err != nil {
			return errors.Wrap(err, "failed to marshal event")
		}

		msgs = append(msgs, kafka.Message{
			Topic: event.Topic.String(),
			Key:   []byte(event.AggregateID.String()),
			Value: value,
			Time:  event.Timestamp,
			Headers: []kafka.Header{
				{Key: headerEventID, Value: []byte(event.ID.String())},
				{Key: headerCorrelationID, Value: []byte(event.CorrelationID.String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return errors.Wrap(err, "failed to write messages to kafka")
	}
	return nil
}

// Close flushes and closes the writer
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
