package infrastructure

import (
	"context"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/draftea/order-saga/shared/events"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var _ events.Subscriber = (*KafkaEventSubscriber)(nil)

const (
	KafkaPartitionKey = "kafka_partition"
	KafkaOffsetKey    = "kafka_offset"
)

// messageReader abstracts kafka.Reader in a consumer group
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventSubscriber consumes saga topics as one consumer group member.
// Offsets are committed only after the handler succeeded, so a crash
// mid-hop means redelivery rather than loss.
type KafkaEventSubscriber struct {
	brokers    []string
	groupID    string
	logger     *zap.Logger
	maxElapsed time.Duration
	newBackOff func() backoff.BackOff
	newReader  func(topics []string) messageReader
}

type KafkaSubscriberOption func(*KafkaEventSubscriber)

// WithHandlerRetry bounds how long a failing handler is retried before the
// subscriber gives up and returns. Zero retries forever.
func WithHandlerRetry(maxElapsed time.Duration) KafkaSubscriberOption {
	return func(s *KafkaEventSubscriber) {
		s.maxElapsed = maxElapsed
	}
}

// WithRetryBackOff replaces the exponential handler backoff
func WithRetryBackOff(newBackOff func() backoff.BackOff) KafkaSubscriberOption {
	return func(s *KafkaEventSubscriber) {
		s.newBackOff = newBackOff
	}
}

// NewKafkaEventSubscriber creates a subscriber in consumer group groupID
func NewKafkaEventSubscriber(brokers []string, groupID string, logger *zap.Logger, opts ...KafkaSubscriberOption) *KafkaEventSubscriber {
	s := &KafkaEventSubscriber{
		brokers:    brokers,
		groupID:    groupID,
		logger:     logger,
		maxElapsed: 5 * time.Minute,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 10 * time.Second
			return b
		},
	}
	s.newReader = func(topics []string) messageReader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers:     s.brokers,
			GroupID:     s.groupID,
			GroupTopics: topics,
			MinBytes:    1,
			MaxBytes:    10e6,
			MaxWait:     time.Second,
		})
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe blocks consuming topics until ctx is done. It returns an error
// only when the reader fails or a handler keeps failing past the retry budget;
// the uncommitted message is then redelivered to the next group member.
func (s *KafkaEventSubscriber) Subscribe(ctx context.Context, handler events.EventHandler, topics ...events.Topic) error {
	if len(topics) == 0 {
		return events.ErrInvalidTopic
	}

	names := make([]string, len(topics))
	for i, topic := range topics {
		names[i] = topic.String()
	}

	reader := s.newReader(names)
	defer reader.Close()

	s.logger.Info("kafka subscriber started",
		zap.Strings("topics", names),
		zap.String("group_id", s.groupID),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "failed to fetch kafka message")
		}

		event, err := decodeKafkaMessage(msg)
		if err != nil {
			s.logger.Error("skipping malformed kafka message",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		} else if err := s.handle(ctx, handler, event); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrapf(err, "handler failed for event %s", event.ID)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "failed to commit kafka message")
		}
	}
}

func (s *KafkaEventSubscriber) handle(ctx context.Context, handler events.EventHandler, event *events.Event) error {
	_, err := backoff.Retry(ctx,
		func() (struct{}, error) {
			return struct{}{}, handler.Handle(ctx, event)
		},
		backoff.WithBackOff(s.newBackOff()),
		backoff.WithMaxElapsedTime(s.maxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn("retrying event handler",
				zap.String("event_id", event.ID.String()),
				zap.String("topic", event.Topic.String()),
				zap.Duration("next_attempt", next),
				zap.Error(err),
			)
		}),
	)
	return err
}

func decodeKafkaMessage(msg kafka.Message) (*events.Event, error) {
	event, err := events.FromJSON(msg.Value)
	if err != nil {
		return nil, err
	}
	if event.Topic == "" {
		event.Topic = events.Topic(msg.Topic)
	}
	event.Metadata.Set(KafkaPartitionKey, strconv.Itoa(msg.Partition))
	event.Metadata.Set(KafkaOffsetKey, strconv.FormatInt(msg.Offset, 10))
	return event, nil
}
