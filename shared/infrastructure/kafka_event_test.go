package infrastructure

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func newTestEvent(t *testing.T, orderID string, topic events.Topic) *events.Event {
	t.Helper()
	evt, err := events.NewEvent(models.ID(orderID), topic, map[string]string{"orderId": orderID})
	require.NoError(t, err)
	return evt
}

func TestKafkaEventPublisher_Publish(t *testing.T) {
	writer := &mockWriter{}
	publisher := &KafkaEventPublisher{writer: writer}

	evt := newTestEvent(t, "O1", events.TopicPayment)
	evt.WithCorrelationID("T1")

	require.NoError(t, publisher.Publish(context.Background(), evt))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "payment", msg.Topic)
	assert.Equal(t, []byte("O1"), msg.Key, "order id is the partition key")

	decoded, err := events.FromJSON(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, evt.ID, decoded.ID)
	assert.Equal(t, "T1", decoded.CorrelationID.String())
}

func TestKafkaEventPublisher_SameOrderSameKey(t *testing.T) {
	writer := &mockWriter{}
	publisher := &KafkaEventPublisher{writer: writer}

	require.NoError(t, publisher.Publish(context.Background(),
		newTestEvent(t, "O1", events.TopicOrchestrator),
		newTestEvent(t, "O2", events.TopicOrchestrator),
		newTestEvent(t, "O1", events.TopicOrchestrator),
	))

	require.Len(t, writer.messages, 3)
	assert.Equal(t, writer.messages[0].Key, writer.messages[2].Key)
	assert.NotEqual(t, writer.messages[0].Key, writer.messages[1].Key)
}

func TestKafkaEventPublisher_WriteError(t *testing.T) {
	publisher := &KafkaEventPublisher{writer: &mockWriter{err: errors.New("leader not available")}}

	err := publisher.Publish(context.Background(), newTestEvent(t, "O1", events.TopicPayment))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestKafkaEventPublisher_Close(t *testing.T) {
	writer := &mockWriter{}
	publisher := &KafkaEventPublisher{writer: writer}

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

// mockReader replays queued messages, then blocks until the context ends
type mockReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	onDrained func()
	closed    bool
}

func (m *mockReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	m.mu.Lock()
	if len(m.queue) > 0 {
		msg := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()
		return msg, nil
	}
	onDrained := m.onDrained
	m.mu.Unlock()

	if onDrained != nil {
		onDrained()
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (m *mockReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = append(m.committed, msgs...)
	return nil
}

func (m *mockReader) Close() error {
	m.closed = true
	return nil
}

func kafkaMessage(t *testing.T, evt *events.Event, offset int64) kafka.Message {
	t.Helper()
	value, err := evt.ToJSON()
	require.NoError(t, err)
	return kafka.Message{Topic: evt.Topic.String(), Key: []byte(evt.AggregateID), Value: value, Offset: offset}
}

func newTestSubscriber(reader *mockReader, opts ...KafkaSubscriberOption) *KafkaEventSubscriber {
	opts = append([]KafkaSubscriberOption{
		WithRetryBackOff(func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) }),
	}, opts...)
	s := NewKafkaEventSubscriber([]string{"localhost:9092"}, "test-group", zap.NewNop(), opts...)
	s.newReader = func(topics []string) messageReader { return reader }
	return s
}

func TestKafkaEventSubscriber_HandlesAndCommits(t *testing.T) {
	first := newTestEvent(t, "O1", events.TopicPayment)
	second := newTestEvent(t, "O1", events.TopicPayment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &mockReader{
		queue:     []kafka.Message{kafkaMessage(t, first, 1), kafkaMessage(t, second, 2)},
		onDrained: cancel,
	}

	var handled []models.ID
	handler := events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		handled = append(handled, event.ID)
		offset, _ := event.Metadata.Get(KafkaOffsetKey)
		assert.NotEmpty(t, offset)
		return nil
	})

	err := newTestSubscriber(reader).Subscribe(ctx, handler, events.TopicPayment)
	require.NoError(t, err)

	assert.Equal(t, []models.ID{first.ID, second.ID}, handled, "delivered in partition order")
	assert.Len(t, reader.committed, 2)
	assert.True(t, reader.closed)
}

func TestKafkaEventSubscriber_RetriesBeforeCommit(t *testing.T) {
	evt := newTestEvent(t, "O1", events.TopicOrchestrator)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &mockReader{queue: []kafka.Message{kafkaMessage(t, evt, 7)}, onDrained: cancel}

	attempts := 0
	handler := events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		attempts++
		if attempts < 3 {
			return errors.New("database unavailable")
		}
		return nil
	})

	require.NoError(t, newTestSubscriber(reader).Subscribe(ctx, handler, events.TopicOrchestrator))
	assert.Equal(t, 3, attempts)
	require.Len(t, reader.committed, 1)
	assert.Equal(t, int64(7), reader.committed[0].Offset)
}

func TestKafkaEventSubscriber_GivesUpWithoutCommit(t *testing.T) {
	evt := newTestEvent(t, "O1", events.TopicOrchestrator)
	reader := &mockReader{queue: []kafka.Message{kafkaMessage(t, evt, 1)}}

	handler := events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		return errors.New("database unavailable")
	})

	subscriber := newTestSubscriber(reader, WithHandlerRetry(20*time.Millisecond))
	err := subscriber.Subscribe(context.Background(), handler, events.TopicOrchestrator)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
	assert.Empty(t, reader.committed)
}

func TestKafkaEventSubscriber_SkipsMalformed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &mockReader{
		queue:     []kafka.Message{{Topic: "payment", Value: []byte("not json"), Offset: 3}},
		onDrained: cancel,
	}

	called := false
	handler := events.EventHandlerFunc(func(ctx context.Context, event *events.Event) error {
		called = true
		return nil
	})

	require.NoError(t, newTestSubscriber(reader).Subscribe(ctx, handler, events.TopicPayment))
	assert.False(t, called)
	assert.Len(t, reader.committed, 1)
}

func TestKafkaEventSubscriber_RequiresTopics(t *testing.T) {
	err := newTestSubscriber(&mockReader{}).Subscribe(context.Background(), events.EventHandlerFunc(nil))
	assert.ErrorIs(t, err, events.ErrInvalidTopic)
}
