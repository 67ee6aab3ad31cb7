package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/draftea/order-saga/shared/models"
)

var (
	ErrInvalidTopic    = errors.New("invalid topic")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrInvalidReceiver = errors.New("receiver should be a pointer")
)

// Topic names one saga channel
type Topic string

func NewTopic(topic string) (Topic, error) {
	if topic == "" {
		return "", ErrInvalidTopic
	}
	return Topic(topic), nil
}

func (t Topic) String() string {
	return string(t)
}

// Saga channels. Every participant owns exactly one inbound topic; results
// flow back to the orchestrator topic.
const (
	TopicStartSaga         Topic = "start-saga"
	TopicOrchestrator      Topic = "orchestrator"
	TopicProductValidation Topic = "product-validation"
	TopicPayment           Topic = "payment"
	TopicInventory         Topic = "inventory"
	TopicNotifyEnding      Topic = "notify-ending"
)

// AllTopics lists every saga channel, in pipeline order where it applies
func AllTopics() []Topic {
	return []Topic{
		TopicStartSaga,
		TopicOrchestrator,
		TopicProductValidation,
		TopicPayment,
		TopicInventory,
		TopicNotifyEnding,
	}
}

// Metadata represents event metadata
type Metadata map[string]string

func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Metadata) Set(key string, value string) {
	m[key] = value
}

func (m Metadata) Clone() Metadata {
	clone := Metadata{}
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// Event is the transport message. AggregateID is the partition key: every
// hop of one saga shares it, which keeps them ordered on the wire.
type Event struct {
	ID            models.ID       `json:"id"`
	AggregateID   models.ID       `json:"aggregate_id"`
	Topic         Topic           `json:"topic"`
	Payload       json.RawMessage `json:"payload"`
	Metadata      Metadata        `json:"metadata"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID models.ID       `json:"correlation_id"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
}

// Subscriber delivers events of the given topics to handler until ctx is done
type Subscriber interface {
	Subscribe(ctx context.Context, handler EventHandler, topics ...Topic) error
}

// EventHandler handles transport events
type EventHandler interface {
	Handle(ctx context.Context, event *Event) error
}

// EventHandlerFunc adapts a function to EventHandler
type EventHandlerFunc func(ctx context.Context, event *Event) error

func (f EventHandlerFunc) Handle(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// NewEvent creates an event for topic, marshalling data as its payload
func NewEvent(aggregateID models.ID, topic Topic, data interface{}) (*Event, error) {
	if topic == "" {
		return nil, ErrInvalidTopic
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	return &Event{
		ID:          models.GenerateUUID(),
		AggregateID: aggregateID,
		Topic:       topic,
		Payload:     payload,
		Metadata:    make(Metadata),
		Timestamp:   time.Now(),
	}, nil
}

// WithCorrelationID sets correlation ID
func (e *Event) WithCorrelationID(correlationID models.ID) *Event {
	e.CorrelationID = correlationID
	return e
}

// WithMetadata adds metadata
func (e *Event) WithMetadata(key string, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(Metadata)
	}
	e.Metadata.Set(key, value)
	return e
}

// ToJSON converts event to JSON
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON creates event from JSON
func FromJSON(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	if event.Metadata == nil {
		event.Metadata = make(Metadata)
	}
	return &event, nil
}

// UnmarshalPayload unmarshals the event payload into v
func (e *Event) UnmarshalPayload(v interface{}) error {
	if v == nil {
		return ErrInvalidReceiver
	}
	if len(e.Payload) == 0 {
		return ErrInvalidPayload
	}
	return json.Unmarshal(e.Payload, v)
}

// Clone creates a copy of the event
func (e *Event) Clone() *Event {
	payload := make(json.RawMessage, len(e.Payload))
	copy(payload, e.Payload)

	return &Event{
		ID:            e.ID,
		AggregateID:   e.AggregateID,
		Topic:         e.Topic,
		Payload:       payload,
		Metadata:      e.Metadata.Clone(),
		Timestamp:     e.Timestamp,
		CorrelationID: e.CorrelationID,
	}
}
