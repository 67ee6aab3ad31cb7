package handlers

import (
	"context"

	"github.com/draftea/order-saga/order-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"go.uber.org/zap"
)

// OrderEventHandlers consumes the end of every saga
type OrderEventHandlers struct {
	notifyEnding *application.NotifyEnding
	logger       *zap.Logger
}

// NewOrderEventHandlers creates new order event handlers
func NewOrderEventHandlers(notifyEnding *application.NotifyEnding, logger *zap.Logger) *OrderEventHandlers {
	return &OrderEventHandlers{
		notifyEnding: notifyEnding,
		logger:       logger,
	}
}

// Topics the order service consumes
func (h *OrderEventHandlers) Topics() []events.Topic {
	return []events.Topic{events.TopicNotifyEnding}
}

// Handle implements the events.EventHandler interface
func (h *OrderEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	if event.Topic != events.TopicNotifyEnding {
		return nil
	}

	env, err := saga.EnvelopeFromEvent(event)
	if err != nil {
		h.logger.Error("dropping malformed envelope",
			zap.String("event_id", event.ID.String()),
			zap.Error(err),
		)
		return nil
	}

	return h.notifyEnding.Execute(ctx, env)
}

// HandlerID returns the unique identifier for this event handler
func (h *OrderEventHandlers) HandlerID() string {
	return "order-service-event-handler"
}
