package handlers

import (
	"context"

	"github.com/draftea/order-saga/payment-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"go.uber.org/zap"
)

// PaymentEventHandlers runs the payment stage for every hop routed to it
type PaymentEventHandlers struct {
	executor *saga.Executor
	logger   *zap.Logger
}

// NewPaymentEventHandlers creates new payment event handlers
func NewPaymentEventHandlers(participant *application.PaymentParticipant, publisher events.Publisher, logger *zap.Logger, opts ...saga.ExecutorOption) *PaymentEventHandlers {
	return &PaymentEventHandlers{
		executor: saga.NewExecutor(participant, publisher, logger, opts...),
		logger:   logger,
	}
}

// Topics the payment service consumes
func (h *PaymentEventHandlers) Topics() []events.Topic {
	return []events.Topic{events.TopicPayment}
}

// Handle implements the events.EventHandler interface
func (h *PaymentEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	if event.Topic != events.TopicPayment {
		h.logger.Debug("ignoring event", zap.String("topic", event.Topic.String()))
		return nil
	}
	return h.executor.Handle(ctx, event)
}

// HandlerID returns the unique identifier for this event handler
func (h *PaymentEventHandlers) HandlerID() string {
	return "payment-service-event-handler"
}
