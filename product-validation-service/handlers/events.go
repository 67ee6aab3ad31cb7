package handlers

import (
	"context"

	"github.com/draftea/order-saga/product-validation-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"go.uber.org/zap"
)

// ProductValidationEventHandlers runs the product validation stage for every hop routed to it
type ProductValidationEventHandlers struct {
	executor *saga.Executor
	logger   *zap.Logger
}

// NewProductValidationEventHandlers creates new product validation event handlers
func NewProductValidationEventHandlers(participant *application.ProductValidationParticipant, publisher events.Publisher, logger *zap.Logger, opts ...saga.ExecutorOption) *ProductValidationEventHandlers {
	return &ProductValidationEventHandlers{
		executor: saga.NewExecutor(participant, publisher, logger, opts...),
		logger:   logger,
	}
}

// Topics the product validation service consumes
func (h *ProductValidationEventHandlers) Topics() []events.Topic {
	return []events.Topic{events.TopicProductValidation}
}

// Handle implements the events.EventHandler interface
func (h *ProductValidationEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	if event.Topic != events.TopicProductValidation {
		h.logger.Debug("ignoring event", zap.String("topic", event.Topic.String()))
		return nil
	}
	return h.executor.Handle(ctx, event)
}

// HandlerID returns the unique identifier for this event handler
func (h *ProductValidationEventHandlers) HandlerID() string {
	return "product-validation-service-event-handler"
}
