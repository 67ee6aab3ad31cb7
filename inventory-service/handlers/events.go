package handlers

import (
	"context"

	"github.com/draftea/order-saga/inventory-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"go.uber.org/zap"
)

// InventoryEventHandlers runs the inventory stage for every hop routed to it
type InventoryEventHandlers struct {
	executor *saga.Executor
	logger   *zap.Logger
}

// NewInventoryEventHandlers creates new inventory event handlers
func NewInventoryEventHandlers(participant *application.InventoryParticipant, publisher events.Publisher, logger *zap.Logger, opts ...saga.ExecutorOption) *InventoryEventHandlers {
	return &InventoryEventHandlers{
		executor: saga.NewExecutor(participant, publisher, logger, opts...),
		logger:   logger,
	}
}

// Topics the inventory service consumes
func (h *InventoryEventHandlers) Topics() []events.Topic {
	return []events.Topic{events.TopicInventory}
}

// Handle implements the events.EventHandler interface
func (h *InventoryEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	if event.Topic != events.TopicInventory {
		h.logger.Debug("ignoring event", zap.String("topic", event.Topic.String()))
		return nil
	}
	return h.executor.Handle(ctx, event)
}

// HandlerID returns the unique identifier for this event handler
func (h *InventoryEventHandlers) HandlerID() string {
	return "inventory-service-event-handler"
}
