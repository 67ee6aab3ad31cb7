package application

import (
	"context"
	"time"

	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/logging"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CreateOrderCommand represents the command to create an order
type CreateOrderCommand struct {
	Products []saga.OrderProduct `json:"products"`
}

// OrderResponse represents an order
type OrderResponse struct {
	ID            string              `json:"id"`
	TransactionID string              `json:"transactionId"`
	Products      []saga.OrderProduct `json:"products"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// CreateOrder stores a new order and starts its saga
type CreateOrder struct {
	orderRepository domain.OrderRepository
	eventPublisher  events.Publisher
	logger          *zap.Logger
	now             func() time.Time
}

// NewCreateOrder creates a new CreateOrder use case
func NewCreateOrder(orderRepository domain.OrderRepository, eventPublisher events.Publisher, logger *zap.Logger) *CreateOrder {
	return &CreateOrder{
		orderRepository: orderRepository,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             time.Now,
	}
}

// Execute executes the create order use case
func (uc *CreateOrder) Execute(ctx context.Context, cmd *CreateOrderCommand) (*OrderResponse, error) {
	order, err := domain.NewOrder(cmd.Products, uc.now())
	if err != nil {
		return nil, err
	}

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}

	env := saga.NewEnvelope(order.Payload())
	evt, err := env.ToEvent(events.TopicStartSaga)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build start saga event")
	}
	if err := uc.eventPublisher.Publish(ctx, evt); err != nil {
		return nil, errors.Wrap(err, "failed to publish events")
	}

	uc.logger.Info("order created, saga requested",
		logging.Saga(env.OrderID, env.TransactionID, "", env.Status.String())...,
	)

	return &OrderResponse{
		ID:            order.ID.String(),
		TransactionID: order.TransactionID.String(),
		Products:      order.Products,
		CreatedAt:     order.CreatedAt,
	}, nil
}
