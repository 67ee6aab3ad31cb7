package application

import (
	"context"

	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
)

// GetOrder use case
type GetOrder struct {
	orderRepository domain.OrderRepository
}

// NewGetOrder creates a new GetOrder use case
func NewGetOrder(orderRepository domain.OrderRepository) *GetOrder {
	return &GetOrder{orderRepository: orderRepository}
}

// Execute returns the order with the given id
func (uc *GetOrder) Execute(ctx context.Context, orderID string) (*OrderResponse, error) {
	id, err := models.NewID(orderID)
	if err != nil {
		return nil, saga.ErrInvalid("invalid order ID %q", orderID)
	}

	order, err := uc.orderRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &OrderResponse{
		ID:            order.ID.String(),
		TransactionID: order.TransactionID.String(),
		Products:      order.Products,
		CreatedAt:     order.CreatedAt,
	}, nil
}
