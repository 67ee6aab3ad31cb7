package domain

import (
	"context"
	"time"

	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
)

// Order is a customer order. Every saga attempt over it gets its own
// transaction id.
type Order struct {
	ID            models.ID
	TransactionID models.ID
	Products      []saga.OrderProduct
	CreatedAt     time.Time
}

// NewOrder validates the order lines and assigns fresh identifiers
func NewOrder(products []saga.OrderProduct, now time.Time) (*Order, error) {
	if len(products) == 0 {
		return nil, saga.ErrInvalid("order must have at least one product")
	}
	for i, line := range products {
		if line.Product.Code == "" {
			return nil, saga.ErrInvalid("product code must be informed (line %d)", i+1)
		}
		if line.Quantity <= 0 {
			return nil, saga.ErrInvalid("quantity of %s must be positive", line.Product.Code)
		}
		if line.Product.UnitValue < 0 {
			return nil, saga.ErrInvalid("unit value of %s cannot be negative", line.Product.Code)
		}
	}

	return &Order{
		ID:            models.GenerateUUID(),
		TransactionID: models.NewTransactionID(now),
		Products:      append([]saga.OrderProduct(nil), products...),
		CreatedAt:     now,
	}, nil
}

// Payload is the order as carried by the saga envelope
func (o *Order) Payload() saga.Order {
	return saga.Order{
		ID:            o.ID.String(),
		TransactionID: o.TransactionID.String(),
		Products:      append([]saga.OrderProduct(nil), o.Products...),
		CreatedAt:     o.CreatedAt,
	}
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	// FindByID returns a saga.ErrNotFound kind error for an unknown order
	FindByID(ctx context.Context, id models.ID) (*Order, error)
}
