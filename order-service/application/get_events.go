package application

import (
	"context"

	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/saga"
)

// EventFilters selects a stored saga by order or transaction
type EventFilters struct {
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId"`
}

// GetEvents answers operator queries over finished sagas
type GetEvents struct {
	sagaEventRepository domain.SagaEventRepository
}

// NewGetEvents creates a new GetEvents use case
func NewGetEvents(sagaEventRepository domain.SagaEventRepository) *GetEvents {
	return &GetEvents{sagaEventRepository: sagaEventRepository}
}

// FindAll returns every stored saga, newest first
func (uc *GetEvents) FindAll(ctx context.Context) ([]*saga.Envelope, error) {
	return uc.sagaEventRepository.FindAll(ctx)
}

// FindByFilters returns the most recent saga matching the filters. The order
// id wins when both are informed.
func (uc *GetEvents) FindByFilters(ctx context.Context, filters EventFilters) (*saga.Envelope, error) {
	switch {
	case filters.OrderID != "":
		return uc.sagaEventRepository.FindLatestByOrderID(ctx, filters.OrderID)
	case filters.TransactionID != "":
		return uc.sagaEventRepository.FindLatestByTransactionID(ctx, filters.TransactionID)
	default:
		return nil, saga.ErrInvalid("OrderID or TransactionID must be informed.")
	}
}
