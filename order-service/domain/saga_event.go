package domain

import (
	"context"

	"github.com/draftea/order-saga/shared/saga"
)

// SagaEventRepository keeps the final envelope of every finished saga.
// Save reports a saga.ErrDuplicateTransaction kind error when the saga was
// already stored. Finders return a saga.ErrNotFound kind error on no match.
type SagaEventRepository interface {
	Save(ctx context.Context, env *saga.Envelope) error
	FindAll(ctx context.Context) ([]*saga.Envelope, error)
	FindLatestByOrderID(ctx context.Context, orderID string) (*saga.Envelope, error)
	FindLatestByTransactionID(ctx context.Context, transactionID string) (*saga.Envelope, error)
}
