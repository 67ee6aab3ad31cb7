package application

import (
	"context"
	"time"

	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NotifyEnding stores the final envelope of a finished saga
type NotifyEnding struct {
	sagaEventRepository domain.SagaEventRepository
	logger              *zap.Logger
	now                 func() time.Time
}

// NewNotifyEnding creates a new NotifyEnding use case
func NewNotifyEnding(sagaEventRepository domain.SagaEventRepository, logger *zap.Logger) *NotifyEnding {
	return &NotifyEnding{
		sagaEventRepository: sagaEventRepository,
		logger:              logger,
		now:                 time.Now,
	}
}

// Execute stamps env with the notification time and saves it. A saga that
// was already stored (redelivery or replay) is acknowledged without a second row.
func (uc *NotifyEnding) Execute(ctx context.Context, env *saga.Envelope) error {
	env.CreatedAt = uc.now()

	if err := uc.sagaEventRepository.Save(ctx, env); err != nil {
		if errors.Is(err, saga.ErrKindDuplicateTransaction) {
			uc.logger.Info("saga ending already notified",
				zap.String("order_id", env.OrderID),
				zap.String("transaction_id", env.TransactionID),
			)
			return nil
		}
		return errors.Wrap(err, "failed to save saga event")
	}

	uc.logger.Info("Order with saga notified",
		zap.String("order_id", env.OrderID),
		zap.String("transaction_id", env.TransactionID),
		zap.String("source", env.Source.String()),
		zap.String("status", env.Status.String()),
	)
	return nil
}
