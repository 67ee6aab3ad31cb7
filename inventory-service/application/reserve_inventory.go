package application

import (
	"context"

	"github.com/draftea/order-saga/inventory-service/domain"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ saga.Participant = (*InventoryParticipant)(nil)

// InventoryParticipant reserves stock for the order and puts it back on
// compensation
type InventoryParticipant struct {
	inventoryRepository domain.InventoryRepository
	logger              *zap.Logger
}

// NewInventoryParticipant creates the inventory stage
func NewInventoryParticipant(inventoryRepository domain.InventoryRepository, logger *zap.Logger) *InventoryParticipant {
	return &InventoryParticipant{
		inventoryRepository: inventoryRepository,
		logger:              logger,
	}
}

func (p *InventoryParticipant) Source() saga.Source {
	return saga.SourceInventory
}

func (p *InventoryParticipant) Action() string {
	return "inventory"
}

func (p *InventoryParticipant) ProcessForward(ctx context.Context, env *saga.Envelope) error {
	exists, err := p.inventoryRepository.ExistsByOrderIDAndTransactionID(ctx, env.OrderID, env.TransactionID)
	if err != nil {
		return errors.Wrap(err, "failed to check existing reservation")
	}
	if exists {
		return saga.ErrDuplicateTransaction("There's another transactionId for this validation")
	}

	rows, err := p.inventoryRepository.Reserve(ctx, env.OrderID, env.TransactionID, env.Payload.Products)
	if err != nil {
		if saga.IsBusiness(err) {
			return err
		}
		return errors.Wrap(err, "failed to reserve inventory")
	}

	p.logger.Debug("inventory reserved",
		zap.String("order_id", env.OrderID),
		zap.String("transaction_id", env.TransactionID),
		zap.Int("rows", len(rows)),
	)
	return nil
}

// ProcessCompensation releases every reservation the attempt still holds
func (p *InventoryParticipant) ProcessCompensation(ctx context.Context, env *saga.Envelope) (saga.CompensationOutcome, error) {
	released, err := p.inventoryRepository.Release(ctx, env.OrderID, env.TransactionID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to release inventory")
	}
	if released == 0 {
		return saga.CompensationSkipped, nil
	}
	return saga.CompensationApplied, nil
}
