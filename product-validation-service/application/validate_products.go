package application

import (
	"context"

	"github.com/draftea/order-saga/product-validation-service/domain"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ saga.Participant = (*ProductValidationParticipant)(nil)

// ProductValidationParticipant checks the order lines against the product
// catalog
type ProductValidationParticipant struct {
	validationRepository domain.ValidationRepository
	productRepository    domain.ProductRepository
	logger               *zap.Logger
}

// NewProductValidationParticipant creates the product validation stage
func NewProductValidationParticipant(validationRepository domain.ValidationRepository, productRepository domain.ProductRepository, logger *zap.Logger) *ProductValidationParticipant {
	return &ProductValidationParticipant{
		validationRepository: validationRepository,
		productRepository:    productRepository,
		logger:               logger,
	}
}

func (p *ProductValidationParticipant) Source() saga.Source {
	return saga.SourceProductValidation
}

func (p *ProductValidationParticipant) Action() string {
	return "product validation"
}

// ProcessForward records a validation and accepts it when every product is
// informed and known to the catalog
func (p *ProductValidationParticipant) ProcessForward(ctx context.Context, env *saga.Envelope) error {
	exists, err := p.validationRepository.ExistsByOrderIDAndTransactionID(ctx, env.OrderID, env.TransactionID)
	if err != nil {
		return errors.Wrap(err, "failed to check existing validation")
	}
	if exists {
		return saga.ErrDuplicateTransaction("There's another transactionId for this validation")
	}

	validation := domain.NewPendingValidation(env.OrderID, env.TransactionID)
	if err := p.validationRepository.Create(ctx, validation); err != nil {
		return errors.Wrap(err, "failed to create validation")
	}

	if err := p.checkProducts(ctx, env.Payload); err != nil {
		if rejectErr := validation.Reject(); rejectErr == nil {
			if updateErr := p.validationRepository.Update(ctx, validation); updateErr != nil {
				// left PENDING for the reaper
				p.logger.Error("failed to mark validation as failed",
					zap.String("order_id", env.OrderID),
					zap.String("transaction_id", env.TransactionID),
					zap.Error(updateErr),
				)
			}
		}
		return err
	}

	if err := validation.Approve(); err != nil {
		return err
	}
	if err := p.validationRepository.Update(ctx, validation); err != nil {
		return errors.Wrap(err, "failed to update validation")
	}
	return nil
}

func (p *ProductValidationParticipant) checkProducts(ctx context.Context, order saga.Order) error {
	if err := domain.CheckProductsInformed(order); err != nil {
		return err
	}

	for _, line := range order.Products {
		exists, err := p.productRepository.ExistsByCode(ctx, line.Product.Code)
		if err != nil {
			return errors.Wrapf(err, "failed to look up product %s", line.Product.Code)
		}
		if !exists {
			return saga.ErrNotFound("Product %s does not exist in database!", line.Product.Code)
		}
	}
	return nil
}

// ProcessCompensation withdraws an accepted validation
func (p *ProductValidationParticipant) ProcessCompensation(ctx context.Context, env *saga.Envelope) (saga.CompensationOutcome, error) {
	validation, err := p.validationRepository.FindByOrderIDAndTransactionID(ctx, env.OrderID, env.TransactionID)
	if err != nil {
		if errors.Is(err, saga.ErrKindNotFound) {
			return saga.CompensationSkipped, nil
		}
		return 0, errors.Wrap(err, "failed to find validation")
	}

	if !validation.Compensable() {
		return saga.CompensationSkipped, nil
	}

	if err := validation.Rollback(); err != nil {
		return 0, err
	}
	if err := p.validationRepository.Update(ctx, validation); err != nil {
		return 0, errors.Wrap(err, "failed to roll back validation")
	}
	return saga.CompensationApplied, nil
}
