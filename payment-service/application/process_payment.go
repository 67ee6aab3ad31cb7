package application

import (
	"context"

	"github.com/draftea/order-saga/payment-service/domain"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ saga.Participant = (*PaymentParticipant)(nil)

// PaymentParticipant charges the order total and refunds it on compensation
type PaymentParticipant struct {
	paymentRepository domain.PaymentRepository
	minAmount         float64
	logger            *zap.Logger
}

// NewPaymentParticipant creates the payment stage. Totals below minAmount are rejected.
func NewPaymentParticipant(paymentRepository domain.PaymentRepository, minAmount float64, logger *zap.Logger) *PaymentParticipant {
	return &PaymentParticipant{
		paymentRepository: paymentRepository,
		minAmount:         minAmount,
		logger:            logger,
	}
}

func (p *PaymentParticipant) Source() saga.Source {
	return saga.SourcePayment
}

func (p *PaymentParticipant) Action() string {
	return "payment"
}

// ProcessForward opens a PENDING payment, checks the minimum amount and
// settles it. The payload is enriched with the computed totals either way.
func (p *PaymentParticipant) ProcessForward(ctx context.Context, env *saga.Envelope) error {
	exists, err := p.paymentRepository.ExistsByOrderIDAndTransactionID(ctx, env.OrderID, env.TransactionID)
	if err != nil {
		return errors.Wrap(err, "failed to check existing payment")
	}
	if exists {
		return saga.ErrDuplicateTransaction("There's another transactionId for this validation")
	}

	payment := domain.NewPendingPayment(env.Payload)
	if err := p.paymentRepository.Create(ctx, payment); err != nil {
		return errors.Wrap(err, "failed to create payment")
	}
	payment.CopyTotals(&env.Payload)

	if err := payment.ValidateAmount(p.minAmount); err != nil {
		if failErr := payment.Fail(); failErr == nil {
			if updateErr := p.paymentRepository.Update(ctx, payment); updateErr != nil {
				// the reaper fails the record later
				p.logger.Error("failed to mark payment as failed",
					zap.String("order_id", env.OrderID),
					zap.String("transaction_id", env.TransactionID),
					zap.Error(updateErr),
				)
			}
		}
		return err
	}

	if err := payment.Succeed(); err != nil {
		return err
	}
	if err := p.paymentRepository.Update(ctx, payment); err != nil {
		return errors.Wrap(err, "failed to update payment")
	}
	return nil
}

// ProcessCompensation refunds a successful payment. A missing payment, or
// one that never succeeded or was already refunded, has nothing to give back.
func (p *PaymentParticipant) ProcessCompensation(ctx context.Context, env *saga.Envelope) (saga.CompensationOutcome, error) {
	payment, err := p.paymentRepository.FindByOrderIDAndTransactionID(ctx, env.OrderID, env.TransactionID)
	if err != nil {
		if errors.Is(err, saga.ErrKindNotFound) {
			return saga.CompensationSkipped, nil
		}
		return 0, errors.Wrap(err, "failed to find payment")
	}

	payment.CopyTotals(&env.Payload)
	if !payment.Refundable() {
		return saga.CompensationSkipped, nil
	}

	if err := payment.Refund(); err != nil {
		return 0, err
	}
	if err := p.paymentRepository.Update(ctx, payment); err != nil {
		return 0, errors.Wrap(err, "failed to refund payment")
	}
	return saga.CompensationApplied, nil
}
