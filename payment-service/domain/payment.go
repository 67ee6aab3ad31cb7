package domain

import (
	"context"
	"time"

	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFail    PaymentStatus = "FAIL"
	PaymentStatusRefund  PaymentStatus = "REFUND"
)

// Payment is the local record of charging one saga attempt
type Payment struct {
	ID            models.ID
	OrderID       string
	TransactionID string
	TotalAmount   float64
	TotalItems    int
	Status        PaymentStatus
	Timestamps    models.Timestamps
}

// NewPendingPayment computes the totals of order and opens a PENDING payment
func NewPendingPayment(order saga.Order) *Payment {
	amount, items := order.CalculateTotals()
	return &Payment{
		ID:            models.GenerateUUID(),
		OrderID:       order.ID,
		TransactionID: order.TransactionID,
		TotalAmount:   amount,
		TotalItems:    items,
		Status:        PaymentStatusPending,
		Timestamps:    models.NewTimestamps(),
	}
}

// ValidateAmount rejects totals below min
func (p *Payment) ValidateAmount(min float64) error {
	if p.TotalAmount < min {
		return saga.ErrInvariantViolation("The minimum amount available is %v", min)
	}
	return nil
}

// Succeed marks a pending payment as charged
func (p *Payment) Succeed() error {
	if p.Status != PaymentStatusPending {
		return errors.Errorf("payment can only succeed from %s status, got %s", PaymentStatusPending, p.Status)
	}
	p.Status = PaymentStatusSuccess
	p.Timestamps = p.Timestamps.Update()
	return nil
}

// Fail marks a pending payment as failed. It is not compensated later.
func (p *Payment) Fail() error {
	if p.Status != PaymentStatusPending {
		return errors.Errorf("payment can only fail from %s status, got %s", PaymentStatusPending, p.Status)
	}
	p.Status = PaymentStatusFail
	p.Timestamps = p.Timestamps.Update()
	return nil
}

// Refundable reports whether the payment holds a charge to give back
func (p *Payment) Refundable() bool {
	return p.Status == PaymentStatusSuccess
}

// Refund gives a successful charge back
func (p *Payment) Refund() error {
	if !p.Refundable() {
		return errors.Errorf("payment can only be refunded from %s status, got %s", PaymentStatusSuccess, p.Status)
	}
	p.Status = PaymentStatusRefund
	p.Timestamps = p.Timestamps.Update()
	return nil
}

// CopyTotals writes the payment totals into the saga payload
func (p *Payment) CopyTotals(order *saga.Order) {
	order.TotalAmount = p.TotalAmount
	order.TotalItems = p.TotalItems
}

// PaymentRepository defines the interface for payment persistence. Create
// reports a saga.ErrDuplicateTransaction kind error when a payment already
// exists for the (orderId, transactionId) pair; FindByOrderIDAndTransactionID
// reports a saga.ErrNotFound kind error.
type PaymentRepository interface {
	ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error)
	FindByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (*Payment, error)
	Create(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
	FailStalePending(ctx context.Context, before time.Time) (int64, error)
}
