package domain

import (
	"context"
	"time"

	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
)

// ValidationStatus represents the status of a product validation
type ValidationStatus string

const (
	ValidationStatusPending  ValidationStatus = "PENDING"
	ValidationStatusSuccess  ValidationStatus = "SUCCESS"
	ValidationStatusFail     ValidationStatus = "FAIL"
	ValidationStatusRollback ValidationStatus = "ROLLBACK"
)

// Validation records whether the products of one saga attempt were accepted
type Validation struct {
	ID            models.ID
	OrderID       string
	TransactionID string
	Success       bool
	Status        ValidationStatus
	Timestamps    models.Timestamps
}

// NewPendingValidation opens a validation for one saga attempt
func NewPendingValidation(orderID, transactionID string) *Validation {
	return &Validation{
		ID:            models.GenerateUUID(),
		OrderID:       orderID,
		TransactionID: transactionID,
		Status:        ValidationStatusPending,
		Timestamps:    models.NewTimestamps(),
	}
}

// Approve accepts a pending validation
func (v *Validation) Approve() error {
	if v.Status != ValidationStatusPending {
		return errors.Errorf("validation can only be approved from %s status, got %s", ValidationStatusPending, v.Status)
	}
	v.Success = true
	v.Status = ValidationStatusSuccess
	v.Timestamps = v.Timestamps.Update()
	return nil
}

// Reject fails a pending validation
func (v *Validation) Reject() error {
	if v.Status != ValidationStatusPending {
		return errors.Errorf("validation can only be rejected from %s status, got %s", ValidationStatusPending, v.Status)
	}
	v.Success = false
	v.Status = ValidationStatusFail
	v.Timestamps = v.Timestamps.Update()
	return nil
}

// Compensable reports whether an accepted validation is still standing
func (v *Validation) Compensable() bool {
	return v.Status == ValidationStatusSuccess
}

// Rollback withdraws an accepted validation
func (v *Validation) Rollback() error {
	if !v.Compensable() {
		return errors.Errorf("validation can only be rolled back from %s status, got %s", ValidationStatusSuccess, v.Status)
	}
	v.Success = false
	v.Status = ValidationStatusRollback
	v.Timestamps = v.Timestamps.Update()
	return nil
}

// CheckProductsInformed rejects an order without lines or with a line
// missing its product code
func CheckProductsInformed(order saga.Order) error {
	if len(order.Products) == 0 {
		return saga.ErrInvariantViolation("Product list is empty!")
	}
	for _, line := range order.Products {
		if line.Product.Code == "" {
			return saga.ErrInvariantViolation("Product must be informed!")
		}
	}
	return nil
}

// ValidationRepository persists validations. Create reports a
// saga.ErrDuplicateTransaction kind error for a second validation of the same
// (orderId, transactionId); FindByOrderIDAndTransactionID reports a
// saga.ErrNotFound kind error.
type ValidationRepository interface {
	ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error)
	FindByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (*Validation, error)
	Create(ctx context.Context, validation *Validation) error
	Update(ctx context.Context, validation *Validation) error
	FailStalePending(ctx context.Context, before time.Time) (int64, error)
}

// ProductRepository reads the product catalog
type ProductRepository interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
