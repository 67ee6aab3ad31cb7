package domain

import (
	"context"

	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
)

// ReservationStatus represents the status of a stock reservation row
type ReservationStatus string

const (
	ReservationStatusReserved ReservationStatus = "RESERVED"
	ReservationStatusReleased ReservationStatus = "RELEASED"
)

// Inventory is the available stock of one product
type Inventory struct {
	ID          models.ID
	ProductCode string
	Available   int
	Timestamps  models.Timestamps
}

// OrderInventory records one stock movement of a saga attempt, with the
// stock before and after it
type OrderInventory struct {
	ID            models.ID
	InventoryID   models.ID
	OrderID       string
	TransactionID string
	ProductCode   string
	OrderQuantity int
	OldQuantity   int
	NewQuantity   int
	Status        ReservationStatus
	Timestamps    models.Timestamps
}

// Reserve takes quantity units out of stock
func (i *Inventory) Reserve(orderID, transactionID string, quantity int) (*OrderInventory, error) {
	if quantity <= 0 {
		return nil, saga.ErrInvariantViolation("Quantity of product %s must be positive", i.ProductCode)
	}
	if i.Available < quantity {
		return nil, saga.ErrInvariantViolation("Product %s is out of stock!", i.ProductCode)
	}

	row := &OrderInventory{
		ID:            models.GenerateUUID(),
		InventoryID:   i.ID,
		OrderID:       orderID,
		TransactionID: transactionID,
		ProductCode:   i.ProductCode,
		OrderQuantity: quantity,
		OldQuantity:   i.Available,
		Status:        ReservationStatusReserved,
		Timestamps:    models.NewTimestamps(),
	}

	i.Available -= quantity
	i.Timestamps = i.Timestamps.Update()
	row.NewQuantity = i.Available

	return row, nil
}

// Release puts a reservation back into stock
func (i *Inventory) Release(row *OrderInventory) error {
	if row.InventoryID != i.ID {
		return errors.Errorf("reservation %s does not belong to inventory %s", row.ID, i.ID)
	}
	if row.Status != ReservationStatusReserved {
		return errors.Errorf("reservation can only be released from %s status, got %s", ReservationStatusReserved, row.Status)
	}

	i.Available += row.OrderQuantity
	i.Timestamps = i.Timestamps.Update()
	row.Status = ReservationStatusReleased
	row.Timestamps = row.Timestamps.Update()
	return nil
}

// ReserveLines reserves every order line against stock, keyed by product
// code. A product ordered on several lines is drawn from the same stock.
func ReserveLines(orderID, transactionID string, lines []saga.OrderProduct, stock map[string]*Inventory) ([]*OrderInventory, error) {
	if len(lines) == 0 {
		return nil, saga.ErrInvariantViolation("Product list is empty!")
	}

	rows := make([]*OrderInventory, 0, len(lines))
	for _, line := range lines {
		inventory, ok := stock[line.Product.Code]
		if !ok {
			return nil, saga.ErrNotFound("Inventory not found by informed product %s", line.Product.Code)
		}
		row, err := inventory.Reserve(orderID, transactionID, line.Quantity)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// InventoryRepository persists stock and reservations. Reserve and Release
// are atomic: either every line is applied or none is.
type InventoryRepository interface {
	ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error)
	// Reserve locks the stock of the ordered products, applies ReserveLines
	// and stores the resulting rows. A second reservation for the same
	// attempt is a saga.ErrDuplicateTransaction kind error.
	Reserve(ctx context.Context, orderID, transactionID string, lines []saga.OrderProduct) ([]*OrderInventory, error)
	// Release puts back every RESERVED row of the attempt and returns how
	// many were released.
	Release(ctx context.Context, orderID, transactionID string) (int, error)
}
