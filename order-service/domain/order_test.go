package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/draftea/order-saga/shared/saga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		products      []saga.OrderProduct
		expectedError string
	}{
		{
			name: "valid order",
			products: []saga.OrderProduct{
				{Product: saga.Product{Code: "COMIC_BOOKS", UnitValue: 10}, Quantity: 2},
				{Product: saga.Product{Code: "BOOKS", UnitValue: 5}, Quantity: 1},
			},
		},
		{
			name:          "no products",
			expectedError: "at least one product",
		},
		{
			name:          "missing code",
			products:      []saga.OrderProduct{{Product: saga.Product{UnitValue: 10}, Quantity: 1}},
			expectedError: "product code must be informed",
		},
		{
			name:          "zero quantity",
			products:      []saga.OrderProduct{{Product: saga.Product{Code: "BOOKS", UnitValue: 10}}},
			expectedError: "quantity of BOOKS must be positive",
		},
		{
			name:          "negative unit value",
			products:      []saga.OrderProduct{{Product: saga.Product{Code: "BOOKS", UnitValue: -1}, Quantity: 1}},
			expectedError: "cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder(tt.products, now)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.ErrorIs(t, err, saga.ErrKindInvalid)
				assert.Nil(t, order)
				return
			}

			require.NoError(t, err)
			assert.False(t, order.ID.IsEmpty())
			assert.True(t, strings.HasPrefix(order.TransactionID.String(), "1710072000000_"))
			assert.Equal(t, now, order.CreatedAt)

			payload := order.Payload()
			assert.Equal(t, order.ID.String(), payload.ID)
			assert.Equal(t, order.TransactionID.String(), payload.TransactionID)
			assert.Len(t, payload.Products, 2)
		})
	}
}
