package infrastructure

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	inventoryColumns      = []string{"id", "product_code", "available", "created_at", "updated_at"}
	orderInventoryColumns = []string{
		"id", "inventory_id", "order_id", "transaction_id", "line", "product_code",
		"order_quantity", "old_quantity", "new_quantity", "status", "created_at", "updated_at",
	}
	stockTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	lines     = []saga.OrderProduct{
		{Product: saga.Product{Code: "COMIC_BOOKS", UnitValue: 10}, Quantity: 2},
		{Product: saga.Product{Code: "BOOKS", UnitValue: 5}, Quantity: 1},
	}
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

func expectStock(mock sqlmock.Sqlmock, comicBooks, books int) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM inventories")).WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(inventoryColumns).
			AddRow("inv-2", "BOOKS", books, stockTime, stockTime).
			AddRow("inv-1", "COMIC_BOOKS", comicBooks, stockTime, stockTime))
}

func TestPostgresInventoryRepository_Reserve(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresInventoryRepository(db)

	mock.ExpectBegin()
	expectStock(mock, 5, 1)
	mock.ExpectExec("INSERT INTO order_inventories").
		WithArgs(sqlmock.AnyArg(), "inv-1", "O1", "T1", 0, "COMIC_BOOKS", 2, 5, 3, "RESERVED", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_inventories").
		WithArgs(sqlmock.AnyArg(), "inv-2", "O1", "T1", 1, "BOOKS", 1, 1, 0, "RESERVED", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE inventories").WithArgs(0, sqlmock.AnyArg(), "inv-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE inventories").WithArgs(3, sqlmock.AnyArg(), "inv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.Reserve(context.Background(), "O1", "T1", lines)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 5, rows[0].OldQuantity)
	assert.Equal(t, 3, rows[0].NewQuantity)
}

func TestPostgresInventoryRepository_ReserveRollsBack(t *testing.T) {
	t.Run("out of stock", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgresInventoryRepository(db)

		mock.ExpectBegin()
		expectStock(mock, 5, 0)
		mock.ExpectRollback()

		_, err := repo.Reserve(context.Background(), "O1", "T1", lines)
		assert.ErrorIs(t, err, saga.ErrKindInvariantViolation)
		assert.Equal(t, "Product BOOKS is out of stock!", err.Error())
	})

	t.Run("concurrent duplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgresInventoryRepository(db)

		mock.ExpectBegin()
		expectStock(mock, 5, 1)
		mock.ExpectExec("INSERT INTO order_inventories").WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		_, err := repo.Reserve(context.Background(), "O1", "T1", lines)
		assert.ErrorIs(t, err, saga.ErrKindDuplicateTransaction)
	})
}

func TestPostgresInventoryRepository_Release(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresInventoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_inventories")).WithArgs("O1", "T1", "RESERVED").
		WillReturnRows(sqlmock.NewRows(orderInventoryColumns).
			AddRow("row-1", "inv-1", "O1", "T1", 0, "COMIC_BOOKS", 2, 5, 3, "RESERVED", stockTime, stockTime).
			AddRow("row-2", "inv-2", "O1", "T1", 1, "BOOKS", 1, 1, 0, "RESERVED", stockTime, stockTime))
	mock.ExpectQuery(regexp.QuoteMeta("FROM inventories")).WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(inventoryColumns).
			AddRow("inv-1", "COMIC_BOOKS", 3, stockTime, stockTime).
			AddRow("inv-2", "BOOKS", 0, stockTime, stockTime))
	mock.ExpectExec("UPDATE order_inventories").WithArgs("RELEASED", sqlmock.AnyArg(), "row-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE order_inventories").WithArgs("RELEASED", sqlmock.AnyArg(), "row-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE inventories").WithArgs(5, sqlmock.AnyArg(), "inv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE inventories").WithArgs(1, sqlmock.AnyArg(), "inv-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	released, err := repo.Release(context.Background(), "O1", "T1")
	require.NoError(t, err)
	assert.Equal(t, 2, released)
}

func TestPostgresInventoryRepository_ReleaseNothingReserved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresInventoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_inventories")).WithArgs("O1", "T1", "RESERVED").
		WillReturnRows(sqlmock.NewRows(orderInventoryColumns))
	mock.ExpectRollback()

	released, err := repo.Release(context.Background(), "O1", "T1")
	require.NoError(t, err)
	assert.Zero(t, released)
}

func TestPostgresInventoryRepository_ExistsByOrderIDAndTransactionID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresInventoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM order_inventories")).WithArgs("O1", "T1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByOrderIDAndTransactionID(context.Background(), "O1", "T1")
	require.NoError(t, err)
	assert.False(t, exists)
}
