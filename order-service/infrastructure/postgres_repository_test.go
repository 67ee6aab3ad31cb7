package infrastructure

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func testOrder() *domain.Order {
	return &domain.Order{
		ID:            "550e8400-e29b-41d4-a716-446655440020",
		TransactionID: "1710072000000_abc",
		Products:      []saga.OrderProduct{{Product: saga.Product{Code: "BOOKS", UnitValue: 5}, Quantity: 1}},
		CreatedAt:     time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestPostgresOrderRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresOrderRepository(db)
	order := testOrder()

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID.String(), order.TransactionID.String(), sqlmock.AnyArg(), order.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), order))
}

func TestPostgresOrderRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresOrderRepository(db)
	order := testOrder()
	products, err := json.Marshal(order.Products)
	require.NoError(t, err)

	query := regexp.QuoteMeta("FROM orders")
	mock.ExpectQuery(query).WithArgs(order.ID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "transaction_id", "products", "created_at"}).
			AddRow(order.ID.String(), order.TransactionID.String(), products, order.CreatedAt))
	mock.ExpectQuery(query).WithArgs("550e8400-e29b-41d4-a716-446655440099").
		WillReturnRows(sqlmock.NewRows([]string{"id", "transaction_id", "products", "created_at"}))

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, found)

	_, err = repo.FindByID(context.Background(), models.ID("550e8400-e29b-41d4-a716-446655440099"))
	assert.ErrorIs(t, err, saga.ErrKindNotFound)
}

func finalEnvelope() *saga.Envelope {
	env := saga.NewEnvelope(saga.Order{ID: "O1", TransactionID: "T1"})
	env.Source = saga.SourceInventory
	env.Status = saga.StatusSuccess
	env.AddHistory(saga.SourceOrchestrator, saga.StatusSuccess, "Saga finished successfully")
	return env
}

var eventVersionQuery = regexp.QuoteMeta("SELECT COALESCE(MAX(stream_version), 0) FROM order_events WHERE transaction_id = $1")

func TestPostgresSagaEventRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresSagaEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(eventVersionQuery).WithArgs("T1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec("INSERT INTO order_events").
		WithArgs(sqlmock.AnyArg(), "T1", "O1", "INVENTORY", "SUCCESS", "", "",
			true, sqlmock.AnyArg(), 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), finalEnvelope()))
}

func TestPostgresSagaEventRepository_SaveTwice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresSagaEventRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(eventVersionQuery).WithArgs("T1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), finalEnvelope())
	assert.ErrorIs(t, err, saga.ErrKindDuplicateTransaction)
}

func TestPostgresSagaEventRepository_FindLatest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresSagaEventRepository(db)

	env := finalEnvelope()
	data, err := saga.MarshalEnvelope(env)
	require.NoError(t, err)
	columns := []string{"id", "transaction_id", "order_id", "source", "status", "target", "topic",
		"terminal", "envelope", "stream_version", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE order_id = $1")).WithArgs("O1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("550e8400-e29b-41d4-a716-446655440001", "T1", "O1", "INVENTORY", "SUCCESS", "", "", true, data, 1, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE transaction_id = $1")).WithArgs("T9").
		WillReturnRows(sqlmock.NewRows(columns))

	found, err := repo.FindLatestByOrderID(context.Background(), "O1")
	require.NoError(t, err)
	assert.Equal(t, "T1", found.TransactionID)
	assert.Equal(t, saga.StatusSuccess, found.Status)

	_, err = repo.FindLatestByTransactionID(context.Background(), "T9")
	assert.ErrorIs(t, err, saga.ErrKindNotFound)
}
