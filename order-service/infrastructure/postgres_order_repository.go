package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/draftea/order-saga/order-service/domain"
	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ domain.OrderRepository = (*PostgresOrderRepository)(nil)

// PostgresOrderRepository implements OrderRepository using PostgreSQL
//
//	CREATE TABLE orders (
//	    id             UUID PRIMARY KEY,
//	    transaction_id TEXT NOT NULL UNIQUE,
//	    products       JSONB NOT NULL,
//	    created_at     TIMESTAMPTZ NOT NULL
//	);
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// postgresOrder represents order in database
type postgresOrder struct {
	ID            string    `db:"id"`
	TransactionID string    `db:"transaction_id"`
	Products      []byte    `db:"products"`
	CreatedAt     time.Time `db:"created_at"`
}

// Save inserts a new order
func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, transaction_id, products, created_at)
		VALUES (:id, :transaction_id, :products, :created_at)`

	pgOrder, err := r.toPostgres(order)
	if err != nil {
		return err
	}

	if _, err := r.db.NamedExecContext(ctx, query, pgOrder); err != nil {
		return errors.Wrap(err, "failed to insert order")
	}
	return nil
}

// FindByID finds an order by ID
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	query := `
		SELECT id, transaction_id, products, created_at
		FROM orders
		WHERE id = $1`

	var pgOrder postgresOrder
	if err := r.db.GetContext(ctx, &pgOrder, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, saga.ErrNotFound("order %s not found", id)
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	return r.toDomain(&pgOrder)
}

func (r *PostgresOrderRepository) toPostgres(order *domain.Order) (*postgresOrder, error) {
	products, err := json.Marshal(order.Products)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal products")
	}

	return &postgresOrder{
		ID:            order.ID.String(),
		TransactionID: order.TransactionID.String(),
		Products:      products,
		CreatedAt:     order.CreatedAt,
	}, nil
}

func (r *PostgresOrderRepository) toDomain(pgOrder *postgresOrder) (*domain.Order, error) {
	var products []saga.OrderProduct
	if err := json.Unmarshal(pgOrder.Products, &products); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal products")
	}

	return &domain.Order{
		ID:            models.ID(pgOrder.ID),
		TransactionID: models.ID(pgOrder.TransactionID),
		Products:      products,
		CreatedAt:     pgOrder.CreatedAt,
	}, nil
}
