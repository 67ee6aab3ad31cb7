package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/draftea/order-saga/payment-service/domain"
	"github.com/draftea/order-saga/shared/infrastructure"
	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ domain.PaymentRepository = (*PostgresPaymentRepository)(nil)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
//
//	CREATE TABLE payments (
//	    id             UUID PRIMARY KEY,
//	    order_id       TEXT NOT NULL,
//	    transaction_id TEXT NOT NULL,
//	    total_amount   NUMERIC(14,2) NOT NULL,
//	    total_items    INT NOT NULL,
//	    status         TEXT NOT NULL,
//	    created_at     TIMESTAMPTZ NOT NULL,
//	    updated_at     TIMESTAMPTZ NOT NULL,
//	    UNIQUE (order_id, transaction_id)
//	);
type PostgresPaymentRepository struct {
	db *sqlx.DB
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db *sqlx.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// postgresPayment represents payment in database
type postgresPayment struct {
	ID            string    `db:"id"`
	OrderID       string    `db:"order_id"`
	TransactionID string    `db:"transaction_id"`
	TotalAmount   float64   `db:"total_amount"`
	TotalItems    int       `db:"total_items"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ExistsByOrderIDAndTransactionID reports whether the saga attempt already has a payment
func (r *PostgresPaymentRepository) ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments WHERE order_id = $1 AND transaction_id = $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, orderID, transactionID); err != nil {
		return false, errors.Wrap(err, "failed to check payment existence")
	}
	return exists, nil
}

// FindByOrderIDAndTransactionID finds the payment of one saga attempt
func (r *PostgresPaymentRepository) FindByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (*domain.Payment, error) {
	query := `
		SELECT id, order_id, transaction_id, total_amount, total_items,
			   status, created_at, updated_at
		FROM payments
		WHERE order_id = $1 AND transaction_id = $2`

	var pgPayment postgresPayment
	if err := r.db.GetContext(ctx, &pgPayment, query, orderID, transactionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, saga.ErrNotFound("payment for order %s and transaction %s not found", orderID, transactionID)
		}
		return nil, errors.Wrap(err, "failed to find payment")
	}

	return r.toDomain(&pgPayment), nil
}

// Create inserts a new payment
func (r *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, order_id, transaction_id, total_amount, total_items,
			status, created_at, updated_at
		) VALUES (
			:id, :order_id, :transaction_id, :total_amount, :total_items,
			:status, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, r.toPostgres(payment)); err != nil {
		if infrastructure.IsUniqueViolation(err) {
			return saga.ErrDuplicateTransaction("There's another transactionId for this validation")
		}
		return errors.Wrap(err, "failed to insert payment")
	}
	return nil
}

// Update stores the status and totals of an existing payment
func (r *PostgresPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET status = :status, total_amount = :total_amount, total_items = :total_items,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, r.toPostgres(payment))
	if err != nil {
		return errors.Wrap(err, "failed to update payment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return saga.ErrNotFound("payment %s not found", payment.ID)
	}
	return nil
}

// FailStalePending fails payments left PENDING since before the cutoff
func (r *PostgresPaymentRepository) FailStalePending(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND created_at < $3`

	result, err := r.db.ExecContext(ctx, query,
		string(domain.PaymentStatusFail), string(domain.PaymentStatusPending), before)
	if err != nil {
		return 0, errors.Wrap(err, "failed to fail stale payments")
	}
	return result.RowsAffected()
}

func (r *PostgresPaymentRepository) toPostgres(payment *domain.Payment) *postgresPayment {
	return &postgresPayment{
		ID:            payment.ID.String(),
		OrderID:       payment.OrderID,
		TransactionID: payment.TransactionID,
		TotalAmount:   payment.TotalAmount,
		TotalItems:    payment.TotalItems,
		Status:        string(payment.Status),
		CreatedAt:     payment.Timestamps.CreatedAt,
		UpdatedAt:     payment.Timestamps.UpdatedAt,
	}
}

func (r *PostgresPaymentRepository) toDomain(pgPayment *postgresPayment) *domain.Payment {
	return &domain.Payment{
		ID:            models.ID(pgPayment.ID),
		OrderID:       pgPayment.OrderID,
		TransactionID: pgPayment.TransactionID,
		TotalAmount:   pgPayment.TotalAmount,
		TotalItems:    pgPayment.TotalItems,
		Status:        domain.PaymentStatus(pgPayment.Status),
		Timestamps: models.Timestamps{
			CreatedAt: pgPayment.CreatedAt,
			UpdatedAt: pgPayment.UpdatedAt,
		},
	}
}
