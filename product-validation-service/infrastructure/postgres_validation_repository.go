package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/draftea/order-saga/product-validation-service/domain"
	"github.com/draftea/order-saga/shared/infrastructure"
	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ domain.ValidationRepository = (*PostgresValidationRepository)(nil)

// PostgresValidationRepository implements ValidationRepository using PostgreSQL
//
//	CREATE TABLE validations (
//	    id             UUID PRIMARY KEY,
//	    order_id       TEXT NOT NULL,
//	    transaction_id TEXT NOT NULL,
//	    success        BOOLEAN NOT NULL,
//	    status         TEXT NOT NULL,
//	    created_at     TIMESTAMPTZ NOT NULL,
//	    updated_at     TIMESTAMPTZ NOT NULL,
//	    UNIQUE (order_id, transaction_id)
//	);
type PostgresValidationRepository struct {
	db *sqlx.DB
}

// NewPostgresValidationRepository creates a new PostgresValidationRepository
func NewPostgresValidationRepository(db *sqlx.DB) *PostgresValidationRepository {
	return &PostgresValidationRepository{db: db}
}

type postgresValidation struct {
	ID            string    `db:"id"`
	OrderID       string    `db:"order_id"`
	TransactionID string    `db:"transaction_id"`
	Success       bool      `db:"success"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ExistsByOrderIDAndTransactionID reports whether the saga attempt was already validated
func (r *PostgresValidationRepository) ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM validations WHERE order_id = $1 AND transaction_id = $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, orderID, transactionID); err != nil {
		return false, errors.Wrap(err, "failed to check validation existence")
	}
	return exists, nil
}

// FindByOrderIDAndTransactionID finds the validation of one saga attempt
func (r *PostgresValidationRepository) FindByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (*domain.Validation, error) {
	query := `
		SELECT id, order_id, transaction_id, success, status, created_at, updated_at
		FROM validations
		WHERE order_id = $1 AND transaction_id = $2`

	var pgValidation postgresValidation
	if err := r.db.GetContext(ctx, &pgValidation, query, orderID, transactionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, saga.ErrNotFound("validation for order %s and transaction %s not found", orderID, transactionID)
		}
		return nil, errors.Wrap(err, "failed to find validation")
	}

	return &domain.Validation{
		ID:            models.ID(pgValidation.ID),
		OrderID:       pgValidation.OrderID,
		TransactionID: pgValidation.TransactionID,
		Success:       pgValidation.Success,
		Status:        domain.ValidationStatus(pgValidation.Status),
		Timestamps: models.Timestamps{
			CreatedAt: pgValidation.CreatedAt,
			UpdatedAt: pgValidation.UpdatedAt,
		},
	}, nil
}

// Create inserts a new validation
func (r *PostgresValidationRepository) Create(ctx context.Context, validation *domain.Validation) error {
	query := `
		INSERT INTO validations (
			id, order_id, transaction_id, success, status, created_at, updated_at
		) VALUES (
			:id, :order_id, :transaction_id, :success, :status, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, toPostgresValidation(validation)); err != nil {
		if infrastructure.IsUniqueViolation(err) {
			return saga.ErrDuplicateTransaction("There's another transactionId for this validation")
		}
		return errors.Wrap(err, "failed to insert validation")
	}
	return nil
}

// Update stores the outcome of an existing validation
func (r *PostgresValidationRepository) Update(ctx context.Context, validation *domain.Validation) error {
	query := `
		UPDATE validations
		SET success = :success, status = :status, updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, toPostgresValidation(validation))
	if err != nil {
		return errors.Wrap(err, "failed to update validation")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return saga.ErrNotFound("validation %s not found", validation.ID)
	}
	return nil
}

// FailStalePending fails validations left PENDING since before the cutoff
func (r *PostgresValidationRepository) FailStalePending(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE validations
		SET success = FALSE, status = $1, updated_at = NOW()
		WHERE status = $2 AND created_at < $3`

	result, err := r.db.ExecContext(ctx, query,
		string(domain.ValidationStatusFail), string(domain.ValidationStatusPending), before)
	if err != nil {
		return 0, errors.Wrap(err, "failed to fail stale validations")
	}
	return result.RowsAffected()
}

func toPostgresValidation(validation *domain.Validation) *postgresValidation {
	return &postgresValidation{
		ID:            validation.ID.String(),
		OrderID:       validation.OrderID,
		TransactionID: validation.TransactionID,
		Success:       validation.Success,
		Status:        string(validation.Status),
		CreatedAt:     validation.Timestamps.CreatedAt,
		UpdatedAt:     validation.Timestamps.UpdatedAt,
	}
}
