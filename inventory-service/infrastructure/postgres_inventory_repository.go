package infrastructure

import (
	"context"
	"sort"
	"time"

	"github.com/draftea/order-saga/inventory-service/domain"
	"github.com/draftea/order-saga/shared/infrastructure"
	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var _ domain.InventoryRepository = (*PostgresInventoryRepository)(nil)

// PostgresInventoryRepository implements InventoryRepository using PostgreSQL.
// Stock rows are locked in a fixed order so concurrent sagas over the same
// products cannot deadlock.
//
//	CREATE TABLE inventories (
//	    id           UUID PRIMARY KEY,
//	    product_code TEXT NOT NULL UNIQUE,
//	    available    INT NOT NULL CHECK (available >= 0),
//	    created_at   TIMESTAMPTZ NOT NULL,
//	    updated_at   TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE order_inventories (
//	    id             UUID PRIMARY KEY,
//	    inventory_id   UUID NOT NULL REFERENCES inventories (id),
//	    order_id       TEXT NOT NULL,
//	    transaction_id TEXT NOT NULL,
//	    line           INT NOT NULL,
//	    product_code   TEXT NOT NULL,
//	    order_quantity INT NOT NULL,
//	    old_quantity   INT NOT NULL,
//	    new_quantity   INT NOT NULL,
//	    status         TEXT NOT NULL,
//	    created_at     TIMESTAMPTZ NOT NULL,
//	    updated_at     TIMESTAMPTZ NOT NULL,
//	    UNIQUE (order_id, transaction_id, line)
//	);
type PostgresInventoryRepository struct {
	db *sqlx.DB
}

// NewPostgresInventoryRepository creates a new PostgresInventoryRepository
func NewPostgresInventoryRepository(db *sqlx.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

type postgresInventory struct {
	ID          string    `db:"id"`
	ProductCode string    `db:"product_code"`
	Available   int       `db:"available"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type postgresOrderInventory struct {
	ID            string    `db:"id"`
	InventoryID   string    `db:"inventory_id"`
	OrderID       string    `db:"order_id"`
	TransactionID string    `db:"transaction_id"`
	Line          int       `db:"line"`
	ProductCode   string    `db:"product_code"`
	OrderQuantity int       `db:"order_quantity"`
	OldQuantity   int       `db:"old_quantity"`
	NewQuantity   int       `db:"new_quantity"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ExistsByOrderIDAndTransactionID reports whether the saga attempt already reserved stock
func (r *PostgresInventoryRepository) ExistsByOrderIDAndTransactionID(ctx context.Context, orderID, transactionID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM order_inventories WHERE order_id = $1 AND transaction_id = $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, orderID, transactionID); err != nil {
		return false, errors.Wrap(err, "failed to check reservation existence")
	}
	return exists, nil
}

// Reserve takes the ordered quantities out of stock in one transaction
func (r *PostgresInventoryRepository) Reserve(ctx context.Context, orderID, transactionID string, lines []saga.OrderProduct) ([]*domain.OrderInventory, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	codes := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.Product.Code] {
			seen[line.Product.Code] = true
			codes = append(codes, line.Product.Code)
		}
	}
	sort.Strings(codes)

	query := `
		SELECT id, product_code, available, created_at, updated_at
		FROM inventories
		WHERE product_code = ANY($1)
		ORDER BY product_code
		FOR UPDATE`

	var pgInventories []postgresInventory
	if err := tx.SelectContext(ctx, &pgInventories, query, pq.Array(codes)); err != nil {
		return nil, errors.Wrap(err, "failed to lock inventories")
	}

	stock := make(map[string]*domain.Inventory, len(pgInventories))
	for i := range pgInventories {
		inventory := toDomainInventory(&pgInventories[i])
		stock[inventory.ProductCode] = inventory
	}

	rows, err := domain.ReserveLines(orderID, transactionID, lines, stock)
	if err != nil {
		return nil, err
	}

	insert := `
		INSERT INTO order_inventories (
			id, inventory_id, order_id, transaction_id, line, product_code,
			order_quantity, old_quantity, new_quantity, status, created_at, updated_at
		) VALUES (
			:id, :inventory_id, :order_id, :transaction_id, :line, :product_code,
			:order_quantity, :old_quantity, :new_quantity, :status, :created_at, :updated_at
		)`
	for i, row := range rows {
		if _, err := tx.NamedExecContext(ctx, insert, toPostgresOrderInventory(row, i)); err != nil {
			if infrastructure.IsUniqueViolation(err) {
				return nil, saga.ErrDuplicateTransaction("There's another transactionId for this validation")
			}
			return nil, errors.Wrap(err, "failed to insert order inventory")
		}
	}

	for _, code := range codes {
		if err := updateAvailable(ctx, tx, stock[code]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit reservation")
	}
	return rows, nil
}

// Release puts every RESERVED row of the attempt back into stock in one transaction
func (r *PostgresInventoryRepository) Release(ctx context.Context, orderID, transactionID string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
		SELECT id, inventory_id, order_id, transaction_id, line, product_code,
			   order_quantity, old_quantity, new_quantity, status, created_at, updated_at
		FROM order_inventories
		WHERE order_id = $1 AND transaction_id = $2 AND status = $3
		ORDER BY line
		FOR UPDATE`

	var pgRows []postgresOrderInventory
	if err := tx.SelectContext(ctx, &pgRows, query, orderID, transactionID, string(domain.ReservationStatusReserved)); err != nil {
		return 0, errors.Wrap(err, "failed to lock order inventories")
	}
	if len(pgRows) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(pgRows))
	seen := make(map[string]bool, len(pgRows))
	for _, row := range pgRows {
		if !seen[row.InventoryID] {
			seen[row.InventoryID] = true
			ids = append(ids, row.InventoryID)
		}
	}
	sort.Strings(ids)

	lock := `
		SELECT id, product_code, available, created_at, updated_at
		FROM inventories
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`

	var pgInventories []postgresInventory
	if err := tx.SelectContext(ctx, &pgInventories, lock, pq.Array(ids)); err != nil {
		return 0, errors.Wrap(err, "failed to lock inventories")
	}

	stock := make(map[models.ID]*domain.Inventory, len(pgInventories))
	for i := range pgInventories {
		inventory := toDomainInventory(&pgInventories[i])
		stock[inventory.ID] = inventory
	}

	update := `
		UPDATE order_inventories
		SET status = $1, updated_at = $2
		WHERE id = $3`
	for i := range pgRows {
		row := toDomainOrderInventory(&pgRows[i])
		inventory, ok := stock[row.InventoryID]
		if !ok {
			return 0, errors.Errorf("inventory %s of reservation %s not found", row.InventoryID, row.ID)
		}
		if err := inventory.Release(row); err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, update, string(row.Status), row.Timestamps.UpdatedAt, row.ID.String()); err != nil {
			return 0, errors.Wrap(err, "failed to release order inventory")
		}
	}

	for _, id := range ids {
		if err := updateAvailable(ctx, tx, stock[models.ID(id)]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit release")
	}
	return len(pgRows), nil
}

func updateAvailable(ctx context.Context, tx *sqlx.Tx, inventory *domain.Inventory) error {
	query := `
		UPDATE inventories
		SET available = $1, updated_at = $2
		WHERE id = $3`

	if _, err := tx.ExecContext(ctx, query, inventory.Available, inventory.Timestamps.UpdatedAt, inventory.ID.String()); err != nil {
		return errors.Wrapf(err, "failed to update stock of %s", inventory.ProductCode)
	}
	return nil
}

func toDomainInventory(pgInventory *postgresInventory) *domain.Inventory {
	return &domain.Inventory{
		ID:          models.ID(pgInventory.ID),
		ProductCode: pgInventory.ProductCode,
		Available:   pgInventory.Available,
		Timestamps: models.Timestamps{
			CreatedAt: pgInventory.CreatedAt,
			UpdatedAt: pgInventory.UpdatedAt,
		},
	}
}

func toPostgresOrderInventory(row *domain.OrderInventory, line int) *postgresOrderInventory {
	return &postgresOrderInventory{
		ID:            row.ID.String(),
		InventoryID:   row.InventoryID.String(),
		OrderID:       row.OrderID,
		TransactionID: row.TransactionID,
		Line:          line,
		ProductCode:   row.ProductCode,
		OrderQuantity: row.OrderQuantity,
		OldQuantity:   row.OldQuantity,
		NewQuantity:   row.NewQuantity,
		Status:        string(row.Status),
		CreatedAt:     row.Timestamps.CreatedAt,
		UpdatedAt:     row.Timestamps.UpdatedAt,
	}
}

func toDomainOrderInventory(pgRow *postgresOrderInventory) *domain.OrderInventory {
	return &domain.OrderInventory{
		ID:            models.ID(pgRow.ID),
		InventoryID:   models.ID(pgRow.InventoryID),
		OrderID:       pgRow.OrderID,
		TransactionID: pgRow.TransactionID,
		ProductCode:   pgRow.ProductCode,
		OrderQuantity: pgRow.OrderQuantity,
		OldQuantity:   pgRow.OldQuantity,
		NewQuantity:   pgRow.NewQuantity,
		Status:        domain.ReservationStatus(pgRow.Status),
		Timestamps: models.Timestamps{
			CreatedAt: pgRow.CreatedAt,
			UpdatedAt: pgRow.UpdatedAt,
		},
	}
}
