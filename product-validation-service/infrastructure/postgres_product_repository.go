package infrastructure

import (
	"context"

	"github.com/draftea/order-saga/product-validation-service/domain"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ domain.ProductRepository = (*PostgresProductRepository)(nil)

// PostgresProductRepository reads the product catalog
//
//	CREATE TABLE products (
//	    id   SERIAL PRIMARY KEY,
//	    code TEXT NOT NULL UNIQUE
//	);
type PostgresProductRepository struct {
	db *sqlx.DB
}

// NewPostgresProductRepository creates a new PostgresProductRepository
func NewPostgresProductRepository(db *sqlx.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// ExistsByCode reports whether code is in the catalog
func (r *PostgresProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE code = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, code); err != nil {
		return false, errors.Wrap(err, "failed to check product existence")
	}
	return exists, nil
}
