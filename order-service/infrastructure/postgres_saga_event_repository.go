package infrastructure

import (
	"context"

	"github.com/draftea/order-saga/order-service/domain"
	sharedinfra "github.com/draftea/order-saga/shared/infrastructure"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const sagaEventsTable = "order_events"

var _ domain.SagaEventRepository = (*PostgresSagaEventRepository)(nil)

// PostgresSagaEventRepository stores one final envelope per transaction in
// the order_events stream
type PostgresSagaEventRepository struct {
	store *sharedinfra.PostgresEnvelopeStore
}

func NewPostgresSagaEventRepository(db *sqlx.DB) *PostgresSagaEventRepository {
	return &PostgresSagaEventRepository{store: sharedinfra.NewPostgresEnvelopeStore(db, sagaEventsTable)}
}

func (r *PostgresSagaEventRepository) Save(ctx context.Context, env *saga.Envelope) error {
	rec := &sharedinfra.EnvelopeRecord{
		Envelope:  env,
		Terminal:  true,
		CreatedAt: env.CreatedAt,
	}

	// a finished saga is written exactly once
	if err := r.store.Append(ctx, rec, 0); err != nil {
		if errors.Is(err, sharedinfra.ErrVersionConflict) {
			return saga.ErrDuplicateTransaction("saga %s already stored", env.TransactionID)
		}
		return err
	}
	return nil
}

func (r *PostgresSagaEventRepository) FindAll(ctx context.Context) ([]*saga.Envelope, error) {
	records, err := r.store.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	envelopes := make([]*saga.Envelope, len(records))
	for i, rec := range records {
		envelopes[i] = rec.Envelope
	}
	return envelopes, nil
}

func (r *PostgresSagaEventRepository) FindLatestByOrderID(ctx context.Context, orderID string) (*saga.Envelope, error) {
	rec, err := r.store.LatestByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return rec.Envelope, nil
}

func (r *PostgresSagaEventRepository) FindLatestByTransactionID(ctx context.Context, transactionID string) (*saga.Envelope, error) {
	rec, err := r.store.Latest(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return rec.Envelope, nil
}
