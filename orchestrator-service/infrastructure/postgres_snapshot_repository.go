package infrastructure

import (
	"context"

	"github.com/draftea/order-saga/orchestrator-service/domain"
	sharedinfra "github.com/draftea/order-saga/shared/infrastructure"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const snapshotsTable = "saga_snapshots"

var _ domain.SnapshotStore = (*PostgresSnapshotRepository)(nil)

// PostgresSnapshotRepository stores routing snapshots in the saga_snapshots stream
type PostgresSnapshotRepository struct {
	store *sharedinfra.PostgresEnvelopeStore
}

func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{store: sharedinfra.NewPostgresEnvelopeStore(db, snapshotsTable)}
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot, expectedVersion int) error {
	rec := &sharedinfra.EnvelopeRecord{
		Envelope:  snapshot.Envelope,
		Target:    snapshot.Target,
		Topic:     snapshot.Topic,
		Terminal:  snapshot.Terminal,
		CreatedAt: snapshot.CreatedAt,
	}

	if err := r.store.Append(ctx, rec, expectedVersion); err != nil {
		if errors.Is(err, sharedinfra.ErrVersionConflict) {
			return errors.Wrap(domain.ErrConcurrentHop, err.Error())
		}
		return err
	}

	snapshot.Version = rec.Version
	snapshot.CreatedAt = rec.CreatedAt
	return nil
}

func (r *PostgresSnapshotRepository) Latest(ctx context.Context, transactionID string) (*domain.Snapshot, error) {
	rec, err := r.store.Latest(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Envelope:  rec.Envelope,
		Target:    rec.Target,
		Topic:     rec.Topic,
		Terminal:  rec.Terminal,
		Version:   rec.Version,
		CreatedAt: rec.CreatedAt,
	}, nil
}
