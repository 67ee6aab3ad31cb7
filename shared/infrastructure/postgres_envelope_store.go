package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/models"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// AnyVersion skips the optimistic concurrency check on Append
const AnyVersion = -1

// ErrVersionConflict is returned when another writer appended to the same
// saga stream first
var ErrVersionConflict = errors.New("concurrency conflict")

// EnvelopeRecord is one stored envelope snapshot. Target and Topic record
// where the envelope was dispatched next; Terminal marks the last record of
// a saga.
type EnvelopeRecord struct {
	ID        models.ID
	Envelope  *saga.Envelope
	Target    saga.Source
	Topic     events.Topic
	Terminal  bool
	Version   int
	CreatedAt time.Time
}

// PostgresEnvelopeStore is an append-only stream of envelope snapshots per
// transaction id.
//
//	CREATE TABLE <table> (
//	    id             UUID PRIMARY KEY,
//	    transaction_id TEXT NOT NULL,
//	    order_id       TEXT NOT NULL,
//	    source         TEXT NOT NULL,
//	    status         TEXT NOT NULL,
//	    target         TEXT NOT NULL DEFAULT '',
//	    topic          TEXT NOT NULL DEFAULT '',
//	    terminal       BOOLEAN NOT NULL DEFAULT FALSE,
//	    envelope       JSONB NOT NULL,
//	    stream_version INT NOT NULL,
//	    created_at     TIMESTAMPTZ NOT NULL,
//	    UNIQUE (transaction_id, stream_version)
//	);
type PostgresEnvelopeStore struct {
	db    *sqlx.DB
	table string
}

// NewPostgresEnvelopeStore creates a store over table
func NewPostgresEnvelopeStore(db *sqlx.DB, table string) *PostgresEnvelopeStore {
	return &PostgresEnvelopeStore{db: db, table: table}
}

type postgresEnvelope struct {
	ID            string    `db:"id"`
	TransactionID string    `db:"transaction_id"`
	OrderID       string    `db:"order_id"`
	Source        string    `db:"source"`
	Status        string    `db:"status"`
	Target        string    `db:"target"`
	Topic         string    `db:"topic"`
	Terminal      bool      `db:"terminal"`
	Envelope      []byte    `db:"envelope"`
	StreamVersion int       `db:"stream_version"`
	CreatedAt     time.Time `db:"created_at"`
}

const envelopeColumns = `id, transaction_id, order_id, source, status, target, topic,
			   terminal, envelope, stream_version, created_at`

// Append stores rec as the next version of its transaction stream. With an
// expected version other than AnyVersion the append fails with
// ErrVersionConflict unless the stream is exactly at that version.
func (s *PostgresEnvelopeStore) Append(ctx context.Context, rec *EnvelopeRecord, expectedVersion int) error {
	if rec == nil || rec.Envelope == nil {
		return errors.New("envelope record is required")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var currentVersion int
	err = tx.GetContext(ctx, &currentVersion,
		fmt.Sprintf("SELECT COALESCE(MAX(stream_version), 0) FROM %s WHERE transaction_id = $1", s.table),
		rec.Envelope.TransactionID)
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "failed to get current version")
	}

	if expectedVersion != AnyVersion && currentVersion != expectedVersion {
		return errors.Wrapf(ErrVersionConflict, "expected version %d, got %d", expectedVersion, currentVersion)
	}

	if rec.ID.IsEmpty() {
		rec.ID = models.GenerateUUID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.Version = currentVersion + 1

	row, err := toPostgresEnvelope(rec)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, transaction_id, order_id, source, status, target, topic,
			terminal, envelope, stream_version, created_at
		) VALUES (
			:id, :transaction_id, :order_id, :source, :status, :target, :topic,
			:terminal, :envelope, :stream_version, :created_at
		)`, s.table)

	if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
		if IsUniqueViolation(err) {
			return errors.Wrap(ErrVersionConflict, "stream version already taken")
		}
		return errors.Wrap(err, "failed to insert envelope")
	}

	return errors.Wrap(tx.Commit(), "failed to commit envelope")
}

// Latest returns the highest version of a transaction stream. Versions are
// assigned under the stream's optimistic check, so they order the stream
// even when writers' clocks disagree.
func (s *PostgresEnvelopeStore) Latest(ctx context.Context, transactionID string) (*EnvelopeRecord, error) {
	return s.getOne(ctx, "transaction_id", transactionID, "stream_version DESC")
}

// LatestByOrderID returns the newest record of any transaction of an order
func (s *PostgresEnvelopeStore) LatestByOrderID(ctx context.Context, orderID string) (*EnvelopeRecord, error) {
	return s.getOne(ctx, "order_id", orderID, "created_at DESC, stream_version DESC")
}

func (s *PostgresEnvelopeStore) getOne(ctx context.Context, column, value, orderBy string) (*EnvelopeRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s
		LIMIT 1`, envelopeColumns, s.table, column, orderBy)

	var row postgresEnvelope
	if err := s.db.GetContext(ctx, &row, query, value); err != nil {
		if err == sql.ErrNoRows {
			return nil, saga.ErrNotFound("no saga found for %s %s", column, value)
		}
		return nil, errors.Wrap(err, "failed to get envelope")
	}

	return toEnvelopeRecord(&row)
}

// List returns up to limit records, newest first. A limit <= 0 lists all.
func (s *PostgresEnvelopeStore) List(ctx context.Context, limit int) ([]*EnvelopeRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY created_at DESC, stream_version DESC`, envelopeColumns, s.table)

	args := []interface{}{}
	if limit > 0 {
		query += "\n\t\tLIMIT $1"
		args = append(args, limit)
	}

	var rows []postgresEnvelope
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list envelopes")
	}

	records := make([]*EnvelopeRecord, len(rows))
	for i := range rows {
		rec, err := toEnvelopeRecord(&rows[i])
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

func toPostgresEnvelope(rec *EnvelopeRecord) (*postgresEnvelope, error) {
	data, err := saga.MarshalEnvelope(rec.Envelope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal envelope")
	}

	return &postgresEnvelope{
		ID:            rec.ID.String(),
		TransactionID: rec.Envelope.TransactionID,
		OrderID:       rec.Envelope.OrderID,
		Source:        rec.Envelope.Source.String(),
		Status:        rec.Envelope.Status.String(),
		Target:        rec.Target.String(),
		Topic:         rec.Topic.String(),
		Terminal:      rec.Terminal,
		Envelope:      data,
		StreamVersion: rec.Version,
		CreatedAt:     rec.CreatedAt,
	}, nil
}

func toEnvelopeRecord(row *postgresEnvelope) (*EnvelopeRecord, error) {
	env, err := saga.UnmarshalEnvelope(row.Envelope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal envelope")
	}

	return &EnvelopeRecord{
		ID:        models.ID(row.ID),
		Envelope:  env,
		Target:    saga.Source(row.Target),
		Topic:     events.Topic(row.Topic),
		Terminal:  row.Terminal,
		Version:   row.StreamVersion,
		CreatedAt: row.CreatedAt,
	}, nil
}
