package domain

import (
	"context"
	"errors"
	"time"

	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
)

// ErrConcurrentHop means another orchestrator instance already routed this
// saga past the version the caller read
var ErrConcurrentHop = errors.New("saga was routed concurrently")

// Snapshot is the durable state of a saga after one routing step: the
// envelope as received plus the orchestrator's history entry, and where it
// was sent next.
type Snapshot struct {
	Envelope  *saga.Envelope
	Target    saga.Source
	Topic     events.Topic
	Terminal  bool
	Version   int
	CreatedAt time.Time
}

// HistoryLen is the history length the next hop result must exceed by one
func (s *Snapshot) HistoryLen() int {
	return len(s.Envelope.History)
}

// SnapshotStore persists routing snapshots. Save must fail with
// ErrConcurrentHop when the stream is no longer at expectedVersion. Latest
// returns a saga.ErrNotFound kind error for an unknown transaction.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot *Snapshot, expectedVersion int) error
	Latest(ctx context.Context, transactionID string) (*Snapshot, error)
}
