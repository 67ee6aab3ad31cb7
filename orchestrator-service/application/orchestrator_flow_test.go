package application

import (
	"context"
	"sync"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"github.com/draftea/order-saga/orchestrator-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memorySnapshots keeps every saved snapshot per transaction
type memorySnapshots struct {
	mu      sync.Mutex
	streams map[string][]*domain.Snapshot
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{streams: map[string][]*domain.Snapshot{}}
}

func (m *memorySnapshots) Save(ctx context.Context, snapshot *domain.Snapshot, expectedVersion int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stream := m.streams[snapshot.Envelope.TransactionID]
	if len(stream) != expectedVersion {
		return domain.ErrConcurrentHop
	}
	stored := *snapshot
	stored.Envelope = snapshot.Envelope.Clone()
	stored.Version = expectedVersion + 1
	snapshot.Version = stored.Version
	m.streams[snapshot.Envelope.TransactionID] = append(stream, &stored)
	return nil
}

func (m *memorySnapshots) Latest(ctx context.Context, transactionID string) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stream := m.streams[transactionID]
	if len(stream) == 0 {
		return nil, saga.ErrNotFound("saga %s not found", transactionID)
	}
	latest := *stream[len(stream)-1]
	latest.Envelope = latest.Envelope.Clone()
	return &latest, nil
}

// memoryBus queues published events; drain delivers them one at a time and
// redelivers an event whose handler failed
type memoryBus struct {
	queue        []*events.Event
	ended        []*saga.Envelope
	seen         map[events.Topic]int
	fail         func(evt *events.Event) bool
	redeliveries int
}

func (b *memoryBus) Publish(ctx context.Context, evts ...*events.Event) error {
	for _, evt := range evts {
		if b.fail != nil && b.fail(evt) {
			return errors.Errorf("broker rejected %s", evt.Topic)
		}
	}
	b.queue = append(b.queue, evts...)
	return nil
}

// failOnce rejects the first publish to topic whose envelope matches; a nil
// match accepts any envelope
func failOnce(t *testing.T, topic events.Topic, match func(env *saga.Envelope) bool) func(evt *events.Event) bool {
	failed := false
	return func(evt *events.Event) bool {
		if failed || evt.Topic != topic {
			return false
		}
		env, err := saga.EnvelopeFromEvent(evt)
		require.NoError(t, err)
		if match != nil && !match(env) {
			return false
		}
		failed = true
		return true
	}
}

func (b *memoryBus) drain(t *testing.T, ctx context.Context, orchestrator *Orchestrator, executors map[events.Topic]*saga.Executor) {
	t.Helper()
	if b.seen == nil {
		b.seen = map[events.Topic]int{}
	}
	for len(b.queue) > 0 {
		evt := b.queue[0]
		b.queue = b.queue[1:]
		b.seen[evt.Topic]++

		var err error
		switch evt.Topic {
		case events.TopicOrchestrator:
			env, decodeErr := saga.EnvelopeFromEvent(evt)
			require.NoError(t, decodeErr)
			err = orchestrator.ContinueSaga(ctx, env)
		case events.TopicNotifyEnding:
			env, decodeErr := saga.EnvelopeFromEvent(evt)
			require.NoError(t, decodeErr)
			b.ended = append(b.ended, env)
		default:
			executor, ok := executors[evt.Topic]
			require.True(t, ok, "no executor for %s", evt.Topic)
			err = executor.Handle(ctx, evt)
		}

		if err != nil {
			b.redeliveries++
			require.Less(t, b.redeliveries, 10, "event %s keeps failing: %v", evt.Topic, err)
			b.queue = append([]*events.Event{evt}, b.queue...)
		}
	}
}

// ledgerParticipant keeps one local record per order and fails on demand
type ledgerParticipant struct {
	source      saga.Source
	action      string
	fail        bool
	records     map[string]string
	compensated int
}

func newLedger(source saga.Source, action string) *ledgerParticipant {
	return &ledgerParticipant{source: source, action: action, records: map[string]string{}}
}

func (p *ledgerParticipant) Source() saga.Source { return p.source }
func (p *ledgerParticipant) Action() string      { return p.action }

func (p *ledgerParticipant) ProcessForward(ctx context.Context, env *saga.Envelope) error {
	key := env.OrderID + "/" + env.TransactionID
	if _, ok := p.records[key]; ok {
		return saga.ErrDuplicateTransaction("already processed %s", key)
	}
	if p.fail {
		return saga.ErrInvariantViolation("%s rejected", p.action)
	}
	p.records[key] = "DONE"
	return nil
}

func (p *ledgerParticipant) ProcessCompensation(ctx context.Context, env *saga.Envelope) (saga.CompensationOutcome, error) {
	key := env.OrderID + "/" + env.TransactionID
	if p.records[key] != "DONE" {
		return saga.CompensationSkipped, nil
	}
	p.records[key] = "UNDONE"
	p.compensated++
	return saga.CompensationApplied, nil
}

type sagaHarness struct {
	bus          *memoryBus
	store        *memorySnapshots
	orchestrator *Orchestrator
	validation   *ledgerParticipant
	payment      *ledgerParticipant
	inventory    *ledgerParticipant
	executors    map[events.Topic]*saga.Executor
}

func newSagaHarness() *sagaHarness {
	h := &sagaHarness{
		bus:        &memoryBus{},
		store:      newMemorySnapshots(),
		validation: newLedger(saga.SourceProductValidation, "product validation"),
		payment:    newLedger(saga.SourcePayment, "payment"),
		inventory:  newLedger(saga.SourceInventory, "inventory"),
	}
	logger := zap.NewNop()
	// a failed publish goes straight back to the bus for redelivery
	noRetry := saga.WithPublishBackOff(func() backoff.BackOff { return &backoff.StopBackOff{} })
	h.orchestrator = NewOrchestrator(h.store, h.bus, logger)
	h.executors = map[events.Topic]*saga.Executor{
		events.TopicProductValidation: saga.NewExecutor(h.validation, h.bus, logger, noRetry),
		events.TopicPayment:           saga.NewExecutor(h.payment, h.bus, logger, noRetry),
		events.TopicInventory:         saga.NewExecutor(h.inventory, h.bus, logger, noRetry),
	}
	return h
}

func (h *sagaHarness) run(t *testing.T) *saga.Envelope {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.orchestrator.StartSaga(ctx, newEnvelope()))
	h.bus.drain(t, ctx, h.orchestrator, h.executors)
	require.Len(t, h.bus.ended, 1)
	return h.bus.ended[0]
}

func historySources(env *saga.Envelope) []saga.Source {
	sources := make([]saga.Source, 0, len(env.History))
	for _, entry := range env.History {
		sources = append(sources, entry.Source)
	}
	return sources
}

func TestSagaFlow_HappyPath(t *testing.T) {
	h := newSagaHarness()
	final := h.run(t)

	assert.Equal(t, saga.SourceInventory, final.Source)
	assert.Equal(t, saga.StatusSuccess, final.Status)
	assert.Equal(t, []saga.Source{
		saga.SourceOrchestrator,
		saga.SourceProductValidation, saga.SourceOrchestrator,
		saga.SourcePayment, saga.SourceOrchestrator,
		saga.SourceInventory, saga.SourceOrchestrator,
	}, historySources(final))
	assert.Equal(t, "Saga finished successfully", final.History[len(final.History)-1].Message)

	assert.Zero(t, h.validation.compensated)
	assert.Zero(t, h.payment.compensated)
	assert.Zero(t, h.inventory.compensated)
}

func TestSagaFlow_CompensatesInReverseOrder(t *testing.T) {
	h := newSagaHarness()
	h.inventory.fail = true
	final := h.run(t)

	assert.Equal(t, saga.SourceProductValidation, final.Source)
	assert.Equal(t, saga.StatusRollback, final.Status)
	assert.Equal(t, []saga.Source{
		saga.SourceOrchestrator,
		saga.SourceProductValidation, saga.SourceOrchestrator,
		saga.SourcePayment, saga.SourceOrchestrator,
		saga.SourceInventory, saga.SourceOrchestrator,
		saga.SourcePayment, saga.SourceOrchestrator,
		saga.SourceProductValidation, saga.SourceOrchestrator,
	}, historySources(final))

	assert.Equal(t, "Fail to execute inventory: inventory rejected", final.History[5].Message)
	assert.Equal(t, "Rollback executed on payment", final.History[7].Message)
	assert.Equal(t, "Rollback executed on product validation", final.History[9].Message)
	assert.Equal(t, "Saga finished with rollback", final.History[10].Message)

	// every stage that committed was undone exactly once
	assert.Equal(t, 1, h.validation.compensated)
	assert.Equal(t, 1, h.payment.compensated)
	assert.Zero(t, h.inventory.compensated)
	assert.Equal(t, 1, h.bus.seen[events.TopicInventory], "inventory is never asked to compensate")
}

func TestSagaFlow_FirstStageFailureAborts(t *testing.T) {
	h := newSagaHarness()
	h.validation.fail = true
	final := h.run(t)

	assert.Equal(t, saga.SourceProductValidation, final.Source)
	assert.Equal(t, saga.StatusFail, final.Status)
	assert.Len(t, final.History, 3)
	assert.Equal(t, "Saga aborted on PRODUCT_VALIDATION", final.History[2].Message)
	assert.Zero(t, h.bus.seen[events.TopicPayment])
}

func TestSagaFlow_RedeliveredResultIsDropped(t *testing.T) {
	h := newSagaHarness()
	ctx := context.Background()
	require.NoError(t, h.orchestrator.StartSaga(ctx, newEnvelope()))

	// deliver validation's hop, capture its result and let it be routed
	validationHop := h.bus.queue[0]
	h.bus.queue = h.bus.queue[1:]
	require.NoError(t, h.executors[events.TopicProductValidation].Handle(ctx, validationHop))
	result := h.bus.queue[0]
	h.bus.drain(t, ctx, h.orchestrator, h.executors)
	require.Len(t, h.bus.ended, 1)

	paymentHops := h.bus.seen[events.TopicPayment]
	redelivered, err := saga.EnvelopeFromEvent(result)
	require.NoError(t, err)
	require.NoError(t, h.orchestrator.ContinueSaga(ctx, redelivered))

	assert.Empty(t, h.bus.queue)
	assert.Equal(t, paymentHops, h.bus.seen[events.TopicPayment])
}

func TestSagaFlow_ReplayIsAbsorbedByParticipants(t *testing.T) {
	h := newSagaHarness()
	h.payment.fail = true
	final := h.run(t)
	require.Equal(t, saga.StatusRollback, final.Status)

	res, err := h.orchestrator.Replay(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, string(saga.ActionCompensated), res.Action)
	assert.Equal(t, events.TopicNotifyEnding.String(), res.Topic)
	assert.Equal(t, 1, h.validation.compensated)
}

func TestSagaFlow_ConvergesAfterPublishFailure(t *testing.T) {
	happy := []saga.Source{
		saga.SourceOrchestrator,
		saga.SourceProductValidation, saga.SourceOrchestrator,
		saga.SourcePayment, saga.SourceOrchestrator,
		saga.SourceInventory, saga.SourceOrchestrator,
	}
	compensated := append(append([]saga.Source{}, happy...),
		saga.SourcePayment, saga.SourceOrchestrator,
		saga.SourceProductValidation, saga.SourceOrchestrator,
	)
	paymentWith := func(status saga.Status) func(env *saga.Envelope) bool {
		return func(env *saga.Envelope) bool {
			return env.Source == saga.SourcePayment && env.Status == status
		}
	}

	tests := []struct {
		name               string
		topic              events.Topic
		match              func(env *saga.Envelope) bool
		inventoryFails     bool
		expectedStatus     saga.Status
		expectedSources    []saga.Source
		paymentCompensated int
	}{
		{
			name:            "orchestrator dispatch to payment",
			topic:           events.TopicPayment,
			expectedStatus:  saga.StatusSuccess,
			expectedSources: happy,
		},
		{
			name:            "payment result",
			topic:           events.TopicOrchestrator,
			match:           paymentWith(saga.StatusSuccess),
			expectedStatus:  saga.StatusSuccess,
			expectedSources: happy,
		},
		{
			name:            "ending notification",
			topic:           events.TopicNotifyEnding,
			expectedStatus:  saga.StatusSuccess,
			expectedSources: happy,
		},
		{
			name:  "compensation request to payment",
			topic: events.TopicPayment,
			match: func(env *saga.Envelope) bool {
				return env.Status == saga.StatusRollbackPending
			},
			inventoryFails:     true,
			expectedStatus:     saga.StatusRollback,
			expectedSources:    compensated,
			paymentCompensated: 1,
		},
		{
			name:               "payment rollback result",
			topic:              events.TopicOrchestrator,
			match:              paymentWith(saga.StatusRollback),
			inventoryFails:     true,
			expectedStatus:     saga.StatusRollback,
			expectedSources:    compensated,
			paymentCompensated: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newSagaHarness()
			h.inventory.fail = tt.inventoryFails
			h.bus.fail = failOnce(t, tt.topic, tt.match)

			final := h.run(t)

			assert.Equal(t, 1, h.bus.redeliveries)
			assert.Equal(t, tt.expectedStatus, final.Status)
			assert.Equal(t, tt.expectedSources, historySources(final))
			assert.Equal(t, tt.paymentCompensated, h.payment.compensated)
			assert.Zero(t, h.inventory.compensated)
		})
	}
}

func TestSagaFlow_StartRedeliveredAfterPublishFailure(t *testing.T) {
	h := newSagaHarness()
	h.bus.fail = failOnce(t, events.TopicProductValidation, nil)
	ctx := context.Background()

	require.Error(t, h.orchestrator.StartSaga(ctx, newEnvelope()))
	require.Empty(t, h.bus.queue)

	require.NoError(t, h.orchestrator.StartSaga(ctx, newEnvelope()))
	h.bus.drain(t, ctx, h.orchestrator, h.executors)

	require.Len(t, h.bus.ended, 1)
	assert.Equal(t, saga.StatusSuccess, h.bus.ended[0].Status)
	assert.Len(t, h.bus.ended[0].History, 7)
	assert.Equal(t, 1, h.bus.seen[events.TopicProductValidation])
}
