package application

import (
	"context"
	"fmt"
	"time"

	"github.com/draftea/order-saga/orchestrator-service/domain"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/logging"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Orchestrator drives every saga through the pipeline. Each routing step
// appends one history entry, persists a snapshot and only then publishes; a
// failed publish is recovered when the hop is redelivered, or by Replay.
type Orchestrator struct {
	store     domain.SnapshotStore
	publisher events.Publisher
	router    *saga.Router
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrchestrator creates a new orchestrator over the default pipeline
func NewOrchestrator(store domain.SnapshotStore, publisher events.Publisher, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		publisher: publisher,
		router:    saga.DefaultRouter(),
		logger:    logger,
		now:       time.Now,
	}
}

// ReplayResponse describes a republished hop
type ReplayResponse struct {
	TransactionID string `json:"transactionId"`
	OrderID       string `json:"orderId"`
	Action        string `json:"action"`
	Topic         string `json:"topic"`
	Status        string `json:"status"`
}

// StartSaga routes a new saga to the first stage. A second start for a known
// transaction is dropped unless the saga has not moved past its first
// dispatch, which is then published again. An order without products is
// aborted right away.
func (o *Orchestrator) StartSaga(ctx context.Context, env *saga.Envelope) error {
	ctx, span := telemetry.StartSpan(ctx, "orchestrator.start_saga",
		trace.WithAttributes(telemetry.SagaAttributes(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String())...),
	)
	defer span.End()

	latest, err := o.store.Latest(ctx, env.TransactionID)
	switch {
	case err == nil && latest.Version == 1:
		_, err := o.redispatch(ctx, latest)
		return err
	case err == nil:
		o.drop(ctx, env, "saga already started")
		return nil
	case !errors.Is(err, saga.ErrKindNotFound):
		return errors.Wrap(err, "failed to load saga snapshot")
	}

	env.Source = saga.SourceOrchestrator
	env.Status = saga.StatusSuccess
	if len(env.Payload.Products) == 0 {
		env.Status = saga.StatusFail
	}

	telemetry.RecordSagaStarted(ctx)
	o.logger.Info("saga started", logging.Saga(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String())...)

	return o.route(ctx, env, 0)
}

// ContinueSaga routes the result of a participant hop. A redelivered result
// that produced the latest snapshot gets that snapshot's dispatch published
// again; any other result that does not answer the last dispatch is dropped.
func (o *Orchestrator) ContinueSaga(ctx context.Context, env *saga.Envelope) error {
	ctx, span := telemetry.StartSpan(ctx, "orchestrator.continue_saga",
		trace.WithAttributes(telemetry.SagaAttributes(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String())...),
	)
	defer span.End()

	latest, err := o.store.Latest(ctx, env.TransactionID)
	if err != nil {
		if errors.Is(err, saga.ErrKindNotFound) {
			o.drop(ctx, env, "unknown saga")
			return nil
		}
		return errors.Wrap(err, "failed to load saga snapshot")
	}

	if routedFrom(latest, env) {
		_, err := o.redispatch(ctx, latest)
		return err
	}

	if reason := staleReason(latest, env); reason != "" {
		o.drop(ctx, env, reason)
		return nil
	}

	return o.route(ctx, env, latest.Version)
}

// Replay republishes the last routing decision of a saga. Routing is a pure
// function of (source, status), so the same hop is sent again; participants
// absorb the duplicate through their idempotency guard.
func (o *Orchestrator) Replay(ctx context.Context, transactionID string) (*ReplayResponse, error) {
	if transactionID == "" {
		return nil, saga.ErrInvalid("transactionId must be informed")
	}

	latest, err := o.store.Latest(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	decision, err := o.redispatch(ctx, latest)
	if err != nil {
		return nil, err
	}

	return &ReplayResponse{
		TransactionID: transactionID,
		OrderID:       latest.Envelope.OrderID,
		Action:        string(decision.Action),
		Topic:         decision.Topic.String(),
		Status:        decision.Status.String(),
	}, nil
}

// redispatch publishes the hop recorded by latest again, without touching the
// stream
func (o *Orchestrator) redispatch(ctx context.Context, latest *domain.Snapshot) (saga.Decision, error) {
	env := latest.Envelope
	decision, err := o.router.Route(env.Source, env.Status)
	if err != nil {
		return saga.Decision{}, err
	}

	if err := o.dispatch(ctx, env, decision); err != nil {
		return saga.Decision{}, err
	}

	telemetry.RecordHopRedispatched(ctx)
	o.logger.Info("saga hop redispatched",
		append(logging.Saga(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String()),
			zap.String("topic", decision.Topic.String()),
			zap.Int("version", latest.Version),
		)...,
	)
	return decision, nil
}

// routedFrom reports whether env is the result whose routing latest recorded
func routedFrom(latest *domain.Snapshot, env *saga.Envelope) bool {
	return env.Source == latest.Envelope.Source &&
		env.Status == latest.Envelope.Status &&
		len(env.History)+1 == latest.HistoryLen()
}

func staleReason(latest *domain.Snapshot, env *saga.Envelope) string {
	switch {
	case latest.Terminal:
		return "saga already finished"
	case env.Source != latest.Target:
		return fmt.Sprintf("hop from %s while waiting for %s", env.Source, latest.Target)
	case len(env.History) != latest.HistoryLen()+1:
		return "hop does not answer the last dispatch"
	}
	return ""
}

func (o *Orchestrator) route(ctx context.Context, env *saga.Envelope, version int) error {
	decision, err := o.router.Route(env.Source, env.Status)
	if err != nil {
		// nothing sensible to route; redelivery would not change that
		o.logger.Error("unroutable envelope",
			append(logging.Saga(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String()), zap.Error(err))...,
		)
		return nil
	}

	env.AddHistory(saga.SourceOrchestrator, decision.Status, historyMessage(env, decision))

	snapshot := &domain.Snapshot{
		Envelope:  env,
		Target:    decision.Target,
		Topic:     decision.Topic,
		Terminal:  decision.Terminal(),
		CreatedAt: o.now(),
	}
	if err := o.store.Save(ctx, snapshot, version); err != nil {
		if errors.Is(err, domain.ErrConcurrentHop) {
			o.drop(ctx, env, "routed concurrently")
			return nil
		}
		return errors.Wrap(err, "failed to save saga snapshot")
	}

	if err := o.dispatch(ctx, env, decision); err != nil {
		return err
	}

	if decision.Terminal() {
		telemetry.RecordSagaFinished(ctx, string(decision.Action))
	}

	o.logger.Info("saga routed",
		append(logging.Saga(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String()),
			zap.String("action", string(decision.Action)),
			zap.String("topic", decision.Topic.String()),
		)...,
	)
	return nil
}

// dispatch publishes a copy of env addressed per decision. Non-terminal hops
// go out as the orchestrator with the decision status; terminal ones keep the
// outcome that ended the saga.
func (o *Orchestrator) dispatch(ctx context.Context, env *saga.Envelope, decision saga.Decision) error {
	routed := env.Clone()
	if !decision.Terminal() {
		routed.Source = saga.SourceOrchestrator
		routed.Status = decision.Status
	}

	evt, err := routed.ToEvent(decision.Topic)
	if err != nil {
		return errors.Wrap(err, "failed to build routed event")
	}
	telemetry.InjectTrace(ctx, evt.Metadata)
	if err := o.publisher.Publish(ctx, evt); err != nil {
		return errors.Wrapf(err, "failed to publish to %s", decision.Topic)
	}
	return nil
}

func (o *Orchestrator) drop(ctx context.Context, env *saga.Envelope, reason string) {
	telemetry.RecordHopDropped(ctx, reason)
	o.logger.Warn("dropping saga hop",
		append(logging.Saga(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String()),
			zap.String("reason", reason),
		)...,
	)
}

func historyMessage(env *saga.Envelope, decision saga.Decision) string {
	switch decision.Action {
	case saga.ActionForward:
		if env.Source == saga.SourceOrchestrator {
			return "Saga started, sent to " + decision.Target.String()
		}
		return fmt.Sprintf("%s succeeded, sent to %s", env.Source, decision.Target)
	case saga.ActionCompensate:
		return fmt.Sprintf("%s reported %s, compensating %s", env.Source, env.Status, decision.Target)
	case saga.ActionComplete:
		return "Saga finished successfully"
	case saga.ActionCompensated:
		return "Saga finished with rollback"
	default:
		return fmt.Sprintf("Saga aborted on %s", env.Source)
	}
}
