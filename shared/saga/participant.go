package saga

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/logging"
	"github.com/draftea/order-saga/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CompensationOutcome tells an applied compensation from one with nothing to undo
type CompensationOutcome int

const (
	CompensationApplied CompensationOutcome = iota + 1
	CompensationSkipped
)

func (o CompensationOutcome) String() string {
	switch o {
	case CompensationApplied:
		return "applied"
	case CompensationSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Participant is one saga stage. Implementations own their local record,
// keyed by (orderId, transactionId), and may enrich the envelope payload but
// never its identity.
type Participant interface {
	Source() Source
	// Action is a noun phrase used in history messages, e.g. "payment"
	Action() string
	// ProcessForward runs the local action. A *Error result is a business
	// rejection; context errors abort the hop.
	ProcessForward(ctx context.Context, env *Envelope) error
	// ProcessCompensation undoes the local action. A missing local record is
	// CompensationSkipped, not an error.
	ProcessCompensation(ctx context.Context, env *Envelope) (CompensationOutcome, error)
}

// Executor runs a Participant against inbound envelopes and publishes exactly
// one result per hop to the orchestrator topic. Once the local action has
// run, only the publish is retried: a result that could not be published is
// kept and republished when the same hop is redelivered.
type Executor struct {
	participant Participant
	publisher   events.Publisher
	logger      *zap.Logger

	maxElapsed time.Duration
	newBackOff func() backoff.BackOff

	mu          sync.Mutex
	unpublished map[string]*Envelope
}

type ExecutorOption func(*Executor)

// WithPublishRetry bounds how long a result publish is retried before the
// hop is handed back for redelivery
func WithPublishRetry(maxElapsed time.Duration) ExecutorOption {
	return func(x *Executor) {
		x.maxElapsed = maxElapsed
	}
}

// WithPublishBackOff replaces the exponential publish backoff
func WithPublishBackOff(newBackOff func() backoff.BackOff) ExecutorOption {
	return func(x *Executor) {
		x.newBackOff = newBackOff
	}
}

// NewExecutor creates an executor for participant
func NewExecutor(participant Participant, publisher events.Publisher, logger *zap.Logger, opts ...ExecutorOption) *Executor {
	x := &Executor{
		participant: participant,
		publisher:   publisher,
		logger:      logger.With(zap.String("participant", participant.Source().String())),
		maxElapsed:  30 * time.Second,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
		unpublished: map[string]*Envelope{},
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// HandlerID identifies the executor in subscriber logs
func (x *Executor) HandlerID() string {
	return strings.ToLower(strings.ReplaceAll(x.participant.Source().String(), "_", "-")) + "-executor"
}

// Handle implements events.EventHandler. Malformed envelopes are dropped:
// redelivering them cannot succeed.
func (x *Executor) Handle(ctx context.Context, event *events.Event) error {
	env, err := EnvelopeFromEvent(event)
	if err != nil {
		x.logger.Error("dropping malformed envelope",
			zap.String("event_id", event.ID.String()),
			zap.Error(err),
		)
		return nil
	}
	return x.Process(telemetry.ExtractTrace(ctx, event.Metadata), env)
}

// Process dispatches env on its status. A returned error means nothing was
// published and the message should be redelivered; a result computed before
// the failure is published on redelivery instead of running the hop again.
func (x *Executor) Process(ctx context.Context, env *Envelope) error {
	source := x.participant.Source()
	start := time.Now()

	ctx, span := telemetry.StartSpan(ctx, "saga."+strings.ToLower(source.String()),
		trace.WithAttributes(telemetry.SagaAttributes(env.OrderID, env.TransactionID, source.String(), env.Status.String())...),
	)
	defer span.End()

	phase := "forward"
	outcome := "error"
	defer func() {
		telemetry.RecordHop(ctx, source.String(), phase, outcome, time.Since(start))
	}()

	key := hopKey(env)
	if result, ok := x.pendingResult(key); ok {
		if err := x.publish(ctx, key, result); err != nil {
			span.RecordError(err)
			return err
		}
		outcome = "republished"
		x.logger.Info("saga hop result republished",
			logging.Saga(result.OrderID, result.TransactionID, result.Source.String(), result.Status.String())...,
		)
		return nil
	}

	var err error
	switch env.Status {
	case StatusSuccess:
		outcome, err = x.forward(ctx, key, env)
	case StatusRollbackPending:
		phase = "compensation"
		outcome, err = x.compensate(ctx, key, env)
	default:
		outcome = "ignored"
		x.logger.Warn("ignoring envelope with unexpected status",
			logging.Saga(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String())...,
		)
		return nil
	}

	if err != nil {
		span.RecordError(err)
		return err
	}

	x.logger.Info("saga hop processed",
		append(logging.Saga(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String()),
			zap.String("phase", phase),
			zap.String("outcome", outcome),
		)...,
	)
	return nil
}

func (x *Executor) forward(ctx context.Context, key string, env *Envelope) (string, error) {
	source := x.participant.Source()
	action := x.participant.Action()

	err := x.participant.ProcessForward(ctx, env)
	if err != nil && IsAbort(err) {
		return "aborted", errors.Wrapf(err, "%s aborted", action)
	}

	outcome := "success"
	if err == nil {
		env.Status = StatusSuccess
		env.Source = source
		env.AddHistory(source, StatusSuccess, capitalize(action)+" succeeded")
	} else {
		outcome = "fail"
		env.Status = StatusFail
		env.Source = source
		env.AddHistory(source, StatusFail, fmt.Sprintf("Fail to execute %s: %s", action, err.Error()))
		x.logger.Warn("saga hop rejected",
			append(logging.Saga(env.OrderID, env.TransactionID, source.String(), StatusFail.String()), zap.Error(err))...,
		)
	}

	if err := x.publish(ctx, key, env); err != nil {
		return "error", err
	}
	return outcome, nil
}

func (x *Executor) compensate(ctx context.Context, key string, env *Envelope) (string, error) {
	source := x.participant.Source()
	action := x.participant.Action()

	result, err := x.participant.ProcessCompensation(ctx, env)
	if err != nil && !IsBusiness(err) {
		// store or context failure: leave the message for redelivery
		return "error", errors.Wrapf(err, "%s compensation failed", action)
	}

	outcome := result.String()
	env.Source = source
	switch {
	case err != nil:
		outcome = "fail"
		env.Status = StatusFail
		env.AddHistory(source, StatusFail, fmt.Sprintf("Rollback failed on %s: %s", action, err.Error()))
	case result == CompensationSkipped:
		env.Status = StatusRollback
		env.AddHistory(source, StatusRollback, fmt.Sprintf("Rollback skipped on %s: nothing to compensate", action))
	default:
		env.Status = StatusRollback
		env.AddHistory(source, StatusRollback, "Rollback executed on "+action)
	}

	if err := x.publish(ctx, key, env); err != nil {
		return "error", err
	}
	return outcome, nil
}

// publish sends the result of hop key, retrying the broker call only. When
// the retry budget runs out the result is kept for the redelivered hop.
func (x *Executor) publish(ctx context.Context, key string, env *Envelope) error {
	evt, err := env.ToEvent(events.TopicOrchestrator)
	if err != nil {
		return errors.Wrap(err, "failed to build orchestrator event")
	}
	telemetry.InjectTrace(ctx, evt.Metadata)

	_, err = backoff.Retry(ctx,
		func() (struct{}, error) {
			return struct{}{}, x.publisher.Publish(ctx, evt)
		},
		backoff.WithBackOff(x.newBackOff()),
		backoff.WithMaxElapsedTime(x.maxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			x.logger.Warn("retrying saga hop result publish",
				append(logging.Saga(env.OrderID, env.TransactionID, env.Source.String(), env.Status.String()),
					zap.Duration("next_attempt", next),
					zap.Error(err),
				)...,
			)
		}),
	)

	x.mu.Lock()
	defer x.mu.Unlock()
	if err != nil {
		x.unpublished[key] = env.Clone()
		return errors.Wrap(err, "failed to publish to orchestrator")
	}
	delete(x.unpublished, key)
	return nil
}

func (x *Executor) pendingResult(key string) (*Envelope, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	result, ok := x.unpublished[key]
	if !ok {
		return nil, false
	}
	return result.Clone(), true
}

// hopKey identifies an inbound hop: the orchestrator dispatches each
// (transaction, status, history length) at most once
func hopKey(env *Envelope) string {
	return env.TransactionID + "/" + env.Status.String() + "/" + strconv.Itoa(len(env.History))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
