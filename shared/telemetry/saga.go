package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

// Saga metric names
const (
	MetricHops             = "saga_hops_total"
	MetricHopDuration      = "saga_hop_duration_seconds"
	MetricSagasStarted     = "saga_started_total"
	MetricSagasFinished    = "saga_finished_total"
	MetricHopsDropped      = "saga_hops_dropped_total"
	MetricHopsRedispatched = "saga_hops_redispatched_total"
)

// SagaAttributes are the span attributes of one saga hop. Ids stay out of
// metric attributes.
func SagaAttributes(orderID, transactionID, source, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("saga.order_id", orderID),
		attribute.String("saga.transaction_id", transactionID),
		attribute.String("saga.source", source),
		attribute.String("saga.status", status),
	}
}

// RecordHop counts one participant hop and its duration
func RecordHop(ctx context.Context, participant, phase, outcome string, elapsed time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("participant", participant),
		attribute.String("phase", phase),
		attribute.String("outcome", outcome),
	}
	RecordCounter(ctx, MetricHops, "Saga hops processed by participants", 1, attrs...)
	RecordHistogram(ctx, MetricHopDuration, "Saga hop duration", elapsed.Seconds(), attrs...)
}

func RecordSagaStarted(ctx context.Context) {
	RecordCounter(ctx, MetricSagasStarted, "Sagas started", 1)
}

// RecordSagaFinished counts a saga ending with action (COMPLETE, COMPENSATED, ABORT)
func RecordSagaFinished(ctx context.Context, action string) {
	RecordCounter(ctx, MetricSagasFinished, "Sagas finished", 1, attribute.String("action", action))
}

func RecordHopDropped(ctx context.Context, reason string) {
	RecordCounter(ctx, MetricHopsDropped, "Hops dropped by the orchestrator", 1, attribute.String("reason", reason))
}

func RecordHopRedispatched(ctx context.Context) {
	RecordCounter(ctx, MetricHopsRedispatched, "Hops published again from the latest snapshot", 1)
}

// InjectTrace writes the span context of ctx into event metadata
func InjectTrace(ctx context.Context, metadata map[string]string) {
	if metadata == nil {
		return
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(metadata))
}

// ExtractTrace continues the trace carried by event metadata
func ExtractTrace(ctx context.Context, metadata map[string]string) context.Context {
	if len(metadata) == 0 {
		return ctx
	}
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(metadata))
}
