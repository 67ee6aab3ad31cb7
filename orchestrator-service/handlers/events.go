package handlers

import (
	"context"

	"github.com/draftea/order-saga/orchestrator-service/application"
	"github.com/draftea/order-saga/shared/events"
	"github.com/draftea/order-saga/shared/saga"
	"github.com/draftea/order-saga/shared/telemetry"
	"go.uber.org/zap"
)

// SagaEventHandlers feeds saga starts and participant results to the orchestrator
type SagaEventHandlers struct {
	orchestrator *application.Orchestrator
	logger       *zap.Logger
}

// NewSagaEventHandlers creates new orchestrator event handlers
func NewSagaEventHandlers(orchestrator *application.Orchestrator, logger *zap.Logger) *SagaEventHandlers {
	return &SagaEventHandlers{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Topics the orchestrator consumes
func (h *SagaEventHandlers) Topics() []events.Topic {
	return []events.Topic{events.TopicStartSaga, events.TopicOrchestrator}
}

// Handle implements the events.EventHandler interface
func (h *SagaEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	ctx = telemetry.ExtractTrace(ctx, event.Metadata)
	switch event.Topic {
	case events.TopicStartSaga:
		return h.HandleStartSaga(ctx, event)
	case events.TopicOrchestrator:
		return h.HandleHopResult(ctx, event)
	default:
		// Unknown topic, ignore
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *SagaEventHandlers) HandlerID() string {
	return "orchestrator-service-event-handler"
}

// HandleStartSaga handles envelopes published by the order service
func (h *SagaEventHandlers) HandleStartSaga(ctx context.Context, event *events.Event) error {
	env, ok := h.decode(event)
	if !ok {
		return nil
	}
	return h.orchestrator.StartSaga(ctx, env)
}

// HandleHopResult handles the result of one participant hop
func (h *SagaEventHandlers) HandleHopResult(ctx context.Context, event *events.Event) error {
	env, ok := h.decode(event)
	if !ok {
		return nil
	}
	return h.orchestrator.ContinueSaga(ctx, env)
}

func (h *SagaEventHandlers) decode(event *events.Event) (*saga.Envelope, bool) {
	env, err := saga.EnvelopeFromEvent(event)
	if err != nil {
		// redelivery cannot fix a malformed envelope
		h.logger.Error("dropping malformed envelope",
			zap.String("event_id", event.ID.String()),
			zap.String("topic", event.Topic.String()),
			zap.Error(err),
		)
		return nil, false
	}
	return env, true
}
