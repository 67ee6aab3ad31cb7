package saga

import (
	"github.com/draftea/order-saga/shared/events"
)

// Action is what the orchestrator does with an envelope
type Action string

const (
	// ActionForward hands the envelope to the next stage
	ActionForward Action = "FORWARD"
	// ActionCompensate asks an already-committed stage to undo its work
	ActionCompensate Action = "COMPENSATE"
	// ActionComplete ends the saga committed
	ActionComplete Action = "COMPLETE"
	// ActionCompensated ends the saga after the first stage rolled back
	ActionCompensated Action = "COMPENSATED"
	// ActionAbort ends the saga when the failing stage had nothing before it
	ActionAbort Action = "ABORT"
)

// Decision is the outcome of routing one (source, status) pair
type Decision struct {
	Action Action
	// Target is the stage the envelope goes to; empty when terminal
	Target Source
	Topic  events.Topic
	// Status is the status the routed envelope carries
	Status Status
}

// Terminal reports whether the saga ends with this decision
func (d Decision) Terminal() bool {
	switch d.Action {
	case ActionComplete, ActionCompensated, ActionAbort:
		return true
	}
	return false
}

// Router routes envelopes through a pipeline
type Router struct {
	pipeline Pipeline
}

// NewRouter creates a router over p
func NewRouter(p Pipeline) *Router {
	return &Router{pipeline: p}
}

// DefaultRouter routes through the order saga stages
func DefaultRouter() *Router {
	return NewRouter(DefaultPipeline())
}

// Route is a pure function of (source, status): replaying the same pair
// always yields the same decision.
func (r *Router) Route(source Source, status Status) (Decision, error) {
	if source == SourceOrchestrator {
		switch status {
		case StatusSuccess:
			return r.forward(r.pipeline.First()), nil
		case StatusFail:
			return terminal(ActionAbort, status), nil
		}
		return Decision{}, ErrInvalid("no route for %s/%s", source, status)
	}

	if !r.pipeline.Contains(source) {
		return Decision{}, ErrInvalid("unknown source %q", source)
	}

	switch status {
	case StatusSuccess:
		if next, ok := r.pipeline.Next(source); ok {
			return r.forward(next), nil
		}
		return terminal(ActionComplete, status), nil
	case StatusFail:
		if prev, ok := r.pipeline.Previous(source); ok {
			return r.compensate(prev), nil
		}
		return terminal(ActionAbort, status), nil
	case StatusRollback:
		if prev, ok := r.pipeline.Previous(source); ok {
			return r.compensate(prev), nil
		}
		return terminal(ActionCompensated, status), nil
	}

	return Decision{}, ErrInvalid("no route for %s/%s", source, status)
}

// Route routes with the default pipeline
func Route(source Source, status Status) (Decision, error) {
	return DefaultRouter().Route(source, status)
}

func (r *Router) forward(target Source) Decision {
	topic, _ := InboundTopic(target)
	return Decision{Action: ActionForward, Target: target, Topic: topic, Status: StatusSuccess}
}

func (r *Router) compensate(target Source) Decision {
	topic, _ := InboundTopic(target)
	return Decision{Action: ActionCompensate, Target: target, Topic: topic, Status: StatusRollbackPending}
}

func terminal(action Action, status Status) Decision {
	return Decision{Action: action, Topic: events.TopicNotifyEnding, Status: status}
}
