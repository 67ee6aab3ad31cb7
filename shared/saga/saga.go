// Package saga holds the orchestrated saga protocol shared by every service:
// the status vocabulary, the envelope passed between hops, the routing table
// the orchestrator follows and the executor participants run their local
// actions through.
package saga

import (
	"github.com/draftea/order-saga/shared/events"
)

// Status is the saga status carried by an envelope
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusSuccess         Status = "SUCCESS"
	StatusFail            Status = "FAIL"
	StatusRollbackPending Status = "ROLLBACK_PENDING"
	StatusRollback        Status = "ROLLBACK"
)

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFail, StatusRollbackPending, StatusRollback:
		return true
	}
	return false
}

// Source identifies who last acted on an envelope
type Source string

const (
	SourceOrchestrator      Source = "ORCHESTRATOR"
	SourceProductValidation Source = "PRODUCT_VALIDATION"
	SourcePayment           Source = "PAYMENT"
	SourceInventory         Source = "INVENTORY"
)

func (s Source) String() string {
	return string(s)
}

// Valid reports whether s is one of the known sources
func (s Source) Valid() bool {
	return s == SourceOrchestrator || pipeline.index(s) >= 0
}

// Pipeline is the ordered list of participant stages
type Pipeline []Source

var pipeline = Pipeline{
	SourceProductValidation,
	SourcePayment,
	SourceInventory,
}

// DefaultPipeline returns a copy of the order saga stages
func DefaultPipeline() Pipeline {
	p := make(Pipeline, len(pipeline))
	copy(p, pipeline)
	return p
}

func (p Pipeline) index(s Source) int {
	for i, stage := range p {
		if stage == s {
			return i
		}
	}
	return -1
}

// First returns the first stage
func (p Pipeline) First() Source {
	return p[0]
}

// Last returns the last stage
func (p Pipeline) Last() Source {
	return p[len(p)-1]
}

// Next returns the stage after s, false when s is last or unknown
func (p Pipeline) Next(s Source) (Source, bool) {
	i := p.index(s)
	if i < 0 || i == len(p)-1 {
		return "", false
	}
	return p[i+1], true
}

// Previous returns the stage before s, false when s is first or unknown
func (p Pipeline) Previous(s Source) (Source, bool) {
	i := p.index(s)
	if i <= 0 {
		return "", false
	}
	return p[i-1], true
}

// Contains reports whether s is a stage of p
func (p Pipeline) Contains(s Source) bool {
	return p.index(s) >= 0
}

var inboundTopics = map[Source]events.Topic{
	SourceProductValidation: events.TopicProductValidation,
	SourcePayment:           events.TopicPayment,
	SourceInventory:         events.TopicInventory,
}

// InboundTopic returns the topic a participant consumes
func InboundTopic(s Source) (events.Topic, bool) {
	t, ok := inboundTopics[s]
	return t, ok
}
