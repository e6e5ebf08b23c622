package orchestration

import (
	"encoding/json"
	"time"
)

// Known domain event names, one per inbound document type.
const (
	EventApplicationCreated = "public.progression.application-created"
	EventDocumentAdded      = "public.progression.document-added"
	EventHearingListed      = "public.progression.hearing-listed"
	EventHearingResulted    = "public.progression.hearing-resulted"
)

// EventTaskLifecycle is the subject the engine's task lifecycle listeners
// publish signals to.
const EventTaskLifecycle = "public.progression.task-lifecycle"

// SubjectRecordTask is the administrative command channel subject that
// record-task commands are published to.
const SubjectRecordTask = "progression.commands.record-task"

// Event is an immutable domain event envelope, consumed exactly once.
//
// The payload is kept raw: decoding is deferred to the derivation function
// selected for the event name, so that an unrecognized event never fails.
type Event struct {
	Name          string          `json:"name" validate:"required"` // Domain event name, e.g. `public.progression.hearing-resulted`.
	CorrelationId string          `json:"correlationId,omitempty"`  // Correlation metadata, propagated from the transport.
	Payload       json.RawMessage `json:"payload"`                  // JSON event payload.
	ReceivedAt    time.Time       `json:"receivedAt"`               // Point in time the event was received.
}

func (e Event) String() string {
	if e.CorrelationId == "" {
		return e.Name
	}
	return e.Name + ":" + e.CorrelationId
}
