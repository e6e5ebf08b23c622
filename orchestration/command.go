package orchestration

// StartProcessInstanceCmd provides data for starting a workflow run.
type StartProcessInstanceCmd struct {
	// Key of the process definition to start an instance of.
	ProcessDefinitionKey string `json:"processDefinitionKey" validate:"required"`
	// Key, used to correlate the run with a business entity.
	// Derivation of the key is deterministic, so that a redelivered event targets the same key.
	BusinessKey string `json:"businessKey" validate:"required"`
	// Variables to set at process instance scope. Must carry the audit pair.
	Variables Variables `json:"variables" validate:"required"`
	// ID of the identity that starts the run.
	StartedBy string `json:"startedBy" validate:"required"`
}

// RecordTaskCmd is the administrative command produced for every recorded
// task lifecycle transition. It carries the task ID, the lifecycle event and
// system-identity attribution.
type RecordTaskCmd struct {
	TaskId     string            `json:"taskId" validate:"required"`
	EventType  string            `json:"eventType" validate:"required"` // e.g. CREATED, ASSIGNED, COMPLETED
	At         string            `json:"at" validate:"required"`        // ISO 8601 timestamp of the transition.
	Details    map[string]string `json:"details,omitempty"`             // Variable subset relevant to the event.
	RecordedBy string            `json:"recordedBy" validate:"required"`
}
