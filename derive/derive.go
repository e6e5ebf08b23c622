// Package derive maps inbound domain event payloads into process variable
// maps and business keys.
//
// Derivation functions are total: a well-formed payload never produces an
// error. Missing optional fields degrade to empty strings and unknown source
// enum values default routing flags to false, so that a workflow always
// starts with a complete variable map. Callers never skip derivation - the
// gateway skips the process start instead.
package derive

import (
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/refdata"
)

// Process definition keys. Business keys are persisted by the engine under
// these namespaces.
const (
	ProcessCourtApplication   = "courtApplication"
	ProcessCrownCourtTransfer = "crownCourtTransfer"
	ProcessDocumentReview     = "documentReview"
	ProcessReferCourtHearing  = "referCourtHearing"
)

// Task type names, as registered in the reference data directory.
const (
	TaskListHearing       = "listHearing"
	TaskReferHearing      = "referHearing"
	TaskReviewApplication = "reviewApplication"
	TaskReviewDocument    = "reviewDocument"
	TaskReviewTransfer    = "reviewTransfer"
)

// Task types each process creates.
var (
	CourtApplicationTaskTypes   = []string{TaskReviewApplication}
	CrownCourtTransferTaskTypes = []string{TaskReviewTransfer, TaskListHearing}
	DocumentReviewTaskTypes     = []string{TaskReviewDocument}
	ReferCourtHearingTaskTypes  = []string{TaskReferHearing}
)

// A ResolveFunc resolves reference data entries for a set of task types
// against a natural ID. The gateway binds it to a [refdata.Resolver], a
// request context and the event's as-of time.
type ResolveFunc func(taskTypeNames []string, naturalId string) refdata.EntrySet

// Derivation is the derived input of one workflow run: a business key within
// the process definition namespace and a complete variable map.
type Derivation struct {
	ProcessDefinitionKey string
	BusinessKey          string
	Variables            orchestration.Variables

	// Idle determines that no routing flag qualifies. Depending on the
	// process start policy, the gateway either skips the start or lets the
	// workflow run and self-terminate.
	Idle bool
}
