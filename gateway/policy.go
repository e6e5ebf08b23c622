package gateway

import "github.com/hmcts/cpp-context-businessprocesses-sub000/derive"

// StartPolicy determines how the gateway treats an idle derivation, i.e. one
// whose routing flags are all false.
//
//   - [StartAlways]: the run is started anyway and the workflow immediately
//     ends itself - for processes whose audit trail must show a no-op run.
//   - [SkipWhenIdle]: the start is skipped pre-emptively - for processes that
//     provide no value when idle.
//
// The policy is fixed per process type; there is no global rule.
type StartPolicy int

const (
	StartAlways StartPolicy = iota + 1
	SkipWhenIdle
)

func (v StartPolicy) String() string {
	switch v {
	case StartAlways:
		return "START_ALWAYS"
	case SkipWhenIdle:
		return "SKIP_WHEN_IDLE"
	default:
		return ""
	}
}

var startPolicies = map[string]StartPolicy{
	derive.ProcessCourtApplication:   StartAlways,
	derive.ProcessCrownCourtTransfer: StartAlways,
	derive.ProcessDocumentReview:     SkipWhenIdle,
	derive.ProcessReferCourtHearing:  SkipWhenIdle,
}

// StartPolicyFor returns the start policy of a process type. Unknown process
// types start always, leaving the decision to the workflow itself.
func StartPolicyFor(processDefinitionKey string) StartPolicy {
	if policy, ok := startPolicies[processDefinitionKey]; ok {
		return policy
	}
	return StartAlways
}
