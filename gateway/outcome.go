package gateway

// Outcome describes the gateway's decision for one derived business key.
type Outcome int

const (
	OutcomeStarted Outcome = iota + 1
	OutcomeSkipped
)

func (v Outcome) String() string {
	switch v {
	case OutcomeStarted:
		return "STARTED"
	case OutcomeSkipped:
		return "SKIPPED"
	default:
		return ""
	}
}

// StartResult is the per-business-key outcome of handling one event. A start
// failure is reported in Err and does not affect sibling results.
type StartResult struct {
	BusinessKey string
	Outcome     Outcome
	Err         error
}
