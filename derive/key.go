package derive

import "github.com/google/uuid"

// Namespace of name-based business key UUIDs. Business keys are persisted
// externally by the engine - the namespace must never change without a
// migration plan.
var businessKeyNamespace = uuid.MustParse("8c2f9a47-1b5e-5d20-9c66-3f8ab2e40c11")

// CompositeBusinessKey derives the business key of a per-case workflow run
// from a multi-entity event: a name-based (version 5 style) UUID of the
// hearing ID concatenated with the case ID, in that fixed order.
//
// The derivation is a pure function of its inputs: the same pair always
// yields the same key, across repeated calls and process restarts.
func CompositeBusinessKey(hearingId, caseId string) string {
	return uuid.NewSHA1(businessKeyNamespace, []byte(hearingId+caseId)).String()
}
