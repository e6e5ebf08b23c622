package derive

import (
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/refdata"
)

// DeriveHearingResulted derives one crownCourtTransfer run per resulted case.
//
// A hearing resulting N cases yields N independent derivations, each keyed by
// the composite business key of the hearing and case IDs. The interpreter
// note and hasInterpreter flag are hearing-level aggregates and shared by
// every derivation; hasCustodialResults is evaluated per case.
func DeriveHearingResulted(p HearingResulted, resolve ResolveFunc, identity orchestration.Identity) []Derivation {
	hearing := p.Hearing
	jurisdiction := orchestration.MapJurisdiction(hearing.Jurisdiction)

	note := InterpreterNote(hearing.Cases)
	hasInterpreter := HasInterpreter(hearing.Cases)

	derivations := make([]Derivation, 0, len(hearing.Cases))
	for _, c := range hearing.Cases {
		entries := resolve(CrownCourtTransferTaskTypes, c.Id)
		routeEntries(entries, jurisdiction)

		hasCustodialResults := HasCustodialResults(c)

		v := orchestration.NewVariables(identity)
		v.SetString(orchestration.VarHearingId, hearing.Id)
		v.SetString(orchestration.VarHearingDate, hearing.HearingDate)
		v.SetString(orchestration.VarJurisdiction, hearing.Jurisdiction)
		v.SetString(orchestration.VarCourtCentreId, hearing.CourtCentre.Id)
		v.SetString(orchestration.VarCaseId, c.Id)
		v.SetString(orchestration.VarCaseURN, c.URN)
		v.SetString(orchestration.VarNote, note)
		v.SetString(orchestration.VarWorkQueue, entries[TaskReviewTransfer].WorkQueue)
		v.SetBool(orchestration.VarHasInterpreter, hasInterpreter)
		v.SetBool(orchestration.VarHasCustodialResults, hasCustodialResults)

		entries.Flatten(v, TaskReviewTransfer)

		derivations = append(derivations, Derivation{
			ProcessDefinitionKey: ProcessCrownCourtTransfer,
			BusinessKey:          CompositeBusinessKey(hearing.Id, c.Id),
			Variables:            v,
			Idle:                 !hasCustodialResults && !hasInterpreter,
		})
	}

	return derivations
}

// routeEntries applies jurisdiction-based work queue selection to every
// resolved entry.
func routeEntries(entries refdata.EntrySet, jurisdiction orchestration.Jurisdiction) {
	for name, entry := range entries {
		entry.WorkQueue = refdata.WorkQueueFor(jurisdiction, entry)
		entries[name] = entry
	}
}
