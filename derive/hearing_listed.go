package derive

import (
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
)

// Listing types that require referral to a court hearing coordinator.
var referableListingTypes = map[string]struct{}{
	"PLEA_AND_TRIAL_PREPARATION": {},
	"SENTENCE":                   {},
	"TRIAL":                      {},
}

// DeriveHearingListed derives one referCourtHearing run per listed case.
//
// referCourtHearing is true for listing types that require coordination; any
// other or unknown listing type defaults to false, which lets the gateway
// skip the start entirely (the process provides no value when idle).
func DeriveHearingListed(p HearingListed, resolve ResolveFunc, identity orchestration.Identity) []Derivation {
	hearing := p.Hearing
	jurisdiction := orchestration.MapJurisdiction(hearing.Jurisdiction)

	_, referCourtHearing := referableListingTypes[p.ListingType]

	derivations := make([]Derivation, 0, len(hearing.Cases))
	for _, c := range hearing.Cases {
		entries := resolve(ReferCourtHearingTaskTypes, c.Id)
		routeEntries(entries, jurisdiction)

		v := orchestration.NewVariables(identity)
		v.SetString(orchestration.VarHearingId, hearing.Id)
		v.SetString(orchestration.VarHearingDate, hearing.HearingDate)
		v.SetString(orchestration.VarJurisdiction, hearing.Jurisdiction)
		v.SetString(orchestration.VarCourtCentreId, hearing.CourtCentre.Id)
		v.SetString(orchestration.VarCaseId, c.Id)
		v.SetString(orchestration.VarCaseURN, c.URN)
		v.SetString(orchestration.VarWorkQueue, entries[TaskReferHearing].WorkQueue)
		v.SetBool(orchestration.VarReferCourtHearing, referCourtHearing)

		entries.Flatten(v, TaskReferHearing)

		derivations = append(derivations, Derivation{
			ProcessDefinitionKey: ProcessReferCourtHearing,
			BusinessKey:          CompositeBusinessKey(hearing.Id, c.Id),
			Variables:            v,
			Idle:                 !referCourtHearing,
		})
	}

	return derivations
}
