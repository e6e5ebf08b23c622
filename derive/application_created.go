package derive

import (
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
)

// DeriveApplicationCreated derives a courtApplication run, keyed by the
// application ID.
//
// isApplicationProsecutorOrDefence is true only for the PROSECUTOR and
// DEFENCE creator types; any other value - including internal creators and
// values unknown to this version - defaults to false. executeInstantly is
// true when the application is not bound to a scheduled hearing. An absent
// subject degrades defendantId and defendantName to empty strings, so the
// workflow still starts with placeholders.
func DeriveApplicationCreated(p ApplicationCreated, resolve ResolveFunc, identity orchestration.Identity) []Derivation {
	application := p.Application

	isProsecutorOrDefence := application.CreatorType == "PROSECUTOR" || application.CreatorType == "DEFENCE"
	executeInstantly := application.HearingId == ""

	var defendantId, defendantName string
	if application.Subject != nil {
		defendantId = application.Subject.Id
		defendantName = PersonName(application.Subject.FirstName, application.Subject.LastName)
	}

	entries := resolve(CourtApplicationTaskTypes, application.Id)

	v := orchestration.NewVariables(identity)
	v.SetString(orchestration.VarApplicationId, application.Id)
	v.SetString(orchestration.VarApplicationType, application.Type)
	v.SetString(orchestration.VarCaseId, application.CaseId)
	v.SetString(orchestration.VarHearingId, application.HearingId)
	v.SetString(orchestration.VarDefendantId, defendantId)
	v.SetString(orchestration.VarDefendantName, defendantName)
	v.SetString(orchestration.VarWorkQueue, entries[TaskReviewApplication].WorkQueue)
	v.SetBool(orchestration.VarIsApplicationProsecutorOrDefence, isProsecutorOrDefence)
	v.SetBool(orchestration.VarExecuteInstantly, executeInstantly)

	entries.Flatten(v, TaskReviewApplication)

	return []Derivation{{
		ProcessDefinitionKey: ProcessCourtApplication,
		BusinessKey:          application.Id,
		Variables:            v,
		Idle:                 !isProsecutorOrDefence,
	}}
}
