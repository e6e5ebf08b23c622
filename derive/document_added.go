package derive

import (
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
)

// Document types that require a review task when added to a case.
var reviewableDocumentTypes = map[string]struct{}{
	"COMMITTAL_BUNDLE":    {},
	"CROWN_COURT_SUMMARY": {},
	"SENTENCING_REMARKS":  {},
}

// DeriveDocumentAdded derives a documentReview run, keyed by the document ID.
// Non-reviewable document types yield an idle derivation, which the gateway
// skips entirely.
func DeriveDocumentAdded(p DocumentAdded, resolve ResolveFunc, identity orchestration.Identity) []Derivation {
	document := p.Document
	jurisdiction := orchestration.MapJurisdiction(document.Jurisdiction)

	_, reviewable := reviewableDocumentTypes[document.Type]

	entries := resolve(DocumentReviewTaskTypes, document.CaseId)
	routeEntries(entries, jurisdiction)

	v := orchestration.NewVariables(identity)
	v.SetString(orchestration.VarDocumentId, document.Id)
	v.SetString(orchestration.VarDocumentType, document.Type)
	v.SetString(orchestration.VarCaseId, document.CaseId)
	v.SetString(orchestration.VarJurisdiction, document.Jurisdiction)
	v.SetString(orchestration.VarWorkQueue, entries[TaskReviewDocument].WorkQueue)

	entries.Flatten(v, TaskReviewDocument)

	return []Derivation{{
		ProcessDefinitionKey: ProcessDocumentReview,
		BusinessKey:          document.Id,
		Variables:            v,
		Idle:                 !reviewable,
	}}
}
