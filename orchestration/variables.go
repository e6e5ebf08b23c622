package orchestration

import (
	"sort"
	"strings"
	"time"
)

// Fixed process variable names.
const (
	VarApplicationId     = "applicationId"
	VarApplicationType   = "applicationType"
	VarCaseId            = "caseId"
	VarCaseURN           = "caseURN"
	VarCourtCentreId     = "courtCentreId"
	VarDefendantId       = "defendantId"
	VarDefendantName     = "defendantName"
	VarDocumentId        = "documentId"
	VarDocumentType      = "documentType"
	VarHearingDate       = "hearingDate"
	VarHearingId         = "hearingId"
	VarJurisdiction      = "jurisdiction"
	VarLastUpdatedByID   = "lastUpdatedByID"
	VarLastUpdatedByName = "lastUpdatedByName"
	VarNote              = "note"
	VarWorkQueue         = "workQueue"

	VarExecuteInstantly                 = "executeInstantly"
	VarHasCustodialResults              = "hasCustodialResults"
	VarHasInterpreter                   = "hasInterpreter"
	VarIsApplicationProsecutorOrDefence = "isApplicationProsecutorOrDefence"
	VarReferCourtHearing                = "referCourtHearing"
)

// Prefixed per-task variable name suffixes - see [TaskVariables].
const (
	TaskVarCandidateGroups = "candidateGroups"
	TaskVarDeepLink        = "deepLink"
	TaskVarDueDate         = "dueDate"
	TaskVarTaskTypeId      = "taskTypeId"
	TaskVarWorkQueue       = "workQueue"
)

// Variables is a flat process variable map, built fresh per derivation call.
//
// Values are limited to the types the engine's variable typing supports:
// string, bool and list-of-string. Missing optional source fields are set as
// empty strings, never omitted, so that the engine's typing stays stable.
type Variables map[string]any

// NewVariables creates a variable map that carries the audit pair for the
// given identity.
func NewVariables(identity Identity) Variables {
	return Variables{
		VarLastUpdatedByID:   identity.Id,
		VarLastUpdatedByName: identity.Name,
	}
}

func (v Variables) SetBool(name string, value bool) {
	v[name] = value
}

func (v Variables) SetString(name string, value string) {
	v[name] = value
}

func (v Variables) SetStrings(name string, values []string) {
	if values == nil {
		values = []string{}
	}
	v[name] = values
}

// SetTime sets an ISO 8601 timestamp. The zero time is set as an empty string.
func (v Variables) SetTime(name string, value time.Time) {
	if value.IsZero() {
		v[name] = ""
		return
	}
	v[name] = value.UTC().Format(time.RFC3339)
}

func (v Variables) Bool(name string) bool {
	value, _ := v[name].(bool)
	return value
}

func (v Variables) String(name string) string {
	value, _ := v[name].(string)
	return value
}

// Names returns the variable names in lexicographical order.
func (v Variables) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasIdentity determines if the audit pair is present and non-empty.
func (v Variables) HasIdentity() bool {
	return v.String(VarLastUpdatedByID) != "" && v.String(VarLastUpdatedByName) != ""
}

// TaskVariables maps a task name to the variables of that task.
//
// Several tasks created by one workflow run can carry independent copies of
// the same attribute. Internally this is a two-level map; it is flattened to
// prefixed string keys at the engine boundary only - e.g. the deepLink of a
// task named reviewTransfer becomes `reviewTransfer_deepLink`.
type TaskVariables map[string]Variables

func (tv TaskVariables) Set(taskName, attribute string, value any) {
	variables, ok := tv[taskName]
	if !ok {
		variables = Variables{}
		tv[taskName] = variables
	}
	variables[attribute] = value
}

// Flatten writes the prefixed variable names into v.
//
// When shared names a task, the attributes of that task are additionally
// written under their bare names, for workflows that need an unprefixed
// shared copy next to the per-task copies.
func (tv TaskVariables) Flatten(v Variables, shared string) {
	for taskName, variables := range tv {
		for attribute, value := range variables {
			v[PrefixedName(taskName, attribute)] = value
			if taskName == shared {
				v[attribute] = value
			}
		}
	}
}

// PrefixedName composes the flattened name of a per-task variable.
func PrefixedName(taskName, attribute string) string {
	var sb strings.Builder
	sb.WriteString(taskName)
	sb.WriteRune('_')
	sb.WriteString(attribute)
	return sb.String()
}
