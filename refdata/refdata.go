// Package refdata resolves per-task-type reference data - deep links, work
// queues, due dates and candidate groups - against external directory
// services. Entries are fetched fresh per event and never cached, since
// reference data may depend on jurisdiction, date or case attributes.
package refdata

import (
	"context"
	"strings"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
)

// CrownCourtAdminQueue is the work queue every Crown Court task is routed to,
// overriding any task-type-specific default.
const CrownCourtAdminQueue = "b968222d-c31b-4e63-9c9d-c2a4b4d10759"

// A Directory answers task-type lookups. It is an external collaborator.
type Directory interface {
	// TaskType gets the reference data of a task type by its name.
	// An unknown task type is reported as an error.
	TaskType(ctx context.Context, name string) (TaskType, error)
}

// A HolidayCalendar answers public-holiday lookups, used to resolve
// working-day due-date expressions.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

// TaskType is the static reference data of a human task type, as returned by
// the directory.
type TaskType struct {
	Id                string   `json:"id" validate:"required"`   // Task type ID.
	Name              string   `json:"name" validate:"required"` // Task type name, e.g. `reviewTransfer`.
	DisplayName       string   `json:"displayName,omitempty"`    // Human-readable task name.
	DeepLinkTemplate  string   `json:"deepLinkTemplate,omitempty"`
	WorkQueue         string   `json:"workQueue,omitempty"`         // Default work queue ID.
	DueDateExpression string   `json:"dueDateExpression,omitempty"` // Due date expression - see [ResolveDueDate].
	CandidateGroups   []string `json:"candidateGroups,omitempty"`
}

// Entry is resolved, per-event reference data of one task type: templates are
// interpolated and the due-date expression is evaluated to a literal point in
// time, so that the workflow engine never evaluates expressions itself.
type Entry struct {
	TaskTypeId      string
	TaskName        string
	DisplayName     string
	DeepLink        string
	WorkQueue       string
	DueDate         time.Time
	CandidateGroups []string
}

// EntrySet holds resolved entries, keyed by task name.
type EntrySet map[string]Entry

// Flatten writes each entry into v under prefixed variable names.
//
// When shared names a task, the attributes of that entry are additionally
// written under their bare names.
func (s EntrySet) Flatten(v orchestration.Variables, shared string) {
	tv := orchestration.TaskVariables{}
	for taskName, entry := range s {
		tv.Set(taskName, orchestration.TaskVarTaskTypeId, entry.TaskTypeId)
		tv.Set(taskName, orchestration.TaskVarDeepLink, entry.DeepLink)
		tv.Set(taskName, orchestration.TaskVarWorkQueue, entry.WorkQueue)

		variables := tv[taskName]
		variables.SetTime(orchestration.TaskVarDueDate, entry.DueDate)
		variables.SetStrings(orchestration.TaskVarCandidateGroups, entry.CandidateGroups)
	}
	tv.Flatten(v, shared)
}

// WorkQueueFor selects the work queue of a task: the Crown Court Admin queue
// when the jurisdiction is CROWN, the entry's per-task-type default otherwise.
func WorkQueueFor(jurisdiction orchestration.Jurisdiction, entry Entry) string {
	if jurisdiction == orchestration.JurisdictionCrown {
		return CrownCourtAdminQueue
	}
	return entry.WorkQueue
}

// InterpolateDeepLink replaces the `{id}` placeholder of a deep link template
// with a natural ID (case or application ID).
func InterpolateDeepLink(template, naturalId string) string {
	return strings.ReplaceAll(template, "{id}", naturalId)
}
