package derive

import (
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/refdata"
)

var testIdentity = orchestration.Identity{
	Id:   "d0ff1e9c-64ad-4e6c-b57e-46791b71ef83",
	Name: "Progression Orchestration",
}

// testResolve resolves every requested task type to a synthetic entry, so
// that derivation tests do not depend on a directory.
func testResolve(taskTypeNames []string, naturalId string) refdata.EntrySet {
	entries := make(refdata.EntrySet, len(taskTypeNames))
	for _, name := range taskTypeNames {
		entries[name] = refdata.Entry{
			TaskTypeId: "type-" + name,
			TaskName:   name,
			DeepLink:   "/entities/" + naturalId + "/tasks/" + name,
			WorkQueue:  "queue-" + name,
			DueDate:    time.Date(2024, 5, 18, 9, 0, 0, 0, time.UTC),
		}
	}
	return entries
}
