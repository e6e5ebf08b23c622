package history

import "context"

// A Store persists task history entries. The tracker is the only writer.
//
// Implementations must return the entries of a task ID in append order and
// serialize appends per task ID - see history/mem and history/pg.
type Store interface {
	// Append appends an entry to the log of its task ID.
	Append(ctx context.Context, entry Entry) error

	// SelectByTaskId gets the entries of a task ID in append order.
	// An unknown task ID yields an empty slice, not an error.
	SelectByTaskId(ctx context.Context, taskId string) ([]Entry, error)
}
