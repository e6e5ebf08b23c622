// Package history tracks the audit history of human tasks created by
// workflow runs. It consumes the task lifecycle signals raised by the
// workflow engine's listeners and appends them, in observation order, to a
// per-task append-only log.
package history

import (
	"fmt"
	"time"
)

// EventType describes the lifecycle signal of a human task.
type EventType int

const (
	EventCreated EventType = iota + 1
	EventAssigned
	EventReassigned
	EventDueDateUpdated
	EventWorkQueueUpdated
	EventCompleted
)

func MapEventType(s string) EventType {
	switch s {
	case "CREATED":
		return EventCreated
	case "ASSIGNED":
		return EventAssigned
	case "REASSIGNED":
		return EventReassigned
	case "DUE_DATE_UPDATED":
		return EventDueDateUpdated
	case "WORK_QUEUE_UPDATED":
		return EventWorkQueueUpdated
	case "COMPLETED":
		return EventCompleted
	default:
		return 0
	}
}

func (v EventType) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (v EventType) String() string {
	switch v {
	case EventCreated:
		return "CREATED"
	case EventAssigned:
		return "ASSIGNED"
	case EventReassigned:
		return "REASSIGNED"
	case EventDueDateUpdated:
		return "DUE_DATE_UPDATED"
	case EventWorkQueueUpdated:
		return "WORK_QUEUE_UPDATED"
	case EventCompleted:
		return "COMPLETED"
	default:
		return ""
	}
}

func (v *EventType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		*v = MapEventType(s)
	}
	if *v == 0 {
		return fmt.Errorf("invalid event type data %s", s)
	}
	return nil
}

// Entry is one recorded lifecycle event of a task. Entries for a task ID form
// an append-only, strictly time-ordered sequence; they are never edited or
// deleted.
type Entry struct {
	TaskId    string            `json:"taskId" validate:"required"`
	Type      EventType         `json:"eventType" validate:"required"`
	Timestamp time.Time         `json:"timestamp" validate:"required"`
	Details   map[string]string `json:"details,omitempty"` // e.g. assignee, dueDate, workQueue
}

// Signal is a task lifecycle signal, as delivered by a workflow engine
// listener. Signals for a given task ID are delivered sequentially by
// construction.
type Signal struct {
	TaskId  string            `json:"taskId" validate:"required"`
	Type    EventType         `json:"eventType" validate:"required"`
	At      time.Time         `json:"at"`
	Details map[string]string `json:"details,omitempty"`
}
