package history

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var protocolViolations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "progression_task_history_violations_total",
	Help: "Number of dropped task lifecycle signals that violate the history protocol.",
}, []string{"reason"})

func NewTracker(store Store, logger *zap.Logger) (*Tracker, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Tracker{store: store, logger: logger}, nil
}

// A Tracker maintains the per-task audit history state machine:
//
//	(none) -> Created -> Assigned -> [Reassigned | DueDateUpdated | WorkQueueUpdated]* -> Completed
//
// Transitions are additive only. A signal that violates the protocol - the
// first signal of a task not being Created, a repeated Created, or any signal
// after Completed - is logged and dropped, never returned as an error, since
// it must not abort unrelated task processing.
type Tracker struct {
	store  Store
	logger *zap.Logger
}

// Record appends one lifecycle signal to the task's history. An Assigned
// signal for a task that already has an assignment is recorded as Reassigned.
// It reports whether the signal was appended - a dropped protocol violation
// is false, nil.
func (t *Tracker) Record(ctx context.Context, signal Signal) (bool, error) {
	if signal.TaskId == "" || signal.Type == 0 {
		t.drop(signal, "invalid signal")
		return false, nil
	}

	entries, err := t.store.SelectByTaskId(ctx, signal.TaskId)
	if err != nil {
		return false, err
	}

	if len(entries) == 0 && signal.Type != EventCreated {
		t.drop(signal, "unknown task")
		return false, nil
	}
	if len(entries) > 0 && signal.Type == EventCreated {
		t.drop(signal, "already created")
		return false, nil
	}
	if len(entries) > 0 && entries[len(entries)-1].Type == EventCompleted {
		t.drop(signal, "task completed")
		return false, nil
	}

	eventType := signal.Type
	if eventType == EventAssigned && hasAssignment(entries) {
		eventType = EventReassigned
	}

	at := signal.At
	if at.IsZero() {
		at = time.Now()
	}

	err = t.store.Append(ctx, Entry{
		TaskId:    signal.TaskId,
		Type:      eventType,
		Timestamp: at,
		Details:   signal.Details,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// History gets the ordered history of a task ID. The result reflects every
// recorded transition promptly, since operational dashboards poll it.
func (t *Tracker) History(ctx context.Context, taskId string) ([]Entry, error) {
	return t.store.SelectByTaskId(ctx, taskId)
}

func (t *Tracker) drop(signal Signal, reason string) {
	t.logger.Warn("dropped task lifecycle signal",
		zap.String("taskId", signal.TaskId),
		zap.String("eventType", signal.Type.String()),
		zap.String("reason", reason),
	)
	protocolViolations.WithLabelValues(reason).Inc()
}

func hasAssignment(entries []Entry) bool {
	for _, entry := range entries {
		if entry.Type == EventAssigned || entry.Type == EventReassigned {
			return true
		}
	}
	return false
}
