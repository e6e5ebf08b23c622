package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/history"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/history/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T) *history.Tracker {
	t.Helper()

	tracker, err := history.NewTracker(mem.New(), nil)
	require.NoError(t, err)
	return tracker
}

func record(t *testing.T, tracker *history.Tracker, taskId string, eventTypes ...history.EventType) {
	t.Helper()

	at := time.Date(2024, 5, 16, 9, 0, 0, 0, time.UTC)
	for i, eventType := range eventTypes {
		_, err := tracker.Record(context.Background(), history.Signal{
			TaskId: taskId,
			Type:   eventType,
			At:     at.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestTracker(t *testing.T) {
	assert := assert.New(t)

	t.Run("full lifecycle is recorded in order", func(t *testing.T) {
		// given
		tracker := newTracker(t)

		// when
		record(t, tracker, "task-1",
			history.EventCreated,
			history.EventAssigned,
			history.EventDueDateUpdated,
			history.EventDueDateUpdated,
			history.EventReassigned,
			history.EventWorkQueueUpdated,
			history.EventCompleted,
		)

		// then
		entries, err := tracker.History(context.Background(), "task-1")
		require.NoError(t, err)
		require.Len(t, entries, 7)

		expected := []history.EventType{
			history.EventCreated,
			history.EventAssigned,
			history.EventDueDateUpdated,
			history.EventDueDateUpdated,
			history.EventReassigned,
			history.EventWorkQueueUpdated,
			history.EventCompleted,
		}
		for i, entry := range entries {
			assert.Equal(expected[i], entry.Type)
			assert.Equal("task-1", entry.TaskId)
		}
	})

	t.Run("completed is terminal", func(t *testing.T) {
		// given
		tracker := newTracker(t)
		record(t, tracker, "task-1", history.EventCreated, history.EventAssigned, history.EventCompleted)

		// when
		record(t, tracker, "task-1", history.EventDueDateUpdated)

		// then
		entries, err := tracker.History(context.Background(), "task-1")
		require.NoError(t, err)
		assert.Len(entries, 3)
	})

	t.Run("first signal must be created", func(t *testing.T) {
		// given
		tracker := newTracker(t)

		// when
		record(t, tracker, "task-1", history.EventAssigned)

		// then
		entries, err := tracker.History(context.Background(), "task-1")
		require.NoError(t, err)
		assert.Empty(entries)
	})

	t.Run("repeated created is dropped", func(t *testing.T) {
		// given
		tracker := newTracker(t)

		// when
		record(t, tracker, "task-1", history.EventCreated, history.EventCreated)

		// then
		entries, err := tracker.History(context.Background(), "task-1")
		require.NoError(t, err)
		assert.Len(entries, 1)
	})

	t.Run("recurring assignment is recorded as reassignment", func(t *testing.T) {
		// given
		tracker := newTracker(t)

		// when
		record(t, tracker, "task-1", history.EventCreated, history.EventAssigned, history.EventAssigned)

		// then
		entries, err := tracker.History(context.Background(), "task-1")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(history.EventAssigned, entries[1].Type)
		assert.Equal(history.EventReassigned, entries[2].Type)
	})

	t.Run("tasks are tracked independently", func(t *testing.T) {
		// given
		tracker := newTracker(t)
		record(t, tracker, "task-1", history.EventCreated, history.EventCompleted)

		// when
		record(t, tracker, "task-2", history.EventCreated, history.EventAssigned)

		// then
		entries, err := tracker.History(context.Background(), "task-2")
		require.NoError(t, err)
		assert.Len(entries, 2)
	})

	t.Run("unknown task yields empty history", func(t *testing.T) {
		// given
		tracker := newTracker(t)

		// when
		entries, err := tracker.History(context.Background(), "task-404")

		// then
		require.NoError(t, err)
		assert.Empty(entries)
	})
}

func TestMapEventType(t *testing.T) {
	assert := assert.New(t)

	eventTypes := []history.EventType{
		history.EventCreated,
		history.EventAssigned,
		history.EventReassigned,
		history.EventDueDateUpdated,
		history.EventWorkQueueUpdated,
		history.EventCompleted,
	}

	for _, eventType := range eventTypes {
		assert.Equal(eventType, history.MapEventType(eventType.String()))
	}

	assert.Equal(history.EventType(0), history.MapEventType("UNKNOWN"))
}
