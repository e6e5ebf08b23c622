// Package mem provides an in-memory task history store, used for testing and
// single-process deployments without a database.
package mem

import (
	"context"
	"sync"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/history"
)

func New() *Store {
	return &Store{entries: make(map[string][]history.Entry)}
}

// Store keeps the history log per task ID in insertion order, guarded by a
// single lock.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]history.Entry
}

func (s *Store) Append(_ context.Context, entry history.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.TaskId] = append(s.entries[entry.TaskId], entry)
	return nil
}

func (s *Store) SelectByTaskId(_ context.Context, taskId string) ([]history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries[taskId]

	results := make([]history.Entry, len(entries))
	copy(results, entries)
	return results, nil
}
