// Package store owns the authoritative in-memory task collection for the
// current session.
package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"taskdeck/internal/task"
	"taskdeck/internal/transport"
)

// Store reconciles server-confirmed state with what callers observe. The
// collection is mutated only after the remote store acknowledges an
// operation: there is no optimistic apply, so observed state strictly lags
// the network round trip. Failures leave the collection untouched and are
// recorded as a human-readable message observable via Err.
//
// The store does not serialize mutations per id; issuing a second mutation
// for the same id before the first resolves is the caller's mistake.
type Store struct {
	remote transport.Service
	log    *logrus.Entry

	mu      sync.RWMutex
	tasks   []task.Task // most recent first, as returned by List
	byID    map[string]int
	lastErr string
}

// New creates an empty store backed by the given remote.
func New(remote transport.Service, log *logrus.Entry) *Store {
	return &Store{
		remote: remote,
		log:    log,
		byID:   make(map[string]int),
	}
}

// Load replaces the collection with the server's list. On failure the
// previous collection is left unchanged.
func (s *Store) Load(ctx context.Context) error {
	tasks, err := s.remote.List(ctx)
	if err != nil {
		return s.fail("Failed to fetch tasks", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.byID = make(map[string]int, len(tasks))
	for i, t := range tasks {
		s.byID[t.ID] = i
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Create sends a draft to the remote store and inserts the confirmed record
// at the front, preserving the most-recent-first ordering of Load. The input
// is assumed already validated by the form layer.
func (s *Store) Create(ctx context.Context, input task.CreateInput) (task.Task, error) {
	created, err := s.remote.Create(ctx, input)
	if err != nil {
		return task.Task{}, s.fail("Failed to create task", err)
	}

	s.mu.Lock()
	s.tasks = append([]task.Task{created}, s.tasks...)
	s.byID = reindex(s.tasks)
	s.lastErr = ""
	s.mu.Unlock()
	return created, nil
}

// Update sends a partial task and, on success, replaces the stored record
// wholesale with the server's response. No local merge happens: the server
// record is the single source of truth after a mutation.
func (s *Store) Update(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	updated, err := s.remote.Update(ctx, id, patch)
	if err != nil {
		return task.Task{}, s.fail("Failed to update task", err)
	}

	s.mu.Lock()
	if i, ok := s.byID[id]; ok {
		s.tasks[i] = updated
	}
	s.lastErr = ""
	s.mu.Unlock()
	return updated, nil
}

// Delete removes the entry only after the remote store confirms the delete.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		return s.fail("Failed to delete task", err)
	}

	s.mu.Lock()
	if i, ok := s.byID[id]; ok {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.byID = reindex(s.tasks)
	}
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Get is a pure lookup; it never triggers network activity.
func (s *Store) Get(id string) (task.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.byID[id]; ok {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// Tasks returns a snapshot copy of the collection, most recent first.
func (s *Store) Tasks() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of held tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Err returns the message recorded by the last failed operation, cleared by
// the next success. Callers observe failures here; the collection itself
// never reflects a failed call.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// fail records a failure message and passes the cause through.
func (s *Store) fail(msg string, err error) error {
	s.log.WithError(err).Debug(msg)
	s.mu.Lock()
	s.lastErr = msg + ": " + err.Error()
	s.mu.Unlock()
	return err
}

func reindex(tasks []task.Task) map[string]int {
	byID := make(map[string]int, len(tasks))
	for i, t := range tasks {
		byID[t.ID] = i
	}
	return byID
}
