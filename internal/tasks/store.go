// Package tasks holds the canonical in-memory task list for the signed-in
// user, synchronized with the remote service.
package tasks

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tada/internal/service"
	"tada/internal/session"
)

// Store owns the local task list. Every mutation round-trips through the
// service first and patches local state only after the server confirms.
// The mutex covers local state only; requests are not serialized against
// each other.
type Store struct {
	svc  service.Service
	sess *session.Session

	mu    sync.RWMutex
	tasks []service.Task
}

// NewStore creates an empty store bound to a session. All operations fail
// with service.ErrNoSession while the session is absent.
func NewStore(svc service.Service, sess *session.Session) *Store {
	return &Store{svc: svc, sess: sess}
}

// Load fetches the full task list and replaces local state wholesale.
func (s *Store) Load(ctx context.Context) error {
	if err := s.require(); err != nil {
		return err
	}
	fetched, err := s.svc.ListTasks(ctx)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.tasks = fetched
	s.mu.Unlock()
	return nil
}

// Create sends a create request and appends the server-returned task. A
// title that is empty or whitespace-only is rejected locally with
// service.ErrEmptyTitle; no request is issued.
func (s *Store) Create(ctx context.Context, title, description string) (service.Task, error) {
	if err := s.require(); err != nil {
		return service.Task{}, err
	}
	if strings.TrimSpace(title) == "" {
		return service.Task{}, service.ErrEmptyTitle
	}
	created, err := s.svc.CreateTask(ctx, title, description)
	if err != nil {
		return service.Task{}, s.fail(err)
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, created)
	s.mu.Unlock()
	return created, nil
}

// Toggle sends an update with the completion flag inverted and flips the
// local copy once the server confirms.
func (s *Store) Toggle(ctx context.Context, id int) error {
	if err := s.require(); err != nil {
		return err
	}
	task, ok := s.Get(id)
	if !ok {
		return service.ErrTaskNotFound
	}
	next := !task.Completed
	err := s.svc.UpdateTask(ctx, id, service.TaskPatch{Completed: &next})
	if err != nil {
		return s.fail(err)
	}
	s.patch(id, func(t *service.Task) { t.Completed = next })
	return nil
}

// Update sends a partial update for title and description and merges them
// into the matching local task, leaving the completion flag untouched.
func (s *Store) Update(ctx context.Context, id int, title, description string) error {
	if err := s.require(); err != nil {
		return err
	}
	patch := service.TaskPatch{Title: &title, Description: &description}
	if err := s.svc.UpdateTask(ctx, id, patch); err != nil {
		return s.fail(err)
	}
	s.patch(id, func(t *service.Task) {
		t.Title = title
		t.Description = description
	})
	return nil
}

// Delete removes the task remotely, then locally by ID. Removing an ID
// that is not in the local list leaves the list unchanged.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.require(); err != nil {
		return err
	}
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.mu.Unlock()
	return nil
}

// Tasks returns a snapshot copy of the current list, in server order.
func (s *Store) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the local copy of a task by ID.
func (s *Store) Get(id int) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// require fails fast when no session is active.
func (s *Store) require() error {
	if !s.sess.Active() {
		return service.ErrNoSession
	}
	return nil
}

// fail expires the session when the server rejected our token, so the
// stale token is not presented again.
func (s *Store) fail(err error) error {
	if errors.Is(err, service.ErrUnauthorized) {
		s.sess.Expire()
	}
	return err
}

// patch applies fn to the local task with the given ID, if it is still
// present. Completions of concurrent operations each apply their own patch
// independently.
func (s *Store) patch(id int, fn func(*service.Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			fn(&s.tasks[i])
			return
		}
	}
}
