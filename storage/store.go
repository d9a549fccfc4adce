// Package storage holds the authoritative in-memory task collection.
package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/domain"
)

// ErrTaskNotFound is returned when an intent references an id absent from the
// collection.
var ErrTaskNotFound = errors.New("task not found")

// Store owns the task collection and id assignment. Every access goes through
// its mutex, so concurrent intents never observe a partially applied mutation.
type Store struct {
	mu     sync.Mutex
	tasks  []domain.Task
	nextID int
	now    func() time.Time
}

// New returns an empty store with the id counter at 1.
func New() *Store {
	return &Store{nextID: 1, now: time.Now}
}

// ListAll returns a copy of the collection in insertion order.
func (s *Store) ListAll() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Create assigns the next id, fills defaults, stamps the creation time and
// appends the task. Ids are never reused, even after a delete.
func (s *Store) Create(draft domain.TaskDraft) domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := domain.NewTask(s.nextID, s.now().UTC(), draft)
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t
}

// Update merges the patch over the task with the given id and returns the
// merged task.
func (s *Store) Update(id int, patch domain.TaskPatch) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			patch.Apply(&s.tasks[i])
			return s.tasks[i], nil
		}
	}
	return domain.Task{}, ErrTaskNotFound
}

// Move sets only the status of the task with the given id.
func (s *Store) Move(id int, status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
			return nil
		}
	}
	return ErrTaskNotFound
}

// Delete removes the task with the given id, preserving the order of the
// remaining tasks.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

// Reset clears the collection and restarts the id counter at 1.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	s.nextID = 1
}
