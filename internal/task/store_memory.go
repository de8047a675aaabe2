package task

import (
	"context"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"
)

// MemoryStore is an in-memory Store used when no database is configured
// and as a DB-free fixture in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

// NewMemoryStore creates an empty in-memory task store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]Task)}
}

func (s *MemoryStore) Create(_ context.Context, in CreateInput) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = StatusTodo
	}
	t := Task{
		ID:          ulid.Make().String(),
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
		CreatedAt:   in.Now,
		UpdatedAt:   in.Now,
	}
	s.tasks[t.ID] = t
	return t, nil
}

func (s *MemoryStore) GetByID(_ context.Context, taskID string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (s *MemoryStore) ListByProject(_ context.Context, projectID string) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, 0, 16)
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Status.rank(), out[j].Status.rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, taskID string, up Update) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return Task{}, ErrNotFound
	}
	if up.Title != nil {
		t.Title = *up.Title
	}
	if up.DescriptionSet {
		t.Description = up.Description
	}
	if up.Status != nil {
		t.Status = *up.Status
	}
	if up.DueDateSet {
		t.DueDate = up.DueDate
	}
	t.UpdatedAt = up.Now
	s.tasks[taskID] = t
	return t, nil
}

func (s *MemoryStore) Delete(_ context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

func (s *MemoryStore) DeleteByProject(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.tasks {
		if t.ProjectID == projectID {
			delete(s.tasks, id)
		}
	}
	return nil
}
