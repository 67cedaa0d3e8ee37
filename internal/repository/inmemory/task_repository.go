package inmemory

import (
	"context"
	"sync"

	"taskman/internal/domain"
	"taskman/internal/domain/models"
	"taskman/internal/domain/repositories"
)

// TaskStorage is a mutex-guarded in-memory implementation of
// repositories.TaskRepository. It evaluates the same TaskFilter predicates
// the SQL store compiles into queries, so the two stores are
// interchangeable behind the interface. Used by tests and embedded runs.
type TaskStorage struct {
	mtx     sync.RWMutex
	storage map[string]*models.Task
}

// NewTaskStorage creates an empty in-memory task store
func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[string]*models.Task),
	}
}

func (s *TaskStorage) Create(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage[task.ID] = task.Clone()
	return nil
}

func (s *TaskStorage) FindByID(ctx context.Context, id string) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	task, ok := s.storage[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return task.Clone(), nil
}

func (s *TaskStorage) List(ctx context.Context, filter repositories.TaskFilter) ([]*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var tasks []*models.Task
	for _, task := range s.storage {
		if filter.Matches(task) {
			tasks = append(tasks, task.Clone())
		}
	}

	filter.Sort(tasks)
	return tasks, nil
}

func (s *TaskStorage) Update(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[task.ID]; !ok {
		return domain.ErrNotFound
	}

	s.storage[task.ID] = task.Clone()
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return domain.ErrNotFound
	}

	delete(s.storage, id)
	return nil
}

func (s *TaskStorage) Stats(ctx context.Context) (*repositories.Stats, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var stats repositories.Stats
	for _, task := range s.storage {
		stats.Total++
		if task.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if task.IsHighPriorityPending() {
			stats.HighPriority++
		}
	}

	return &stats, nil
}
