package usecase

import (
	"context"

	"taskman/internal/domain/models"
	"taskman/internal/domain/repositories"
)

// TaskService handles business logic for tasks. It is stateless between
// calls; the repository is the only shared resource.
type TaskService struct {
	repo repositories.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(repo repositories.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// CreateTask validates the task and persists it. Nothing is stored when
// validation fails.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// ListTasks returns tasks matching the filter in the filter's order
func (s *TaskService) ListTasks(ctx context.Context, filter repositories.TaskFilter) ([]*models.Task, error) {
	return s.repo.List(ctx, filter)
}

// UpdateTask merges the patch into the stored task, revalidates the merged
// result and persists it. An invalid merge rejects the whole update and
// leaves the stored task untouched.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch repositories.TaskPatch) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(task)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// ToggleTask flips the completion flag, leaving every other field alone
func (s *TaskService) ToggleTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.ToggleCompleted()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask removes the task permanently and returns its prior state for
// confirmation. Deleting a missing id fails with domain.ErrNotFound, also
// on repeat calls.
func (s *TaskService) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return task, nil
}

// Stats recomputes the aggregate counts from current store contents
func (s *TaskService) Stats(ctx context.Context) (*repositories.Stats, error) {
	return s.repo.Stats(ctx)
}
