package client

import (
	"context"

	"taskman/delivery/rest/dto"
)

// Filters is the client-held filter selection. It is ephemeral and never
// persisted server-side.
type Filters struct {
	Status   string
	Priority string
	Category string
	Search   string
	SortBy   string
}

// DefaultFilters returns the initial filter selection
func DefaultFilters() Filters {
	return Filters{
		Status:   "all",
		Priority: "all",
		Category: "all",
		Search:   "",
		SortBy:   "date",
	}
}

func (f Filters) query() Query {
	q := Query{Search: f.Search, SortBy: f.SortBy}
	// "all" selections are not sent at all, matching the mobile client
	if f.Status != "all" {
		q.Status = f.Status
	}
	if f.Priority != "all" {
		q.Priority = f.Priority
	}
	if f.Category != "all" {
		q.Category = f.Category
	}
	return q
}

// State holds the client view: the current filter selection, the fetched
// task list and the statistics snapshot. Mutations go through the API and
// refetch stats so the local view stays consistent; on failure the prior
// local state is left unchanged and the error is surfaced.
type State struct {
	client *Client

	Filters Filters
	Tasks   []*dto.TaskResponse
	Stats   dto.StatsResponse
}

// NewState creates a client state with default filters
func NewState(c *Client) *State {
	return &State{
		client:  c,
		Filters: DefaultFilters(),
	}
}

// Refresh refetches the task list for the current filters and the stats
func (s *State) Refresh(ctx context.Context) error {
	tasks, err := s.client.ListTasks(ctx, s.Filters.query())
	if err != nil {
		return err
	}

	stats, err := s.client.Stats(ctx)
	if err != nil {
		return err
	}

	s.Tasks = tasks
	s.Stats = *stats
	return nil
}

// SetFilters replaces the filter selection and refetches the list
func (s *State) SetFilters(ctx context.Context, f Filters) error {
	s.Filters = f
	return s.Refresh(ctx)
}

// Create adds a task and refetches list and stats
func (s *State) Create(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.client.CreateTask(ctx, req)
	if err != nil {
		return nil, err
	}
	return task, s.Refresh(ctx)
}

// Update modifies a task and refetches list and stats
func (s *State) Update(ctx context.Context, id string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.client.UpdateTask(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return task, s.Refresh(ctx)
}

// Toggle flips a task's completion and refetches list and stats
func (s *State) Toggle(ctx context.Context, id string) (*dto.TaskResponse, error) {
	task, err := s.client.ToggleTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return task, s.Refresh(ctx)
}

// Delete removes a task and refetches list and stats
func (s *State) Delete(ctx context.Context, id string) error {
	if _, err := s.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}
