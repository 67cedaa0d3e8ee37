package dto

import (
	"time"

	"taskman/internal/domain/models"
	"taskman/internal/domain/repositories"
)

// CreateTaskRequest represents a request to create a new task. Enum fields
// are carried as plain strings; the domain validation rejects unrecognized
// values so nothing is silently coerced.
type CreateTaskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	Category    string      `json:"category"`
	DueDate     *CustomTime `json:"dueDate"`
}

// ToModel converts the request to a Task with defaults and store-assigned
// fields filled in
func (r *CreateTaskRequest) ToModel() *models.Task {
	return models.NewTask(
		r.Title,
		r.Description,
		models.TaskPriority(r.Priority),
		models.TaskCategory(r.Category),
		r.DueDate.ToTime(),
	)
}

// UpdateTaskRequest is a partial update. Absent fields stay nil and leave
// the stored value unchanged.
type UpdateTaskRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Priority    *string     `json:"priority"`
	Category    *string     `json:"category"`
	Completed   *bool       `json:"completed"`
	DueDate     *CustomTime `json:"dueDate"`
}

// ToPatch converts the request to a repository patch
func (r *UpdateTaskRequest) ToPatch() repositories.TaskPatch {
	patch := repositories.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		DueDate:     r.DueDate.ToTime(),
	}

	if r.Priority != nil {
		p := models.TaskPriority(*r.Priority)
		patch.Priority = &p
	}
	if r.Category != nil {
		c := models.TaskCategory(*r.Category)
		patch.Category = &c
	}

	return patch
}

// ListTasksQuery represents query parameters for listing tasks
type ListTasksQuery struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Category string `form:"category"`
	Search   string `form:"search"`
	SortBy   string `form:"sortBy"`
}

// ToFilter converts the query to a repository filter. "all" and empty mean
// no predicate. Values are passed through untranslated: an unknown status
// or sortBy falls back to the default behavior, an unknown priority or
// category simply matches nothing, as in the original API.
func (q *ListTasksQuery) ToFilter() repositories.TaskFilter {
	filter := repositories.TaskFilter{
		Search: q.Search,
		SortBy: repositories.SortKey(q.SortBy),
	}

	switch q.Status {
	case "completed":
		filter.Status = repositories.StatusCompleted
	case "active":
		filter.Status = repositories.StatusActive
	default:
		filter.Status = repositories.StatusAll
	}

	if q.Priority != "" && q.Priority != "all" {
		filter.Priority = models.TaskPriority(q.Priority)
	}
	if q.Category != "" && q.Category != "all" {
		filter.Category = models.TaskCategory(q.Category)
	}

	return filter
}

// TaskResponse represents a task in API responses. All times are UTC.
type TaskResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	Category    string      `json:"category"`
	Completed   bool        `json:"completed"`
	DueDate     *CustomTime `json:"dueDate,omitempty"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

// FromModel converts a Task to its response representation
func FromModel(t *models.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if t.DueDate != nil {
		resp.DueDate = &CustomTime{Time: *t.DueDate}
	}

	return resp
}

// FromModels converts a task slice, never returning nil so the list
// endpoint serializes an empty array instead of null
func FromModels(tasks []*models.Task) []*TaskResponse {
	responses := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, FromModel(t))
	}
	return responses
}

// DeleteTaskResponse confirms a deletion with the removed task's prior state
type DeleteTaskResponse struct {
	Message string        `json:"message"`
	Task    *TaskResponse `json:"task"`
}

// StatsResponse represents the statistics snapshot
type StatsResponse struct {
	Total        int64 `json:"total"`
	Completed    int64 `json:"completed"`
	Pending      int64 `json:"pending"`
	HighPriority int64 `json:"highPriority"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
