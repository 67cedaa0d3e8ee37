package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"taskman/internal/domain"
)

// TaskPriority is the urgency level of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskCategory groups tasks by area of life
type TaskCategory string

const (
	TaskCategoryGeneral  TaskCategory = "general"
	TaskCategoryWork     TaskCategory = "work"
	TaskCategoryPersonal TaskCategory = "personal"
	TaskCategoryShopping TaskCategory = "shopping"
	TaskCategoryHealth   TaskCategory = "health"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Task represents a single to-do item
type Task struct {
	ID          string       `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	Category    TaskCategory `json:"category" db:"category"`
	Completed   bool         `json:"completed" db:"completed"`
	DueDate     *time.Time   `json:"dueDate,omitempty" db:"due_date"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// NewTask creates a task with defaults applied. The store-facing fields
// (ID, CreatedAt, UpdatedAt) are assigned here so that UpdatedAt equals
// CreatedAt on a fresh task.
func NewTask(title, description string, priority TaskPriority, category TaskCategory, dueDate *time.Time) *Task {
	now := time.Now()

	if priority == "" {
		priority = TaskPriorityMedium
	}
	if category == "" {
		category = TaskCategoryGeneral
	}

	return &Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    category,
		Completed:   false,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the task invariants. It is applied to freshly created
// tasks and to the merged result of a partial update, so an update can
// never leave an invalid task behind.
func (t *Task) Validate() error {
	if t.Title == "" {
		return domain.NewValidationError("title", "title is required")
	}
	// limits are in characters, not bytes
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return domain.NewValidationError("title", "title must be at most 100 characters")
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return domain.NewValidationError("description", "description must be at most 500 characters")
	}
	if !t.Priority.Valid() {
		return domain.NewValidationError("priority", "priority must be one of: low, medium, high")
	}
	if !t.Category.Valid() {
		return domain.NewValidationError("category", "category must be one of: general, work, personal, shopping, health")
	}
	return nil
}

// Valid reports whether p is one of the enumerated priorities
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Valid reports whether c is one of the enumerated categories
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCategoryGeneral, TaskCategoryWork, TaskCategoryPersonal, TaskCategoryShopping, TaskCategoryHealth:
		return true
	}
	return false
}

// IsHighPriorityPending reports whether the task counts toward the
// high-priority-pending statistic
func (t *Task) IsHighPriorityPending() bool {
	return t.Priority == TaskPriorityHigh && !t.Completed
}

// Touch refreshes UpdatedAt. Every mutation goes through here.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now()
}

// ToggleCompleted flips the completion flag and refreshes UpdatedAt
func (t *Task) ToggleCompleted() {
	t.Completed = !t.Completed
	t.Touch()
}

// Clone returns a copy of the task. Stores hand out clones so callers
// cannot mutate persisted state in place.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}
