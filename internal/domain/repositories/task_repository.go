package repositories

import (
	"context"
	"sort"
	"strings"
	"time"

	"taskman/internal/domain/models"
)

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error

	FindByID(ctx context.Context, id string) (*models.Task, error)

	// List returns all tasks matching the filter in the filter's sort
	// order. No pagination, no limit.
	List(ctx context.Context, filter TaskFilter) ([]*models.Task, error)

	// Update persists all mutable fields of the task. Returns
	// domain.ErrNotFound if the id does not exist.
	Update(ctx context.Context, task *models.Task) error

	// Delete removes the task permanently. Returns domain.ErrNotFound if
	// the id does not exist.
	Delete(ctx context.Context, id string) error

	// Stats recomputes the aggregate counts with independent counting
	// queries. Concurrent writes between counts may be visible in one
	// count and not another; there is no cross-count snapshot guarantee.
	Stats(ctx context.Context) (*Stats, error)
}

// StatusFilter narrows a listing by completion state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// SortKey selects the ordering of a listing
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByPriority SortKey = "priority"
	SortByCreated  SortKey = "" // default: newest first
)

// TaskFilter defines filtering and ordering for listing tasks. It is the
// store-agnostic predicate: SQL stores compile it into a query, in-memory
// stores evaluate Matches and Sort directly. Zero value means "everything,
// newest first".
type TaskFilter struct {
	Status   StatusFilter
	Priority models.TaskPriority // empty means all
	Category models.TaskCategory // empty means all
	Search   string
	SortBy   SortKey
}

// Matches reports whether the task satisfies every active predicate.
// Active predicates are combined with logical AND.
func (f TaskFilter) Matches(t *models.Task) bool {
	switch f.Status {
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusActive:
		if t.Completed {
			return false
		}
	}

	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}

	if f.Category != "" && t.Category != f.Category {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}

	return true
}

// Sort orders tasks in place according to the filter's sort key.
//
// SortByPriority orders by the priority value ascending in its natural
// string order (high, low, medium). This is intentionally not severity
// order; it mirrors how the store sorts the raw enum value.
// SortByDate orders by due date ascending with undated tasks last.
// Both tie-break on CreatedAt descending, which is also the default order.
func (f TaskFilter) Sort(tasks []*models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return f.less(tasks[i], tasks[j])
	})
}

func (f TaskFilter) less(a, b *models.Task) bool {
	switch f.SortBy {
	case SortByPriority:
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
	case SortByDate:
		switch {
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// TaskPatch carries a partial update. Nil fields are left unchanged by
// Apply; the merged task is revalidated as a whole before persisting.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *models.TaskPriority
	Category    *models.TaskCategory
	Completed   *bool
	DueDate     *time.Time
}

// Apply merges the patch into the task and refreshes UpdatedAt
func (p TaskPatch) Apply(t *models.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	t.Touch()
}

// Stats is the derived snapshot of aggregate counts
type Stats struct {
	Total        int64
	Completed    int64
	Pending      int64
	HighPriority int64 // high priority AND not completed
}
