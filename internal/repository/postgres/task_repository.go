package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskman/internal/domain"
	"taskman/internal/domain/models"
	"taskman/internal/domain/repositories"
)

const taskColumns = `id, title, description, priority, category, completed, due_date, created_at, updated_at`

// taskRepository implements repositories.TaskRepository on PostgreSQL
type taskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new PostgreSQL task repository
func NewTaskRepository(db *pgxpool.Pool) repositories.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Priority, task.Category,
		task.Completed, task.DueDate, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	return task, nil
}

// List compiles the filter into a WHERE clause with numbered arguments and
// an ORDER BY derived from the sort key. All predicates are ANDed.
func (r *taskRepository) List(ctx context.Context, filter repositories.TaskFilter) ([]*models.Task, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argNum := 1

	switch filter.Status {
	case repositories.StatusCompleted:
		whereClause += " AND completed = TRUE"
	case repositories.StatusActive:
		whereClause += " AND completed = FALSE"
	}

	if filter.Priority != "" {
		whereClause += fmt.Sprintf(" AND priority = $%d", argNum)
		args = append(args, filter.Priority)
		argNum++
	}

	if filter.Category != "" {
		whereClause += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, filter.Category)
		argNum++
	}

	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argNum++
	}

	query := `SELECT ` + taskColumns + ` FROM tasks ` + whereClause +
		" ORDER BY " + orderBy(filter.SortBy)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// orderBy maps a sort key to an ORDER BY expression. Priority sorts the
// raw enum text ascending (high, low, medium), matching the store's
// natural string order rather than severity.
func orderBy(key repositories.SortKey) string {
	switch key {
	case repositories.SortByPriority:
		return "priority ASC, created_at DESC"
	case repositories.SortByDate:
		return "due_date ASC NULLS LAST, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// escapeLike neutralizes LIKE metacharacters so user search input is
// matched as a plain substring
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title = $2,
			description = $3,
			priority = $4,
			category = $5,
			completed = $6,
			due_date = $7,
			updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Priority, task.Category,
		task.Completed, task.DueDate, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Stats runs four independent count queries. A write landing between two
// counts can show up in one and not the other; callers accept that window.
func (r *taskRepository) Stats(ctx context.Context) (*repositories.Stats, error) {
	counts := []struct {
		dest  *int64
		query string
	}{
		{query: `SELECT COUNT(*) FROM tasks`},
		{query: `SELECT COUNT(*) FROM tasks WHERE completed = TRUE`},
		{query: `SELECT COUNT(*) FROM tasks WHERE completed = FALSE`},
		{query: `SELECT COUNT(*) FROM tasks WHERE priority = 'high' AND completed = FALSE`},
	}

	var stats repositories.Stats
	counts[0].dest = &stats.Total
	counts[1].dest = &stats.Completed
	counts[2].dest = &stats.Pending
	counts[3].dest = &stats.HighPriority

	for _, c := range counts {
		if err := r.db.QueryRow(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("count tasks: %w", err)
		}
	}

	return &stats, nil
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Priority, &task.Category,
		&task.Completed, &task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
