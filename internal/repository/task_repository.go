package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// TaskRepository handles persistence for work items.
type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter, page domain.Page) (domain.PageResult[domain.Task], error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

// TaskFilter defines query params for task listing.
type TaskFilter struct {
	Search     *string
	Status     *domain.TaskStatus
	Priority   *domain.TaskPriority
	AssignedTo *int64
	CompanyID  *int64
}

func (f TaskFilter) filters() Filters {
	var fs Filters
	if f.Search != nil {
		fs = fs.Search(*f.Search, "title", "description")
	}
	fs = addIf(fs, "status", OpEq, f.Status)
	fs = addIf(fs, "priority", OpEq, f.Priority)
	fs = addIf(fs, "assigned_to", OpEq, f.AssignedTo)
	fs = addIf(fs, "company_id", OpEq, f.CompanyID)
	return fs
}

var taskColumns = []string{
	"task_id", "title", "description", "status", "priority", "due_date",
	"company_id", "assigned_to", "created_by", "created_at", "updated_at",
}

type taskRepository struct {
	db DB
}

// NewTaskRepository instantiates the repository.
func NewTaskRepository(db DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter, page domain.Page) (domain.PageResult[domain.Task], error) {
	rows := psql.Select(taskColumns...).From("task").OrderBy("due_date ASC NULLS LAST", "task_id ASC")
	total := psql.Select("COUNT(*)").From("task")
	return listPage[domain.Task](ctx, r.db, rows, total, filter.filters(), page)
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query, args, err := psql.Select(taskColumns...).From("task").Where(squirrel.Eq{"task_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return getOne[domain.Task](ctx, r.db, query, args...)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query, args, err := psql.Insert("task").
		Columns("title", "description", "status", "priority", "due_date", "company_id", "assigned_to", "created_by").
		Values(task.Title, task.Description, task.Status, task.Priority, task.DueDate,
			task.CompanyID, task.AssignedTo, task.CreatedBy).
		Suffix(returning(taskColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	return pgxscan.Get(ctx, r.db, task, query, args...)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query, args, err := psql.Update("task").
		SetMap(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"due_date":    task.DueDate,
			"company_id":  task.CompanyID,
			"assigned_to": task.AssignedTo,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"task_id": task.ID}).
		Suffix(returning(taskColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}
	return scanOne(ctx, r.db, task, query, args...)
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "task", "task_id", id)
}
