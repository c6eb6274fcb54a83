package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/repository"
)

// TaskService manages staff work items.
type TaskService struct {
	tasks repository.TaskRepository
}

// TaskInput describes a task payload. Nil optional fields keep their stored
// value on update.
type TaskInput struct {
	Title       string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	CompanyID   *int64
	AssignedTo  *int64
}

// NewTaskService constructs the service.
func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) List(ctx context.Context, filter repository.TaskFilter, page domain.Page) (domain.PageResult[domain.Task], error) {
	result, err := s.tasks.List(ctx, filter, page)
	if err != nil {
		return domain.PageResult[domain.Task]{}, notFoundOr(err, "Task")
	}
	return result, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Task")
	}
	return task, nil
}

// Create stores a task owned by creatorID.
func (s *TaskService) Create(ctx context.Context, creatorID int64, input TaskInput) (*domain.Task, error) {
	task := &domain.Task{
		Status:    domain.TaskStatusPending,
		Priority:  domain.TaskPriorityMedium,
		CreatedBy: &creatorID,
	}
	input.applyTo(task)
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, notFoundOr(err, "Task")
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, input TaskInput) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Task")
	}
	input.applyTo(task)
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, notFoundOr(err, "Task")
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Task")
	}
	return nil
}

func (in TaskInput) applyTo(t *domain.Task) {
	t.Title = strings.TrimSpace(in.Title)
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.CompanyID != nil {
		t.CompanyID = in.CompanyID
	}
	if in.AssignedTo != nil {
		t.AssignedTo = in.AssignedTo
	}
}
