package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-crm/internal/api/dto"
	"github.com/spec-kit/insurance-crm/internal/repository"
	"github.com/spec-kit/insurance-crm/internal/service"
	"github.com/spec-kit/insurance-crm/internal/validation"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// TaskHandler serves work items.
type TaskHandler struct {
	service   *service.TaskService
	validator *validation.Validator
}

// NewTaskHandler constructs handler.
func NewTaskHandler(taskService *service.TaskService, validator *validation.Validator) *TaskHandler {
	return &TaskHandler{service: taskService, validator: validator}
}

// List handles GET /tasks.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	var q dto.TaskListQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}
	filter := repository.TaskFilter{
		Search:     q.Search,
		Status:     q.Status,
		Priority:   q.Priority,
		AssignedTo: q.AssignedTo,
		CompanyID:  q.CompanyID,
	}
	result, err := h.service.List(c.UserContext(), filter, q.ToPage())
	if err != nil {
		return err
	}
	return c.JSON(apperrors.Paginated(result))
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "task")
	if err != nil {
		return err
	}
	task, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, task, "")
}

// Create handles POST /tasks. The caller becomes the task's creator.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req dto.TaskRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	task, err := h.service.Create(c.UserContext(), principal.ID, taskInput(req))
	if err != nil {
		return err
	}
	return created(c, task, "Task created successfully")
}

// Update handles PUT /tasks/:id.
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "task")
	if err != nil {
		return err
	}
	var req dto.TaskRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	task, err := h.service.Update(c.UserContext(), id, taskInput(req))
	if err != nil {
		return err
	}
	return ok(c, task, "Task updated successfully")
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "task")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, nil, "Task deleted successfully")
}

func taskInput(req dto.TaskRequest) service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     toTimePtr(req.DueDate),
		CompanyID:   req.CompanyID,
		AssignedTo:  req.AssignedTo,
	}
}
