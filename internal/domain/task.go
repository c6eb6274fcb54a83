package domain

import "time"

// TaskStatus enumerates lifecycle states for work items.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority enumerates urgency.
type TaskPriority string

const (
	TaskPriorityUrgent TaskPriority = "urgent"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// PriorityOrder lists priorities from most to least urgent.
var PriorityOrder = []TaskPriority{TaskPriorityUrgent, TaskPriorityHigh, TaskPriorityMedium}

// Rank returns the sort rank of a priority: urgent=1, high=2, medium=3, anything else 4.
func (p TaskPriority) Rank() int {
	for i, candidate := range PriorityOrder {
		if p == candidate {
			return i + 1
		}
	}
	return len(PriorityOrder) + 1
}

// Task is a work item optionally tied to a company and an assignee.
type Task struct {
	ID          int64        `db:"task_id" json:"task_id"`
	Title       string       `db:"title" json:"title"`
	Description *string      `db:"description" json:"description"`
	Status      TaskStatus   `db:"status" json:"status"`
	Priority    TaskPriority `db:"priority" json:"priority"`
	DueDate     *time.Time   `db:"due_date" json:"due_date"`
	CompanyID   *int64       `db:"company_id" json:"company_id"`
	AssignedTo  *int64       `db:"assigned_to" json:"assigned_to"`
	CreatedBy   *int64       `db:"created_by" json:"created_by"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// LessUrgent orders tasks by priority rank, then by due date ascending with
// undated tasks last.
func LessUrgent(a, b Task) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	switch {
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}
