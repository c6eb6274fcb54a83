package http

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// timeArg matches a *time.Time argument denoting the same instant.
type timeArg time.Time

func (a timeArg) Match(v any) bool {
	t, ok := v.(*time.Time)
	return ok && t != nil && t.Equal(time.Time(a))
}

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

func TestTaskRoutes(t *testing.T) {
	t.Run("Should let any staff role create a task owned by the caller", func(t *testing.T) {
		srv := newTestServer(t)
		due := time.Date(2025, time.July, 1, 9, 30, 0, 0, time.UTC)
		now := time.Now()
		srv.db.ExpectQuery(`INSERT INTO task \(title,description,status,priority,due_date,company_id,assigned_to,created_by\)`).
			WithArgs("Call broker", pgxmock.AnyArg(), domain.TaskStatusPending, domain.TaskPriorityHigh,
				timeArg(due), pgxmock.AnyArg(), pgxmock.AnyArg(), int64Ptr(adjusterID)).
			WillReturnRows(srv.db.NewRows([]string{"task_id", "title", "status", "priority", "created_at", "updated_at"}).
				AddRow(int64(4), "Call broker", domain.TaskStatusPending, domain.TaskPriorityHigh, now, now))

		status, body := srv.do(t, http.MethodPost, "/api/v1/tasks", adjusterID,
			`{"title":"  Call broker ","priority":"high","due_date":"2025-07-01T09:30:00Z"}`)

		require.Equal(t, http.StatusCreated, status, body)
		assert.Equal(t, "Task created successfully", body["message"])
		assert.EqualValues(t, 4, body["data"].(map[string]any)["task_id"])
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
	t.Run("Should read a plain due date as midnight UTC", func(t *testing.T) {
		srv := newTestServer(t)
		now := time.Now()
		srv.db.ExpectQuery(`INSERT INTO task`).
			WithArgs("Renewal", pgxmock.AnyArg(), domain.TaskStatusPending, domain.TaskPriorityMedium,
				timeArg(time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)), pgxmock.AnyArg(), pgxmock.AnyArg(), int64Ptr(agentID)).
			WillReturnRows(srv.db.NewRows([]string{"task_id", "title", "created_at", "updated_at"}).
				AddRow(int64(5), "Renewal", now, now))

		status, body := srv.do(t, http.MethodPost, "/api/v1/tasks", agentID, `{"title":"Renewal","due_date":"2025-08-15"}`)

		require.Equal(t, http.StatusCreated, status, body)
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
	t.Run("Should reject a malformed due date before any query runs", func(t *testing.T) {
		srv := newTestServer(t)

		status, body := srv.do(t, http.MethodPost, "/api/v1/tasks", agentID, `{"title":"Renewal","due_date":"next week"}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "due_date", body["errors"].([]any)[0].(map[string]any)["field"])
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
	t.Run("Should forbid an agent from deleting a task", func(t *testing.T) {
		srv := newTestServer(t)

		status, body := srv.do(t, http.MethodDelete, "/api/v1/tasks/4", agentID, "")

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Insufficient permissions", body["message"])
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
	t.Run("Should let an admin delete a task", func(t *testing.T) {
		srv := newTestServer(t)
		srv.db.ExpectExec(`DELETE FROM task WHERE task_id = \$1`).
			WithArgs(int64(4)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		status, body := srv.do(t, http.MethodDelete, "/api/v1/tasks/4", adminID, "")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Task deleted successfully", body["message"])
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
	t.Run("Should report a missing task on delete", func(t *testing.T) {
		srv := newTestServer(t)
		srv.db.ExpectExec(`DELETE FROM task WHERE task_id = \$1`).
			WithArgs(int64(404)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		status, body := srv.do(t, http.MethodDelete, "/api/v1/tasks/404", adminID, "")

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Task not found", body["message"])
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
}

func TestContactRoutes(t *testing.T) {
	t.Run("Should let an agent add a contact", func(t *testing.T) {
		srv := newTestServer(t)
		now := time.Now()
		srv.db.ExpectQuery(`INSERT INTO contact \(company_id,first_name,last_name,email,phone,job_title,is_primary\)`).
			WithArgs(int64(5), "Jane", "Doe", stringPtr("jane@acme.test"), pgxmock.AnyArg(), pgxmock.AnyArg(), true).
			WillReturnRows(srv.db.NewRows([]string{"contact_id", "company_id", "first_name", "last_name", "is_primary", "created_at", "updated_at"}).
				AddRow(int64(9), int64(5), "Jane", "Doe", true, now, now))

		status, body := srv.do(t, http.MethodPost, "/api/v1/contacts", agentID,
			`{"company_id":5,"first_name":"Jane","last_name":"Doe","email":"Jane@Acme.test","is_primary":true}`)

		require.Equal(t, http.StatusCreated, status, body)
		assert.EqualValues(t, 9, body["data"].(map[string]any)["contact_id"])
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
	t.Run("Should forbid an agent from deleting a contact", func(t *testing.T) {
		srv := newTestServer(t)

		status, _ := srv.do(t, http.MethodDelete, "/api/v1/contacts/9", agentID, "")

		assert.Equal(t, http.StatusForbidden, status)
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
	t.Run("Should forbid a claims adjuster from adding a contact", func(t *testing.T) {
		srv := newTestServer(t)

		status, _ := srv.do(t, http.MethodPost, "/api/v1/contacts", adjusterID,
			`{"company_id":5,"first_name":"Jane","last_name":"Doe"}`)

		assert.Equal(t, http.StatusForbidden, status)
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
	t.Run("Should filter contacts by company and primary flag", func(t *testing.T) {
		srv := newTestServer(t)
		srv.db.ExpectQuery(`SELECT COUNT\(\*\) FROM contact WHERE company_id = \$1 AND is_primary = \$2`).
			WithArgs(int64(5), true).
			WillReturnRows(srv.db.NewRows([]string{"count"}).AddRow(int64(1)))
		srv.db.ExpectQuery(`SELECT (.+) FROM contact WHERE company_id = \$1 AND is_primary = \$2 ORDER BY last_name ASC, first_name ASC, contact_id ASC LIMIT 20 OFFSET 0`).
			WithArgs(int64(5), true).
			WillReturnRows(srv.db.NewRows([]string{"contact_id", "company_id", "first_name", "last_name", "is_primary"}).
				AddRow(int64(9), int64(5), "Jane", "Doe", true))

		status, body := srv.do(t, http.MethodGet, "/api/v1/contacts?companyId=5&isPrimary=true", adjusterID, "")

		require.Equal(t, http.StatusOK, status, body)
		require.Len(t, body["data"], 1)
		assert.EqualValues(t, 1, body["pagination"].(map[string]any)["total"])
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
	t.Run("Should name the rule a field actually failed", func(t *testing.T) {
		srv := newTestServer(t)
		long := strings.Repeat("x", 101)

		status, body := srv.do(t, http.MethodPost, "/api/v1/contacts", agentID,
			`{"company_id":5,"first_name":"`+long+`","last_name":"Doe"}`)

		assert.Equal(t, http.StatusBadRequest, status)
		errs := body["errors"].([]any)
		require.Len(t, errs, 1)
		assert.Equal(t, "first_name must be at most 100 characters", errs[0].(map[string]any)["message"])
		assert.NoError(t, srv.db.ExpectationsWereMet())
	})
}
