package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-crm/internal/api/dto"
	"github.com/spec-kit/insurance-crm/internal/repository"
	"github.com/spec-kit/insurance-crm/internal/service"
	"github.com/spec-kit/insurance-crm/internal/validation"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// DashboardHandler serves dashboard aggregates and reports.
type DashboardHandler struct {
	dashboard *service.DashboardService
	reports   *service.ReportService
	validator *validation.Validator
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService, reports *service.ReportService, validator *validation.Validator) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports, validator: validator}
}

// Metrics handles GET /dashboard/metrics.
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.dashboard.Metrics(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, metrics, "")
}

// RecentActivities handles GET /dashboard/recent-activities.
func (h *DashboardHandler) RecentActivities(c *fiber.Ctx) error {
	var q dto.LimitQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}
	activities, err := h.dashboard.RecentActivities(c.UserContext(), q.ValueOr(service.DefaultActivityLimit))
	if err != nil {
		return err
	}
	return ok(c, activities, "")
}

// UpcomingTasks handles GET /dashboard/upcoming-tasks.
func (h *DashboardHandler) UpcomingTasks(c *fiber.Ctx) error {
	var q dto.LimitQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}
	tasks, err := h.dashboard.UpcomingTasks(c.UserContext(), q.ValueOr(service.DefaultUpcomingTaskLimit))
	if err != nil {
		return err
	}
	return ok(c, tasks, "")
}

// CompanyReport handles GET /reports/companies.
func (h *DashboardHandler) CompanyReport(c *fiber.Ctx) error {
	var q dto.CompanyReportQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}
	filter := repository.ReportFilter{
		Industry: q.Industry,
		Size:     q.Size,
		DateFrom: reportBound(q.DateFrom, false),
		DateTo:   reportBound(q.DateTo, true),
	}
	result, err := h.reports.CompanyReport(c.UserContext(), filter, q.ToPage())
	if err != nil {
		return err
	}
	return c.JSON(apperrors.Paginated(result))
}

// reportBound turns a date filter into a timestamp. A plain date used as the
// upper bound covers the whole day.
func reportBound(s *string, upper bool) *time.Time {
	if s == nil {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t
	}
	t := toDate(*s).Time
	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t
}
