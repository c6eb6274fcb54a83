package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/repository"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

const (
	DefaultActivityLimit     = 10
	DefaultUpcomingTaskLimit = 5
)

// DashboardService serves the dashboard aggregates.
type DashboardService struct {
	dashboard repository.DashboardRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(dashboard repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboard: dashboard}
}

// Metrics returns the headline counts with month over month revenue growth.
func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	metrics, err := s.dashboard.Metrics(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	metrics.RevenueGrowth = domain.RevenueGrowth(metrics.RevenueThisMonth, metrics.RevenuePreviousMonth)
	return metrics, nil
}

// RecentActivities returns the merged creation feed, newest first. Order
// between entries with equal timestamps is unspecified.
func (s *DashboardService) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	activities, err := s.dashboard.RecentActivities(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return activities, nil
}

// UpcomingTasks returns open tasks, most urgent first, then by due date.
func (s *DashboardService) UpcomingTasks(ctx context.Context, limit int) ([]domain.UpcomingTask, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	tasks, err := s.dashboard.UpcomingTasks(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return domain.LessUrgent(tasks[i].Task, tasks[j].Task)
	})
	return tasks, nil
}

func checkLimit(limit int) error {
	if limit < 1 || limit > domain.MaxLimit {
		return apperrors.NewValidationError([]apperrors.FieldError{{
			Field:   "limit",
			Message: fmt.Sprintf("limit must be between 1 and %d", domain.MaxLimit),
		}})
	}
	return nil
}
