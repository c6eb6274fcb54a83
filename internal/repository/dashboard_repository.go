package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// DashboardRepository runs the read-only aggregates behind the dashboard.
type DashboardRepository interface {
	Metrics(ctx context.Context) (*domain.DashboardMetrics, error)
	RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error)
	UpcomingTasks(ctx context.Context, limit int) ([]domain.UpcomingTask, error)
}

// Revenue is the premium of active accounts opened in the calendar month.
const metricsQuery = `
WITH company_stats AS (
    SELECT COUNT(*) AS total_companies
    FROM company
    WHERE status = 'active'
),
policy_stats AS (
    SELECT COUNT(*) AS active_policies,
           COUNT(*) FILTER (WHERE p.expiration_date <= CURRENT_DATE + INTERVAL '30 days') AS upcoming_renewals
    FROM policy p
    JOIN policy_account pa ON p.account_id = pa.account_id
    WHERE p.status = 'active'
),
task_stats AS (
    SELECT COUNT(*) AS tasks_due
    FROM task
    WHERE status IN ('pending', 'in_progress')
      AND due_date <= CURRENT_DATE + INTERVAL '7 days'
),
revenue_stats AS (
    SELECT COALESCE(SUM(total_premium) FILTER (
               WHERE DATE_TRUNC('month', created_at) = DATE_TRUNC('month', CURRENT_DATE)), 0) AS revenue_this_month,
           COALESCE(SUM(total_premium) FILTER (
               WHERE DATE_TRUNC('month', created_at) = DATE_TRUNC('month', CURRENT_DATE - INTERVAL '1 month')), 0) AS revenue_previous_month
    FROM policy_account
    WHERE status = 'active'
)
SELECT cs.total_companies, ps.active_policies, ps.upcoming_renewals, ts.tasks_due,
       rs.revenue_this_month, rs.revenue_previous_month
FROM company_stats cs, policy_stats ps, task_stats ts, revenue_stats rs`

// Each source contributes at most five rows before the merged feed is cut to $1.
const recentActivitiesQuery = `
(SELECT 'company' AS type, 'Company created: ' || company_name AS description,
        created_at AS activity_date, company_id::text AS reference_id
 FROM company ORDER BY created_at DESC LIMIT 5)
UNION ALL
(SELECT 'policy' AS type, 'Policy created: ' || policy_number AS description,
        created_at AS activity_date, policy_id::text AS reference_id
 FROM policy ORDER BY created_at DESC LIMIT 5)
UNION ALL
(SELECT 'task' AS type, 'Task created: ' || title AS description,
        created_at AS activity_date, task_id::text AS reference_id
 FROM task ORDER BY created_at DESC LIMIT 5)
ORDER BY activity_date DESC
LIMIT $1`

const upcomingTasksQuery = `
SELECT t.task_id, t.title, t.description, t.status, t.priority, t.due_date,
       t.company_id, t.assigned_to, t.created_by, t.created_at, t.updated_at,
       c.company_name,
       su.first_name || ' ' || su.last_name AS assigned_to_name
FROM task t
LEFT JOIN company c ON t.company_id = c.company_id
LEFT JOIN staff_user su ON t.assigned_to = su.staff_id
WHERE t.status IN ('pending', 'in_progress')
ORDER BY CASE t.priority
             WHEN 'urgent' THEN 1
             WHEN 'high' THEN 2
             WHEN 'medium' THEN 3
             ELSE 4
         END,
         t.due_date ASC NULLS LAST
LIMIT $1`

type dashboardRepository struct {
	db DB
}

// NewDashboardRepository instantiates the repository.
func NewDashboardRepository(db DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	var metrics domain.DashboardMetrics
	if err := pgxscan.Get(ctx, r.db, &metrics, metricsQuery); err != nil {
		return nil, fmt.Errorf("computing dashboard metrics: %w", err)
	}
	return &metrics, nil
}

func (r *dashboardRepository) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	activities := []domain.Activity{}
	if err := pgxscan.Select(ctx, r.db, &activities, recentActivitiesQuery, limit); err != nil {
		return nil, fmt.Errorf("fetching recent activities: %w", err)
	}
	return activities, nil
}

func (r *dashboardRepository) UpcomingTasks(ctx context.Context, limit int) ([]domain.UpcomingTask, error) {
	tasks := []domain.UpcomingTask{}
	if err := pgxscan.Select(ctx, r.db, &tasks, upcomingTasksQuery, limit); err != nil {
		return nil, fmt.Errorf("fetching upcoming tasks: %w", err)
	}
	return tasks, nil
}
