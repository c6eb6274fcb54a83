package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// ReportRepository builds tabular reports. Rows and totals are separate calls
// so callers can issue them concurrently.
type ReportRepository interface {
	CompanyReport(ctx context.Context, filter ReportFilter, page domain.Page) ([]domain.CompanyReportRow, error)
	CountCompanyReport(ctx context.Context, filter ReportFilter) (int64, error)
}

// ReportFilter narrows the company report. Only active companies are reported.
type ReportFilter struct {
	Industry *string
	Size     *domain.CompanySize
	DateFrom *time.Time
	DateTo   *time.Time
}

func (f ReportFilter) filters() Filters {
	fs := Filters{}.Add("c.status", OpEq, domain.CompanyStatusActive)
	fs = addIf(fs, "c.primary_industry", OpILike, f.Industry)
	fs = addIf(fs, "c.company_size", OpEq, f.Size)
	fs = addIf(fs, "c.created_at", OpGte, f.DateFrom)
	fs = addIf(fs, "c.created_at", OpLte, f.DateTo)
	return fs
}

// Aggregates are computed per company in subqueries so that joining accounts,
// policies and tasks together cannot multiply the premium sum.
const (
	reportProfileJoin = "business_profile bp ON bp.company_id = c.company_id AND bp.is_current = true"
	reportAccountJoin = `(SELECT company_id, COUNT(*) AS total_accounts, SUM(total_premium) AS total_premium_value
        FROM policy_account GROUP BY company_id) acc ON acc.company_id = c.company_id`
	reportPolicyJoin = `(SELECT pa.company_id, COUNT(*) AS total_policies
        FROM policy p JOIN policy_account pa ON pa.account_id = p.account_id
        WHERE p.status = 'active' GROUP BY pa.company_id) pol ON pol.company_id = c.company_id`
	reportTaskJoin = `(SELECT company_id, COUNT(*) AS open_tasks
        FROM task WHERE status IN ('pending', 'in_progress') GROUP BY company_id) ot ON ot.company_id = c.company_id`
)

type reportRepository struct {
	db DB
}

// NewReportRepository instantiates the repository.
func NewReportRepository(db DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CompanyReport(ctx context.Context, filter ReportFilter, page domain.Page) ([]domain.CompanyReportRow, error) {
	columns := append(prefixed("c", companyColumns),
		"bp.employee_count",
		"bp.annual_revenue",
		"COALESCE(acc.total_accounts, 0) AS total_accounts",
		"COALESCE(pol.total_policies, 0) AS total_policies",
		"COALESCE(acc.total_premium_value, 0) AS total_premium_value",
		"COALESCE(ot.open_tasks, 0) AS open_tasks",
	)
	sb := psql.Select(columns...).
		From("company c").
		LeftJoin(reportProfileJoin).
		LeftJoin(reportAccountJoin).
		LeftJoin(reportPolicyJoin).
		LeftJoin(reportTaskJoin).
		OrderBy("c.created_at DESC", "c.company_id DESC")
	sb, err := filter.filters().apply(sb)
	if err != nil {
		return nil, err
	}
	query, args, err := paginate(sb, page).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building report query: %w", err)
	}
	rows := []domain.CompanyReportRow{}
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("scanning report rows: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) CountCompanyReport(ctx context.Context, filter ReportFilter) (int64, error) {
	sb, err := filter.filters().apply(psql.Select("COUNT(*)").From("company c"))
	if err != nil {
		return 0, err
	}
	return count(ctx, r.db, sb)
}
