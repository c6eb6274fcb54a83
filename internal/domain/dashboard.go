package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardMetrics is the headline aggregate shown on the dashboard.
type DashboardMetrics struct {
	TotalCompanies       int64           `db:"total_companies" json:"totalCompanies"`
	ActivePolicies       int64           `db:"active_policies" json:"activePolicies"`
	UpcomingRenewals     int64           `db:"upcoming_renewals" json:"upcomingRenewals"`
	TasksDue             int64           `db:"tasks_due" json:"tasksDue"`
	RevenueThisMonth     decimal.Decimal `db:"revenue_this_month" json:"revenueThisMonth"`
	RevenuePreviousMonth decimal.Decimal `db:"revenue_previous_month" json:"revenuePreviousMonth"`
	RevenueGrowth        decimal.Decimal `db:"-" json:"revenueGrowth"`
}

// RevenueGrowth returns month over month growth in percent rounded to two
// decimals. A zero or negative previous month yields zero.
func RevenueGrowth(current, previous decimal.Decimal) decimal.Decimal {
	if previous.Sign() <= 0 {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
}

// ActivityType identifies the source of a recent activity entry.
type ActivityType string

const (
	ActivityCompany ActivityType = "company"
	ActivityPolicy  ActivityType = "policy"
	ActivityTask    ActivityType = "task"
)

// Activity is one entry of the merged recent activity feed.
type Activity struct {
	Type         ActivityType `db:"type" json:"type"`
	Description  string       `db:"description" json:"description"`
	ActivityDate time.Time    `db:"activity_date" json:"activity_date"`
	ReferenceID  string       `db:"reference_id" json:"reference_id"`
}

// UpcomingTask is an open task enriched with its company and assignee names.
type UpcomingTask struct {
	Task
	CompanyName    *string `db:"company_name" json:"company_name"`
	AssignedToName *string `db:"assigned_to_name" json:"assigned_to_name"`
}

// CompanyReportRow is a company with its aggregated book of business.
type CompanyReportRow struct {
	Company
	EmployeeCount     *int                `db:"employee_count" json:"employee_count"`
	AnnualRevenue     decimal.NullDecimal `db:"annual_revenue" json:"annual_revenue"`
	TotalAccounts     int64               `db:"total_accounts" json:"total_accounts"`
	TotalPolicies     int64               `db:"total_policies" json:"total_policies"`
	TotalPremiumValue decimal.Decimal     `db:"total_premium_value" json:"total_premium_value"`
	OpenTasks         int64               `db:"open_tasks" json:"open_tasks"`
}
