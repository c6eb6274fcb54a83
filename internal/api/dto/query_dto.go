package dto

import (
	"github.com/spec-kit/insurance-crm/internal/domain"
)

// PageQuery carries the page/limit pair shared by every list endpoint.
type PageQuery struct {
	Page  *int `query:"page" validate:"omitnil,min=1,max=1000000" msg:"Page must be between 1 and 1000000"`
	Limit *int `query:"limit" validate:"omitnil,min=1,max=100" msg:"Limit must be between 1 and 100"`
}

// ToPage applies defaults. Call it only after validation.
func (q PageQuery) ToPage() domain.Page {
	page := domain.Page{Page: domain.DefaultPage, Limit: domain.DefaultLimit}
	if q.Page != nil {
		page.Page = *q.Page
	}
	if q.Limit != nil {
		page.Limit = *q.Limit
	}
	return page
}

// CompanyListQuery filters GET /companies.
type CompanyListQuery struct {
	PageQuery
	Search   *string               `query:"search"`
	Industry *string               `query:"industry"`
	Size     *domain.CompanySize   `query:"size" validate:"omitnil,oneof=startup small medium large enterprise"`
	Status   *domain.CompanyStatus `query:"status" validate:"omitnil,oneof=active inactive pending suspended"`
}

// ContactListQuery filters GET /contacts.
type ContactListQuery struct {
	PageQuery
	Search    *string `query:"search"`
	CompanyID *int64  `query:"companyId" validate:"omitnil,gt=0"`
	IsPrimary *bool   `query:"isPrimary"`
}

// PolicyListQuery filters GET /policies.
type PolicyListQuery struct {
	PageQuery
	Search     *string              `query:"search"`
	AccountID  *int64               `query:"accountId" validate:"omitnil,gt=0"`
	CompanyID  *int64               `query:"companyId" validate:"omitnil,gt=0"`
	Status     *domain.PolicyStatus `query:"status" validate:"omitnil,oneof=draft active expired cancelled"`
	PolicyType *string              `query:"policyType"`
}

// ClaimListQuery filters GET /claims.
type ClaimListQuery struct {
	PageQuery
	Search   *string             `query:"search"`
	PolicyID *int64              `query:"policyId" validate:"omitnil,gt=0"`
	Status   *domain.ClaimStatus `query:"status" validate:"omitnil,oneof=reported under_review approved denied closed"`
}

// TaskListQuery filters GET /tasks.
type TaskListQuery struct {
	PageQuery
	Search     *string              `query:"search"`
	Status     *domain.TaskStatus   `query:"status" validate:"omitnil,oneof=pending in_progress completed cancelled"`
	Priority   *domain.TaskPriority `query:"priority" validate:"omitnil,oneof=urgent high medium low"`
	AssignedTo *int64               `query:"assignedTo" validate:"omitnil,gt=0"`
	CompanyID  *int64               `query:"companyId" validate:"omitnil,gt=0"`
}

// LimitQuery bounds the dashboard feeds.
type LimitQuery struct {
	Limit *int `query:"limit" validate:"omitnil,min=1,max=100" msg:"Limit must be between 1 and 100"`
}

// ValueOr returns the requested limit or def.
func (q LimitQuery) ValueOr(def int) int {
	if q.Limit == nil {
		return def
	}
	return *q.Limit
}

// CompanyReportQuery filters GET /reports/companies.
type CompanyReportQuery struct {
	PageQuery
	Industry *string             `query:"industry"`
	Size     *domain.CompanySize `query:"size" validate:"omitnil,oneof=startup small medium large enterprise"`
	DateFrom *string             `query:"dateFrom" validate:"omitnil,iso8601"`
	DateTo   *string             `query:"dateTo" validate:"omitnil,iso8601"`
}
