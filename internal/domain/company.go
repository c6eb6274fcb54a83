package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySize classifies a company by headcount band.
type CompanySize string

const (
	CompanySizeStartup    CompanySize = "startup"
	CompanySizeSmall      CompanySize = "small"
	CompanySizeMedium     CompanySize = "medium"
	CompanySizeLarge      CompanySize = "large"
	CompanySizeEnterprise CompanySize = "enterprise"
)

// CompanyStatus tracks the commercial relationship with a company.
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusInactive  CompanyStatus = "inactive"
	CompanyStatusPending   CompanyStatus = "pending"
	CompanyStatusSuspended CompanyStatus = "suspended"
)

// Company is the insured business entity.
type Company struct {
	ID              int64         `db:"company_id" json:"company_id"`
	CompanyName     string        `db:"company_name" json:"company_name"`
	LegalName       *string       `db:"legal_name" json:"legal_name"`
	TaxID           *string       `db:"tax_id" json:"tax_id"`
	PrimaryIndustry *string       `db:"primary_industry" json:"primary_industry"`
	NAICSCode       *string       `db:"naics_code" json:"naics_code"`
	EstablishedDate *Date         `db:"established_date" json:"established_date"`
	CompanySize     *CompanySize  `db:"company_size" json:"company_size"`
	Status          CompanyStatus `db:"status" json:"status"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// BusinessProfile is a versioned snapshot of a company's operations. Only one
// row per company carries IsCurrent.
type BusinessProfile struct {
	ID                  int64               `db:"profile_id" json:"profile_id"`
	CompanyID           int64               `db:"company_id" json:"company_id"`
	EmployeeCount       *int                `db:"employee_count" json:"employee_count"`
	AnnualRevenue       decimal.NullDecimal `db:"annual_revenue" json:"annual_revenue"`
	BusinessDescription *string             `db:"business_description" json:"business_description"`
	Locations           map[string]any      `db:"locations" json:"locations"`
	Assets              map[string]any      `db:"assets" json:"assets"`
	Operations          map[string]any      `db:"operations" json:"operations"`
	IsCurrent           bool                `db:"is_current" json:"is_current"`
	CreatedAt           time.Time           `db:"created_at" json:"created_at"`
}

// RiskSeverity grades a risk factor.
type RiskSeverity string

const (
	RiskSeverityLow      RiskSeverity = "low"
	RiskSeverityMedium   RiskSeverity = "medium"
	RiskSeverityHigh     RiskSeverity = "high"
	RiskSeverityCritical RiskSeverity = "critical"
)

// RiskFactor is an underwriting concern attached to a company.
type RiskFactor struct {
	ID              int64               `db:"risk_factor_id" json:"risk_factor_id"`
	CompanyID       int64               `db:"company_id" json:"company_id"`
	RiskCategory    string              `db:"risk_category" json:"risk_category"`
	RiskDescription *string             `db:"risk_description" json:"risk_description"`
	SeverityLevel   RiskSeverity        `db:"severity_level" json:"severity_level"`
	ImpactScore     decimal.NullDecimal `db:"impact_score" json:"impact_score"`
	IdentifiedBy    *int64              `db:"identified_by" json:"identified_by"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
}

// ChangeEventType names an audited mutation on a company.
type ChangeEventType string

const (
	ChangeCompanyCreated  ChangeEventType = "company_created"
	ChangeCompanyUpdated  ChangeEventType = "company_updated"
	ChangeCompanyDeleted  ChangeEventType = "company_deleted"
	ChangeProfileUpdated  ChangeEventType = "business_profile_updated"
	ChangeRiskFactorAdded ChangeEventType = "risk_factor_added"
	ChangeAccountCreated  ChangeEventType = "policy_account_created"
)

// ChangeEvent is an immutable audit trail entry for a company.
type ChangeEvent struct {
	ID          int64           `db:"event_id" json:"event_id"`
	CompanyID   int64           `db:"company_id" json:"company_id"`
	EventType   ChangeEventType `db:"event_type" json:"event_type"`
	Description string          `db:"description" json:"description"`
	OldValue    map[string]any  `db:"old_value" json:"old_value"`
	NewValue    map[string]any  `db:"new_value" json:"new_value"`
	ChangedBy   *int64          `db:"changed_by" json:"changed_by"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
