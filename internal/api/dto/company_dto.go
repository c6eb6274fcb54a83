package dto

import (
	"encoding/json"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// CompanyRequest payload for create and update.
type CompanyRequest struct {
	CompanyName     string                `json:"company_name" validate:"required" msg:"Company name is required"`
	LegalName       *string               `json:"legal_name"`
	TaxID           *string               `json:"tax_id"`
	PrimaryIndustry *string               `json:"primary_industry"`
	NAICSCode       *string               `json:"naics_code" validate:"omitnil,max=10"`
	EstablishedDate *string               `json:"established_date" validate:"omitnil,iso8601"`
	CompanySize     *domain.CompanySize   `json:"company_size" validate:"omitnil,oneof=startup small medium large enterprise"`
	Status          *domain.CompanyStatus `json:"status" validate:"omitnil,oneof=active inactive pending suspended"`
}

// BusinessProfileRequest payload. Omitted fields carry over from the
// current profile.
type BusinessProfileRequest struct {
	EmployeeCount       *int           `json:"employee_count" validate:"omitnil,min=0"`
	AnnualRevenue       *json.Number   `json:"annual_revenue" validate:"omitnil,decimal2"`
	BusinessDescription *string        `json:"business_description"`
	Locations           map[string]any `json:"locations"`
	Assets              map[string]any `json:"assets"`
	Operations          map[string]any `json:"operations"`
}

// RiskFactorRequest payload.
type RiskFactorRequest struct {
	RiskCategory    string               `json:"risk_category" validate:"required" msg:"Risk category is required"`
	RiskDescription *string              `json:"risk_description"`
	SeverityLevel   *domain.RiskSeverity `json:"severity_level" validate:"omitnil,oneof=low medium high critical"`
	ImpactScore     *json.Number         `json:"impact_score" validate:"omitnil,decimal2"`
}

// PolicyAccountRequest payload.
type PolicyAccountRequest struct {
	AccountNumber string               `json:"account_number" validate:"required,max=50" msg_required:"Account number is required"`
	Status        *domain.PolicyStatus `json:"status" validate:"omitnil,oneof=draft active expired cancelled"`
	TotalPremium  *json.Number         `json:"total_premium" validate:"omitnil,decimal2"`
}
