package dto

import (
	"encoding/json"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// ContactRequest payload.
type ContactRequest struct {
	CompanyID int64   `json:"company_id" validate:"required,gt=0" msg_required:"Company ID is required" msg_gt:"Company ID must be a positive integer"`
	FirstName string  `json:"first_name" validate:"required,max=100" msg_required:"First name is required"`
	LastName  string  `json:"last_name" validate:"required,max=100" msg_required:"Last name is required"`
	Email     *string `json:"email" validate:"omitnil,email" msg:"Valid email is required"`
	Phone     *string `json:"phone" validate:"omitnil,max=50"`
	JobTitle  *string `json:"job_title" validate:"omitnil,max=100"`
	IsPrimary *bool   `json:"is_primary"`
}

// PolicyRequest payload.
type PolicyRequest struct {
	AccountID      int64                `json:"account_id" validate:"required,gt=0" msg_required:"Account ID is required" msg_gt:"Account ID must be a positive integer"`
	PolicyNumber   string               `json:"policy_number" validate:"required,max=50" msg_required:"Policy number is required"`
	PolicyType     string               `json:"policy_type" validate:"required,max=100" msg_required:"Policy type is required"`
	Carrier        *string              `json:"carrier"`
	Premium        json.Number          `json:"premium" validate:"required,decimal2"`
	CoverageLimit  *json.Number         `json:"coverage_limit" validate:"omitnil,decimal2"`
	EffectiveDate  string               `json:"effective_date" validate:"required,iso8601"`
	ExpirationDate string               `json:"expiration_date" validate:"required,iso8601"`
	Status         *domain.PolicyStatus `json:"status" validate:"omitnil,oneof=draft active expired cancelled"`
}

// ClaimRequest payload.
type ClaimRequest struct {
	PolicyID         int64               `json:"policy_id" validate:"required,gt=0" msg_required:"Policy ID is required" msg_gt:"Policy ID must be a positive integer"`
	ClaimNumber      string              `json:"claim_number" validate:"required,max=50" msg_required:"Claim number is required"`
	IncidentDate     string              `json:"incident_date" validate:"required,iso8601"`
	Description      *string             `json:"description"`
	ClaimAmount      *json.Number        `json:"claim_amount" validate:"omitnil,decimal2"`
	Status           *domain.ClaimStatus `json:"status" validate:"omitnil,oneof=reported under_review approved denied closed"`
	AssignedAdjuster *int64              `json:"assigned_adjuster" validate:"omitnil,gt=0"`
}

// TaskRequest payload.
type TaskRequest struct {
	Title       string               `json:"title" validate:"required,max=255" msg_required:"Title is required"`
	Description *string              `json:"description"`
	Status      *domain.TaskStatus   `json:"status" validate:"omitnil,oneof=pending in_progress completed cancelled"`
	Priority    *domain.TaskPriority `json:"priority" validate:"omitnil,oneof=urgent high medium low"`
	DueDate     *string              `json:"due_date" validate:"omitnil,iso8601"`
	CompanyID   *int64               `json:"company_id" validate:"omitnil,gt=0"`
	AssignedTo  *int64               `json:"assigned_to" validate:"omitnil,gt=0"`
}
