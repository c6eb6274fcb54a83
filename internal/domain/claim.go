package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatus enumerates the claim handling workflow.
type ClaimStatus string

const (
	ClaimStatusReported    ClaimStatus = "reported"
	ClaimStatusUnderReview ClaimStatus = "under_review"
	ClaimStatusApproved    ClaimStatus = "approved"
	ClaimStatusDenied      ClaimStatus = "denied"
	ClaimStatusClosed      ClaimStatus = "closed"
)

// Claim is a loss reported against a policy.
type Claim struct {
	ID               int64               `db:"claim_id" json:"claim_id"`
	PolicyID         int64               `db:"policy_id" json:"policy_id"`
	ClaimNumber      string              `db:"claim_number" json:"claim_number"`
	IncidentDate     Date                `db:"incident_date" json:"incident_date"`
	Description      *string             `db:"description" json:"description"`
	ClaimAmount      decimal.NullDecimal `db:"claim_amount" json:"claim_amount"`
	Status           ClaimStatus         `db:"status" json:"status"`
	AssignedAdjuster *int64              `db:"assigned_adjuster" json:"assigned_adjuster"`
	CreatedAt        time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at" json:"updated_at"`
}
