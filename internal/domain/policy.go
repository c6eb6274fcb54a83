package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PolicyStatus enumerates lifecycle states shared by policies and accounts.
type PolicyStatus string

const (
	PolicyStatusDraft     PolicyStatus = "draft"
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusExpired   PolicyStatus = "expired"
	PolicyStatusCancelled PolicyStatus = "cancelled"
)

// PolicyAccount groups the policies a company holds and carries the billed premium.
type PolicyAccount struct {
	ID            int64           `db:"account_id" json:"account_id"`
	CompanyID     int64           `db:"company_id" json:"company_id"`
	AccountNumber string          `db:"account_number" json:"account_number"`
	Status        PolicyStatus    `db:"status" json:"status"`
	TotalPremium  decimal.Decimal `db:"total_premium" json:"total_premium"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Policy is a single contract under a policy account.
type Policy struct {
	ID             int64               `db:"policy_id" json:"policy_id"`
	AccountID      int64               `db:"account_id" json:"account_id"`
	PolicyNumber   string              `db:"policy_number" json:"policy_number"`
	PolicyType     string              `db:"policy_type" json:"policy_type"`
	Carrier        *string             `db:"carrier" json:"carrier"`
	Premium        decimal.Decimal     `db:"premium" json:"premium"`
	CoverageLimit  decimal.NullDecimal `db:"coverage_limit" json:"coverage_limit"`
	EffectiveDate  Date                `db:"effective_date" json:"effective_date"`
	ExpirationDate Date                `db:"expiration_date" json:"expiration_date"`
	Status         PolicyStatus        `db:"status" json:"status"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at" json:"updated_at"`
}
