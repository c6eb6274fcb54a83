package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/repository"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// PolicyService manages policies held under policy accounts.
type PolicyService struct {
	policies repository.PolicyRepository
	accounts repository.PolicyAccountRepository
}

// PolicyInput describes a policy payload. Nil optional fields keep their
// stored value on update.
type PolicyInput struct {
	AccountID      int64
	PolicyNumber   string
	PolicyType     string
	Carrier        *string
	Premium        decimal.Decimal
	CoverageLimit  *decimal.Decimal
	EffectiveDate  domain.Date
	ExpirationDate domain.Date
	Status         *domain.PolicyStatus
}

// NewPolicyService constructs the service.
func NewPolicyService(policies repository.PolicyRepository, accounts repository.PolicyAccountRepository) *PolicyService {
	return &PolicyService{policies: policies, accounts: accounts}
}

func (s *PolicyService) List(ctx context.Context, filter repository.PolicyFilter, page domain.Page) (domain.PageResult[domain.Policy], error) {
	result, err := s.policies.List(ctx, filter, page)
	if err != nil {
		return domain.PageResult[domain.Policy]{}, notFoundOr(err, "Policy")
	}
	return result, nil
}

func (s *PolicyService) Get(ctx context.Context, id int64) (*domain.Policy, error) {
	policy, err := s.policies.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Policy")
	}
	return policy, nil
}

// Create stores a policy under an existing account.
func (s *PolicyService) Create(ctx context.Context, input PolicyInput) (*domain.Policy, error) {
	if _, err := s.accounts.GetByID(ctx, input.AccountID); err != nil {
		return nil, notFoundOr(err, "Policy account")
	}
	policy := &domain.Policy{Status: domain.PolicyStatusActive}
	if err := input.applyTo(policy); err != nil {
		return nil, err
	}
	if err := s.policies.Create(ctx, policy); err != nil {
		return nil, notFoundOr(err, "Policy")
	}
	return policy, nil
}

func (s *PolicyService) Update(ctx context.Context, id int64, input PolicyInput) (*domain.Policy, error) {
	policy, err := s.policies.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Policy")
	}
	if input.AccountID != 0 && input.AccountID != policy.AccountID {
		if _, err := s.accounts.GetByID(ctx, input.AccountID); err != nil {
			return nil, notFoundOr(err, "Policy account")
		}
	}
	if err := input.applyTo(policy); err != nil {
		return nil, err
	}
	if err := s.policies.Update(ctx, policy); err != nil {
		return nil, notFoundOr(err, "Policy")
	}
	return policy, nil
}

func (s *PolicyService) Delete(ctx context.Context, id int64) error {
	if err := s.policies.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Policy")
	}
	return nil
}

func (in PolicyInput) applyTo(p *domain.Policy) error {
	if !in.ExpirationDate.After(in.EffectiveDate.Time) {
		return apperrors.NewValidationError([]apperrors.FieldError{{
			Field:   "expiration_date",
			Message: "Expiration date must be after effective date",
		}})
	}
	if in.AccountID != 0 {
		p.AccountID = in.AccountID
	}
	p.PolicyNumber = strings.TrimSpace(in.PolicyNumber)
	p.PolicyType = strings.TrimSpace(in.PolicyType)
	p.Premium = in.Premium
	p.EffectiveDate = in.EffectiveDate
	p.ExpirationDate = in.ExpirationDate
	if in.Carrier != nil {
		p.Carrier = in.Carrier
	}
	if in.CoverageLimit != nil {
		p.CoverageLimit = decimal.NewNullDecimal(*in.CoverageLimit)
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	return nil
}
