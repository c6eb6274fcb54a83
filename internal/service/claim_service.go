package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/repository"
)

// ClaimService manages losses reported against policies.
type ClaimService struct {
	claims   repository.ClaimRepository
	policies repository.PolicyRepository
}

// ClaimInput describes a claim payload. Nil optional fields keep their
// stored value on update.
type ClaimInput struct {
	PolicyID         int64
	ClaimNumber      string
	IncidentDate     domain.Date
	Description      *string
	ClaimAmount      *decimal.Decimal
	Status           *domain.ClaimStatus
	AssignedAdjuster *int64
}

// NewClaimService constructs the service.
func NewClaimService(claims repository.ClaimRepository, policies repository.PolicyRepository) *ClaimService {
	return &ClaimService{claims: claims, policies: policies}
}

func (s *ClaimService) List(ctx context.Context, filter repository.ClaimFilter, page domain.Page) (domain.PageResult[domain.Claim], error) {
	result, err := s.claims.List(ctx, filter, page)
	if err != nil {
		return domain.PageResult[domain.Claim]{}, notFoundOr(err, "Claim")
	}
	return result, nil
}

func (s *ClaimService) Get(ctx context.Context, id int64) (*domain.Claim, error) {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Claim")
	}
	return claim, nil
}

// Create files a claim against an existing policy.
func (s *ClaimService) Create(ctx context.Context, input ClaimInput) (*domain.Claim, error) {
	if _, err := s.policies.GetByID(ctx, input.PolicyID); err != nil {
		return nil, notFoundOr(err, "Policy")
	}
	claim := &domain.Claim{Status: domain.ClaimStatusReported}
	input.applyTo(claim)
	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, notFoundOr(err, "Claim")
	}
	return claim, nil
}

func (s *ClaimService) Update(ctx context.Context, id int64, input ClaimInput) (*domain.Claim, error) {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Claim")
	}
	if input.PolicyID != 0 && input.PolicyID != claim.PolicyID {
		if _, err := s.policies.GetByID(ctx, input.PolicyID); err != nil {
			return nil, notFoundOr(err, "Policy")
		}
	}
	input.applyTo(claim)
	if err := s.claims.Update(ctx, claim); err != nil {
		return nil, notFoundOr(err, "Claim")
	}
	return claim, nil
}

func (s *ClaimService) Delete(ctx context.Context, id int64) error {
	if err := s.claims.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Claim")
	}
	return nil
}

func (in ClaimInput) applyTo(c *domain.Claim) {
	if in.PolicyID != 0 {
		c.PolicyID = in.PolicyID
	}
	c.ClaimNumber = strings.TrimSpace(in.ClaimNumber)
	c.IncidentDate = in.IncidentDate
	if in.Description != nil {
		c.Description = in.Description
	}
	if in.ClaimAmount != nil {
		c.ClaimAmount = decimal.NewNullDecimal(*in.ClaimAmount)
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.AssignedAdjuster != nil {
		c.AssignedAdjuster = in.AssignedAdjuster
	}
}
