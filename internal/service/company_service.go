package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/events"
	"github.com/spec-kit/insurance-crm/internal/repository"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// CompanyService manages companies and their sub-resources.
type CompanyService struct {
	companies repository.CompanyRepository
	profiles  repository.BusinessProfileRepository
	risks     repository.RiskFactorRepository
	changes   repository.ChangeEventRepository
	accounts  repository.PolicyAccountRepository
	publisher publisher
}

// CompanyDependencies bundles repositories for the company service.
type CompanyDependencies struct {
	CompanyRepo         repository.CompanyRepository
	BusinessProfileRepo repository.BusinessProfileRepository
	RiskFactorRepo      repository.RiskFactorRepository
	ChangeEventRepo     repository.ChangeEventRepository
	PolicyAccountRepo   repository.PolicyAccountRepository
	Dispatcher          events.Dispatcher
	Logger              *zap.Logger
}

// CompanyInput describes a company create or update payload. Nil optional
// fields keep their stored value on update.
type CompanyInput struct {
	CompanyName     string
	LegalName       *string
	TaxID           *string
	PrimaryIndustry *string
	NAICSCode       *string
	EstablishedDate *domain.Date
	CompanySize     *domain.CompanySize
	Status          *domain.CompanyStatus
}

// BusinessProfileInput carries the fields of a new profile snapshot. Nil
// fields are carried over from the current snapshot.
type BusinessProfileInput struct {
	EmployeeCount       *int
	AnnualRevenue       *decimal.Decimal
	BusinessDescription *string
	Locations           map[string]any
	Assets              map[string]any
	Operations          map[string]any
}

// RiskFactorInput describes a new risk factor.
type RiskFactorInput struct {
	RiskCategory    string
	RiskDescription *string
	SeverityLevel   *domain.RiskSeverity
	ImpactScore     *decimal.Decimal
}

// PolicyAccountInput describes a new policy account.
type PolicyAccountInput struct {
	AccountNumber string
	Status        *domain.PolicyStatus
	TotalPremium  *decimal.Decimal
}

// NewCompanyService constructs the service.
func NewCompanyService(deps CompanyDependencies) *CompanyService {
	return &CompanyService{
		companies: deps.CompanyRepo,
		profiles:  deps.BusinessProfileRepo,
		risks:     deps.RiskFactorRepo,
		changes:   deps.ChangeEventRepo,
		accounts:  deps.PolicyAccountRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns one page of companies matching filter.
func (s *CompanyService) List(ctx context.Context, filter repository.CompanyFilter, page domain.Page) (domain.PageResult[domain.Company], error) {
	result, err := s.companies.List(ctx, filter, page)
	if err != nil {
		return domain.PageResult[domain.Company]{}, notFoundOr(err, "Company")
	}
	return result, nil
}

// Get loads a company by id.
func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Company")
	}
	return company, nil
}

// Create stores a new company.
func (s *CompanyService) Create(ctx context.Context, actor events.Actor, input CompanyInput) (*domain.Company, error) {
	company := &domain.Company{Status: domain.CompanyStatusActive}
	input.applyTo(company)
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, notFoundOr(err, "Company")
	}
	s.publisher.publish(ctx, events.Event{
		Type:        events.EventCompanyCreated,
		CompanyID:   company.ID,
		Actor:       actor,
		Description: fmt.Sprintf("Company created: %s", company.CompanyName),
		NewValue:    events.Snapshot(company),
	})
	return company, nil
}

// Update applies input to an existing company.
func (s *CompanyService) Update(ctx context.Context, actor events.Actor, id int64, input CompanyInput) (*domain.Company, error) {
	existing, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Company")
	}
	before := events.Snapshot(existing)

	updated := *existing
	input.applyTo(&updated)
	if err := s.companies.Update(ctx, &updated); err != nil {
		return nil, notFoundOr(err, "Company")
	}
	s.publisher.publish(ctx, events.Event{
		Type:        events.EventCompanyUpdated,
		CompanyID:   updated.ID,
		Actor:       actor,
		Description: fmt.Sprintf("Company updated: %s", updated.CompanyName),
		OldValue:    before,
		NewValue:    events.Snapshot(&updated),
	})
	return &updated, nil
}

// Delete removes a company and, through cascading keys, its child rows. The
// audit trail is kept.
func (s *CompanyService) Delete(ctx context.Context, actor events.Actor, id int64) error {
	existing, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Company")
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Company")
	}
	s.publisher.publish(ctx, events.Event{
		Type:        events.EventCompanyDeleted,
		CompanyID:   id,
		Actor:       actor,
		Description: fmt.Sprintf("Company deleted: %s", existing.CompanyName),
		OldValue:    events.Snapshot(existing),
	})
	return nil
}

// GetBusinessProfile returns the company's current profile snapshot.
func (s *CompanyService) GetBusinessProfile(ctx context.Context, companyID int64) (*domain.BusinessProfile, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetCurrent(ctx, companyID)
	if err != nil {
		return nil, notFoundOr(err, "Business profile")
	}
	return profile, nil
}

// UpdateBusinessProfile stores a new current snapshot built from the
// previous one with input applied on top.
func (s *CompanyService) UpdateBusinessProfile(ctx context.Context, actor events.Actor, companyID int64, input BusinessProfileInput) (*domain.BusinessProfile, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	previous, current, err := s.profiles.ReplaceCurrent(ctx, companyID, input.merge)
	if err != nil {
		return nil, notFoundOr(err, "Company")
	}
	s.publisher.publish(ctx, events.Event{
		Type:        events.EventProfileUpdated,
		CompanyID:   companyID,
		Actor:       actor,
		Description: "Business profile updated",
		OldValue:    events.Snapshot(previous),
		NewValue:    events.Snapshot(current),
	})
	return current, nil
}

// ListRiskFactors returns the company's risk factors, newest first.
func (s *CompanyService) ListRiskFactors(ctx context.Context, companyID int64) ([]domain.RiskFactor, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	factors, err := s.risks.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, notFoundOr(err, "Company")
	}
	return factors, nil
}

// AddRiskFactor appends a risk factor identified by the actor.
func (s *CompanyService) AddRiskFactor(ctx context.Context, actor events.Actor, companyID int64, input RiskFactorInput) (*domain.RiskFactor, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	factor := &domain.RiskFactor{
		CompanyID:       companyID,
		RiskCategory:    strings.TrimSpace(input.RiskCategory),
		RiskDescription: input.RiskDescription,
		SeverityLevel:   domain.RiskSeverityMedium,
		IdentifiedBy:    actor.StaffID,
	}
	if input.SeverityLevel != nil {
		factor.SeverityLevel = *input.SeverityLevel
	}
	if input.ImpactScore != nil {
		factor.ImpactScore = decimal.NewNullDecimal(*input.ImpactScore)
	}
	if err := s.risks.Create(ctx, factor); err != nil {
		return nil, notFoundOr(err, "Company")
	}
	s.publisher.publish(ctx, events.Event{
		Type:        events.EventRiskFactorAdded,
		CompanyID:   companyID,
		Actor:       actor,
		Description: fmt.Sprintf("Risk factor added: %s", factor.RiskCategory),
		NewValue:    events.Snapshot(factor),
	})
	return factor, nil
}

// ListChangeEvents returns one page of the company's audit trail.
func (s *CompanyService) ListChangeEvents(ctx context.Context, companyID int64, page domain.Page) (domain.PageResult[domain.ChangeEvent], error) {
	result, err := s.changes.ListByCompany(ctx, companyID, page)
	if err != nil {
		return domain.PageResult[domain.ChangeEvent]{}, notFoundOr(err, "Company")
	}
	return result, nil
}

// ListAccounts returns the company's policy accounts.
func (s *CompanyService) ListAccounts(ctx context.Context, companyID int64) ([]domain.PolicyAccount, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	accounts, err := s.accounts.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, notFoundOr(err, "Company")
	}
	return accounts, nil
}

// CreateAccount opens a policy account for the company.
func (s *CompanyService) CreateAccount(ctx context.Context, actor events.Actor, companyID int64, input PolicyAccountInput) (*domain.PolicyAccount, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	account := &domain.PolicyAccount{
		CompanyID:     companyID,
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		Status:        domain.PolicyStatusActive,
	}
	if input.Status != nil {
		account.Status = *input.Status
	}
	if input.TotalPremium != nil {
		account.TotalPremium = *input.TotalPremium
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, notFoundOr(err, "Company")
	}
	s.publisher.publish(ctx, events.Event{
		Type:        events.EventAccountCreated,
		CompanyID:   companyID,
		Actor:       actor,
		Description: fmt.Sprintf("Policy account created: %s", account.AccountNumber),
		NewValue:    events.Snapshot(account),
	})
	return account, nil
}

func (s *CompanyService) ensureCompany(ctx context.Context, id int64) error {
	exists, err := s.companies.Exists(ctx, id)
	if err != nil {
		return notFoundOr(err, "Company")
	}
	if !exists {
		return apperrors.NewNotFound("Company")
	}
	return nil
}

func (in CompanyInput) applyTo(c *domain.Company) {
	c.CompanyName = strings.TrimSpace(in.CompanyName)
	if in.LegalName != nil {
		c.LegalName = in.LegalName
	}
	if in.TaxID != nil {
		c.TaxID = in.TaxID
	}
	if in.PrimaryIndustry != nil {
		c.PrimaryIndustry = in.PrimaryIndustry
	}
	if in.NAICSCode != nil {
		c.NAICSCode = in.NAICSCode
	}
	if in.EstablishedDate != nil {
		c.EstablishedDate = in.EstablishedDate
	}
	if in.CompanySize != nil {
		c.CompanySize = in.CompanySize
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
}

func (in BusinessProfileInput) merge(previous *domain.BusinessProfile) *domain.BusinessProfile {
	next := &domain.BusinessProfile{}
	if previous != nil {
		next.EmployeeCount = previous.EmployeeCount
		next.AnnualRevenue = previous.AnnualRevenue
		next.BusinessDescription = previous.BusinessDescription
		next.Locations = previous.Locations
		next.Assets = previous.Assets
		next.Operations = previous.Operations
	}
	if in.EmployeeCount != nil {
		next.EmployeeCount = in.EmployeeCount
	}
	if in.AnnualRevenue != nil {
		next.AnnualRevenue = decimal.NewNullDecimal(*in.AnnualRevenue)
	}
	if in.BusinessDescription != nil {
		next.BusinessDescription = in.BusinessDescription
	}
	if in.Locations != nil {
		next.Locations = in.Locations
	}
	if in.Assets != nil {
		next.Assets = in.Assets
	}
	if in.Operations != nil {
		next.Operations = in.Operations
	}
	return next
}
