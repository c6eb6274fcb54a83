package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-crm/internal/api/dto"
	"github.com/spec-kit/insurance-crm/internal/repository"
	"github.com/spec-kit/insurance-crm/internal/service"
	"github.com/spec-kit/insurance-crm/internal/validation"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// CompanyHandler serves companies and their sub-resources.
type CompanyHandler struct {
	service   *service.CompanyService
	validator *validation.Validator
}

// NewCompanyHandler constructs handler.
func NewCompanyHandler(companyService *service.CompanyService, validator *validation.Validator) *CompanyHandler {
	return &CompanyHandler{service: companyService, validator: validator}
}

// List handles GET /companies.
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var q dto.CompanyListQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}
	filter := repository.CompanyFilter{Search: q.Search, Industry: q.Industry, Size: q.Size, Status: q.Status}
	result, err := h.service.List(c.UserContext(), filter, q.ToPage())
	if err != nil {
		return err
	}
	return c.JSON(apperrors.Paginated(result))
}

// Get handles GET /companies/:id.
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	company, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, company, "")
}

// Create handles POST /companies.
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	company, err := h.service.Create(c.UserContext(), actorFrom(c), companyInput(req))
	if err != nil {
		return err
	}
	return created(c, company, "Company created successfully")
}

// Update handles PUT /companies/:id.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	var req dto.CompanyRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	company, err := h.service.Update(c.UserContext(), actorFrom(c), id, companyInput(req))
	if err != nil {
		return err
	}
	return ok(c, company, "Company updated successfully")
}

// Delete handles DELETE /companies/:id.
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return err
	}
	return ok(c, nil, "Company deleted successfully")
}

// GetProfile handles GET /companies/:id/profile.
func (h *CompanyHandler) GetProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	profile, err := h.service.GetBusinessProfile(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, profile, "")
}

// UpdateProfile handles PUT /companies/:id/profile.
func (h *CompanyHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	var req dto.BusinessProfileRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	profile, err := h.service.UpdateBusinessProfile(c.UserContext(), actorFrom(c), id, service.BusinessProfileInput{
		EmployeeCount:       req.EmployeeCount,
		AnnualRevenue:       toDecimalPtr(req.AnnualRevenue),
		BusinessDescription: req.BusinessDescription,
		Locations:           req.Locations,
		Assets:              req.Assets,
		Operations:          req.Operations,
	})
	if err != nil {
		return err
	}
	return ok(c, profile, "Business profile updated successfully")
}

// ListRiskFactors handles GET /companies/:id/risk-factors.
func (h *CompanyHandler) ListRiskFactors(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	factors, err := h.service.ListRiskFactors(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, factors, "")
}

// AddRiskFactor handles POST /companies/:id/risk-factors.
func (h *CompanyHandler) AddRiskFactor(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	var req dto.RiskFactorRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	factor, err := h.service.AddRiskFactor(c.UserContext(), actorFrom(c), id, service.RiskFactorInput{
		RiskCategory:    req.RiskCategory,
		RiskDescription: req.RiskDescription,
		SeverityLevel:   req.SeverityLevel,
		ImpactScore:     toDecimalPtr(req.ImpactScore),
	})
	if err != nil {
		return err
	}
	return created(c, factor, "Risk factor added successfully")
}

// ListChangeEvents handles GET /companies/:id/change-events.
func (h *CompanyHandler) ListChangeEvents(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	var q dto.PageQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}
	result, err := h.service.ListChangeEvents(c.UserContext(), id, q.ToPage())
	if err != nil {
		return err
	}
	return c.JSON(apperrors.Paginated(result))
}

// ListAccounts handles GET /companies/:id/accounts.
func (h *CompanyHandler) ListAccounts(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	accounts, err := h.service.ListAccounts(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, accounts, "")
}

// CreateAccount handles POST /companies/:id/accounts.
func (h *CompanyHandler) CreateAccount(c *fiber.Ctx) error {
	id, err := parseID(c, "company")
	if err != nil {
		return err
	}
	var req dto.PolicyAccountRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	account, err := h.service.CreateAccount(c.UserContext(), actorFrom(c), id, service.PolicyAccountInput{
		AccountNumber: req.AccountNumber,
		Status:        req.Status,
		TotalPremium:  toDecimalPtr(req.TotalPremium),
	})
	if err != nil {
		return err
	}
	return created(c, account, "Policy account created successfully")
}

func companyInput(req dto.CompanyRequest) service.CompanyInput {
	return service.CompanyInput{
		CompanyName:     req.CompanyName,
		LegalName:       req.LegalName,
		TaxID:           req.TaxID,
		PrimaryIndustry: req.PrimaryIndustry,
		NAICSCode:       req.NAICSCode,
		EstablishedDate: toDatePtr(req.EstablishedDate),
		CompanySize:     req.CompanySize,
		Status:          req.Status,
	}
}
