package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-crm/internal/api/dto"
	"github.com/spec-kit/insurance-crm/internal/repository"
	"github.com/spec-kit/insurance-crm/internal/service"
	"github.com/spec-kit/insurance-crm/internal/validation"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// PolicyHandler serves policies.
type PolicyHandler struct {
	service   *service.PolicyService
	validator *validation.Validator
}

// NewPolicyHandler constructs handler.
func NewPolicyHandler(policyService *service.PolicyService, validator *validation.Validator) *PolicyHandler {
	return &PolicyHandler{service: policyService, validator: validator}
}

// List handles GET /policies.
func (h *PolicyHandler) List(c *fiber.Ctx) error {
	var q dto.PolicyListQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}
	filter := repository.PolicyFilter{
		Search:     q.Search,
		AccountID:  q.AccountID,
		CompanyID:  q.CompanyID,
		Status:     q.Status,
		PolicyType: q.PolicyType,
	}
	result, err := h.service.List(c.UserContext(), filter, q.ToPage())
	if err != nil {
		return err
	}
	return c.JSON(apperrors.Paginated(result))
}

// Get handles GET /policies/:id.
func (h *PolicyHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "policy")
	if err != nil {
		return err
	}
	policy, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, policy, "")
}

// Create handles POST /policies.
func (h *PolicyHandler) Create(c *fiber.Ctx) error {
	var req dto.PolicyRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	policy, err := h.service.Create(c.UserContext(), policyInput(req))
	if err != nil {
		return err
	}
	return created(c, policy, "Policy created successfully")
}

// Update handles PUT /policies/:id.
func (h *PolicyHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "policy")
	if err != nil {
		return err
	}
	var req dto.PolicyRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	policy, err := h.service.Update(c.UserContext(), id, policyInput(req))
	if err != nil {
		return err
	}
	return ok(c, policy, "Policy updated successfully")
}

// Delete handles DELETE /policies/:id.
func (h *PolicyHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "policy")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, nil, "Policy deleted successfully")
}

func policyInput(req dto.PolicyRequest) service.PolicyInput {
	return service.PolicyInput{
		AccountID:      req.AccountID,
		PolicyNumber:   req.PolicyNumber,
		PolicyType:     req.PolicyType,
		Carrier:        req.Carrier,
		Premium:        toDecimal(req.Premium),
		CoverageLimit:  toDecimalPtr(req.CoverageLimit),
		EffectiveDate:  toDate(req.EffectiveDate),
		ExpirationDate: toDate(req.ExpirationDate),
		Status:         req.Status,
	}
}
