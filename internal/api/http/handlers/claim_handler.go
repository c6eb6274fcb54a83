package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-crm/internal/api/dto"
	"github.com/spec-kit/insurance-crm/internal/repository"
	"github.com/spec-kit/insurance-crm/internal/service"
	"github.com/spec-kit/insurance-crm/internal/validation"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// ClaimHandler serves claims.
type ClaimHandler struct {
	service   *service.ClaimService
	validator *validation.Validator
}

// NewClaimHandler constructs handler.
func NewClaimHandler(claimService *service.ClaimService, validator *validation.Validator) *ClaimHandler {
	return &ClaimHandler{service: claimService, validator: validator}
}

// List handles GET /claims.
func (h *ClaimHandler) List(c *fiber.Ctx) error {
	var q dto.ClaimListQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}
	filter := repository.ClaimFilter{Search: q.Search, PolicyID: q.PolicyID, Status: q.Status}
	result, err := h.service.List(c.UserContext(), filter, q.ToPage())
	if err != nil {
		return err
	}
	return c.JSON(apperrors.Paginated(result))
}

// Get handles GET /claims/:id.
func (h *ClaimHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "claim")
	if err != nil {
		return err
	}
	claim, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, claim, "")
}

// Create handles POST /claims.
func (h *ClaimHandler) Create(c *fiber.Ctx) error {
	var req dto.ClaimRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	claim, err := h.service.Create(c.UserContext(), claimInput(req))
	if err != nil {
		return err
	}
	return created(c, claim, "Claim created successfully")
}

// Update handles PUT /claims/:id.
func (h *ClaimHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "claim")
	if err != nil {
		return err
	}
	var req dto.ClaimRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	claim, err := h.service.Update(c.UserContext(), id, claimInput(req))
	if err != nil {
		return err
	}
	return ok(c, claim, "Claim updated successfully")
}

// Delete handles DELETE /claims/:id.
func (h *ClaimHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "claim")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, nil, "Claim deleted successfully")
}

func claimInput(req dto.ClaimRequest) service.ClaimInput {
	return service.ClaimInput{
		PolicyID:         req.PolicyID,
		ClaimNumber:      req.ClaimNumber,
		IncidentDate:     toDate(req.IncidentDate),
		Description:      req.Description,
		ClaimAmount:      toDecimalPtr(req.ClaimAmount),
		Status:           req.Status,
		AssignedAdjuster: req.AssignedAdjuster,
	}
}
