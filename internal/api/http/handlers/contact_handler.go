package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-crm/internal/api/dto"
	"github.com/spec-kit/insurance-crm/internal/repository"
	"github.com/spec-kit/insurance-crm/internal/service"
	"github.com/spec-kit/insurance-crm/internal/validation"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// ContactHandler serves company contacts.
type ContactHandler struct {
	service   *service.ContactService
	validator *validation.Validator
}

// NewContactHandler constructs handler.
func NewContactHandler(contactService *service.ContactService, validator *validation.Validator) *ContactHandler {
	return &ContactHandler{service: contactService, validator: validator}
}

// List handles GET /contacts.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	var q dto.ContactListQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return err
	}
	filter := repository.ContactFilter{Search: q.Search, CompanyID: q.CompanyID, IsPrimary: q.IsPrimary}
	result, err := h.service.List(c.UserContext(), filter, q.ToPage())
	if err != nil {
		return err
	}
	return c.JSON(apperrors.Paginated(result))
}

// Get handles GET /contacts/:id.
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "contact")
	if err != nil {
		return err
	}
	contact, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, contact, "")
}

// Create handles POST /contacts.
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	contact, err := h.service.Create(c.UserContext(), contactInput(req))
	if err != nil {
		return err
	}
	return created(c, contact, "Contact created successfully")
}

// Update handles PUT /contacts/:id.
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "contact")
	if err != nil {
		return err
	}
	var req dto.ContactRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	contact, err := h.service.Update(c.UserContext(), id, contactInput(req))
	if err != nil {
		return err
	}
	return ok(c, contact, "Contact updated successfully")
}

// Delete handles DELETE /contacts/:id.
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "contact")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, nil, "Contact deleted successfully")
}

func contactInput(req dto.ContactRequest) service.ContactInput {
	return service.ContactInput{
		CompanyID: req.CompanyID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		JobTitle:  req.JobTitle,
		IsPrimary: req.IsPrimary,
	}
}
