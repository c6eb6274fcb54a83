package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/insurance-crm/internal/auth"
	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/events"
	"github.com/spec-kit/insurance-crm/internal/validation"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// parseID reads the :id route parameter as a positive integer.
func parseID(c *fiber.Ctx, resource string) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequest("Invalid " + resource + " ID")
	}
	return id, nil
}

// bindBody decodes the JSON body into out and runs its rule table.
func bindBody(c *fiber.Ctx, v *validation.Validator, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	return v.Struct(out)
}

// bindQuery decodes the query string into out and runs its rule table.
func bindQuery(c *fiber.Ctx, v *validation.Validator, out any) error {
	if err := c.QueryParser(out); err != nil {
		return apperrors.NewBadRequest("Invalid query parameters")
	}
	return v.Struct(out)
}

func principalFrom(c *fiber.Ctx) (*auth.Principal, error) {
	principal, found := auth.PrincipalFromContext(c)
	if !found {
		return nil, apperrors.NewUnauthorized("Authentication required")
	}
	return principal, nil
}

func actorFrom(c *fiber.Ctx) events.Actor {
	principal, found := auth.PrincipalFromContext(c)
	if !found {
		return events.Actor{}
	}
	id := principal.ID
	return events.Actor{StaffID: &id, Username: principal.Username}
}

// Values below have already passed the decimal2/iso8601 rules, so parse
// failures cannot occur.

func toDecimal(n json.Number) decimal.Decimal {
	d, _ := decimal.NewFromString(n.String())
	return d
}

func toDecimalPtr(n *json.Number) *decimal.Decimal {
	if n == nil {
		return nil
	}
	d := toDecimal(*n)
	return &d
}

func toDate(s string) domain.Date {
	d, _ := domain.ParseDate(s)
	return d
}

func toDatePtr(s *string) *domain.Date {
	if s == nil {
		return nil
	}
	d := toDate(*s)
	return &d
}

// toTimePtr keeps the time of day when one is given.
func toTimePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t
	}
	t := toDate(*s).Time
	return &t
}

func created(c *fiber.Ctx, data any, message string) error {
	return apperrors.JSON(c, fiber.StatusCreated, data, message)
}

func ok(c *fiber.Ctx, data any, message string) error {
	return apperrors.JSON(c, fiber.StatusOK, data, message)
}
