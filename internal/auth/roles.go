package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-crm/internal/domain"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

// Authorize fails with Forbidden unless the principal holds one of the
// allowed roles. An empty list admits any authenticated principal.
func Authorize(principal *Principal, allowed ...domain.StaffRole) error {
	if principal == nil {
		return apperrors.NewUnauthorized("Authentication required")
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if principal.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden("Insufficient permissions")
}

// RequireRole ensures the principal has one of the allowed roles.
func RequireRole(allowed ...domain.StaffRole) fiber.Handler {
	roles := append([]domain.StaffRole(nil), allowed...)
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		if err := Authorize(principal, roles...); err != nil {
			return err
		}
		return c.Next()
	}
}
