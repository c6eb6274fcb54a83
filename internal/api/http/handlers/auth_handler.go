package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-crm/internal/api/dto"
	"github.com/spec-kit/insurance-crm/internal/service"
	"github.com/spec-kit/insurance-crm/internal/validation"
)

// AuthHandler exposes staff authentication endpoints.
type AuthHandler struct {
	service   *service.AuthService
	validator *validation.Validator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{service: authService, validator: validator}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	session, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return ok(c, sessionResponse(session), "Login successful")
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	session, err := h.service.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return ok(c, sessionResponse(session), "Token refreshed")
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req dto.RegisterRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	user, err := h.service.Register(c.UserContext(), principal, service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		Department:  req.Department,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return created(c, dto.NewStaffUserResponse(user), "User registered successfully")
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	user, err := h.service.Profile(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	resp := dto.NewStaffUserResponse(user)
	resp.CreatedAt = &user.CreatedAt
	return ok(c, resp, "")
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req dto.PasswordChangeRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.service.ChangePassword(c.UserContext(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return ok(c, nil, "Password changed successfully")
}

func sessionResponse(s *service.Session) dto.SessionResponse {
	resp := dto.SessionResponse{
		Token:        s.Token,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
	}
	if s.User != nil {
		resp.User = dto.NewStaffUserResponse(s.User)
	}
	return resp
}
