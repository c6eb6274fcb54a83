package dto

import (
	"time"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// LoginRequest payload. Username also accepts an email address.
type LoginRequest struct {
	Username string `json:"username" validate:"required" msg:"Username is required"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

// RefreshRequest payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required" msg:"Refresh token is required"`
}

// RegisterRequest payload for new staff users.
type RegisterRequest struct {
	Username    string            `json:"username" validate:"min=3,max=50" msg:"Username must be 3-50 characters"`
	Email       string            `json:"email" validate:"required,email" msg:"Valid email is required"`
	Password    string            `json:"password" validate:"min=6" msg:"Password must be at least 6 characters"`
	FirstName   string            `json:"first_name" validate:"required" msg:"First name is required"`
	LastName    string            `json:"last_name" validate:"required" msg:"Last name is required"`
	Role        domain.StaffRole  `json:"role" validate:"oneof=admin manager agent underwriter claims_adjuster" msg:"Invalid role"`
	Department  domain.Department `json:"department" validate:"oneof=sales underwriting claims customer_service management" msg:"Invalid department"`
	Permissions map[string]any    `json:"permissions"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" msg:"Current password is required"`
	NewPassword     string `json:"newPassword" validate:"min=6" msg:"New password must be at least 6 characters"`
}

// StaffUserResponse is the public view of a staff user. The password hash
// never leaves the service.
type StaffUserResponse struct {
	ID          int64             `json:"id"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Role        domain.StaffRole  `json:"role"`
	Department  domain.Department `json:"department"`
	Permissions map[string]any    `json:"permissions"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty"`
}

// SessionResponse is returned by login and refresh.
type SessionResponse struct {
	User         *StaffUserResponse `json:"user,omitempty"`
	Token        string             `json:"token"`
	RefreshToken string             `json:"refreshToken,omitempty"`
	ExpiresIn    int64              `json:"expiresIn"`
}

// NewStaffUserResponse maps a stored user to its public view.
func NewStaffUserResponse(u *domain.StaffUser) *StaffUserResponse {
	permissions := u.Permissions
	if permissions == nil {
		permissions = map[string]any{}
	}
	return &StaffUserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Department:  u.Department,
		Permissions: permissions,
	}
}
