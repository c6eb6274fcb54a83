package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-crm/internal/auth"
	"github.com/spec-kit/insurance-crm/internal/domain"
	"github.com/spec-kit/insurance-crm/internal/repository"
	apperrors "github.com/spec-kit/insurance-crm/pkg/util"
)

var errInvalidCredentials = apperrors.NewUnauthorized("Invalid credentials")

// AuthService coordinates login, registration and credential flows.
type AuthService struct {
	staff  repository.StaffUserRepository
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
	logger *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(staff repository.StaffUserRepository, tokens *auth.TokenManager, hasher *auth.PasswordHasher, logger *zap.Logger) *AuthService {
	return &AuthService{staff: staff, tokens: tokens, hasher: hasher, logger: logger}
}

// Session is the result of a successful login or refresh.
type Session struct {
	User         *domain.StaffUser
	Token        string
	RefreshToken string
	ExpiresIn    int64
}

// RegisterInput describes a new staff account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        domain.StaffRole
	Department  domain.Department
	Permissions map[string]any
}

// Login authenticates an active user by username or email.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*Session, error) {
	user, err := s.staff.FindActiveByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.hasher.CompareMissing(password)
			return nil, errInvalidCredentials
		}
		return nil, apperrors.MapError(err)
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.Info("login rejected", zap.Int64("staff_id", user.ID))
		return nil, errInvalidCredentials
	}

	access, _, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	refresh, _, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("login succeeded", zap.Int64("staff_id", user.ID), zap.String("role", string(user.Role)))
	return &Session{
		User:         user,
		Token:        access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// Refresh mints a new access token from a refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid refresh token")
	}
	user, err := s.staff.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Invalid refresh token")
		}
		return nil, apperrors.MapError(err)
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorized("Account is deactivated")
	}
	access, _, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user, Token: access, ExpiresIn: int64(s.tokens.AccessTTL().Seconds())}, nil
}

// Register creates a staff account. Only administrators may register users.
func (s *AuthService) Register(ctx context.Context, principal *auth.Principal, input RegisterInput) (*domain.StaffUser, error) {
	if principal == nil || principal.Role != domain.StaffRoleAdmin {
		return nil, apperrors.NewForbidden("Only administrators can register new users")
	}

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.staff.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, apperrors.NewBadRequest("Username or email already exists")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	permissions := input.Permissions
	if permissions == nil {
		permissions = map[string]any{}
	}
	user := &domain.StaffUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         input.Role,
		Department:   input.Department,
		Permissions:  permissions,
		IsActive:     true,
	}
	if err := s.staff.Create(ctx, user); err != nil {
		// A concurrent registration can pass the pre-check; the unique index decides.
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewBadRequest("Username or email already exists")
		}
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("staff user registered",
		zap.Int64("staff_id", user.ID),
		zap.String("username", user.Username),
		zap.Int64("registered_by", principal.ID))
	return user, nil
}

// Profile loads the caller's own account.
func (s *AuthService) Profile(ctx context.Context, id int64) (*domain.StaffUser, error) {
	user, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "User profile")
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, id int64, current, next string) error {
	user, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "User profile")
	}
	if !s.hasher.Compare(user.PasswordHash, current) {
		return apperrors.NewBadRequest("Current password is incorrect")
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.staff.UpdatePassword(ctx, id, hash); err != nil {
		return notFoundOr(err, "User profile")
	}
	s.logger.Info("password changed", zap.Int64("staff_id", id))
	return nil
}
