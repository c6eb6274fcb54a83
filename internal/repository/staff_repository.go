package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// StaffUserRepository handles persistence for staff users.
type StaffUserRepository interface {
	Create(ctx context.Context, user *domain.StaffUser) error
	GetByID(ctx context.Context, id int64) (*domain.StaffUser, error)
	FindActiveByIdentifier(ctx context.Context, identifier string) (*domain.StaffUser, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

var staffColumns = []string{
	"staff_id", "username", "email", "password_hash", "first_name", "last_name",
	"role", "department", "permissions", "is_active", "created_at", "updated_at",
}

type staffUserRepository struct {
	db DB
}

// NewStaffUserRepository instantiates the repository.
func NewStaffUserRepository(db DB) StaffUserRepository {
	return &staffUserRepository{db: db}
}

func (r *staffUserRepository) Create(ctx context.Context, user *domain.StaffUser) error {
	query, args, err := psql.Insert("staff_user").
		Columns("username", "email", "password_hash", "first_name", "last_name", "role", "department", "permissions", "is_active").
		Values(user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
			user.Role, user.Department, user.Permissions, user.IsActive).
		Suffix("RETURNING staff_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	return r.db.QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *staffUserRepository) GetByID(ctx context.Context, id int64) (*domain.StaffUser, error) {
	return r.fetchSingle(ctx, squirrel.Eq{"staff_id": id})
}

// FindActiveByIdentifier matches either the username or the email of an active
// user. Emails are stored lowercased, so the email side ignores case.
func (r *staffUserRepository) FindActiveByIdentifier(ctx context.Context, identifier string) (*domain.StaffUser, error) {
	return r.fetchSingle(ctx, squirrel.And{
		squirrel.Or{squirrel.Eq{"username": identifier}, squirrel.Eq{"email": strings.ToLower(identifier)}},
		squirrel.Eq{"is_active": true},
	})
}

func (r *staffUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("staff_user").
		Where(squirrel.Or{squirrel.Eq{"username": username}, squirrel.Eq{"email": email}}))
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *staffUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query, args, err := psql.Update("staff_user").
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"staff_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffUserRepository) fetchSingle(ctx context.Context, where squirrel.Sqlizer) (*domain.StaffUser, error) {
	query, args, err := psql.Select(staffColumns...).From("staff_user").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	var user domain.StaffUser
	if err := pgxscan.Get(ctx, r.db, &user, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return &user, nil
}
