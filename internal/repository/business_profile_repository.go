package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// BusinessProfileRepository persists versioned business profiles.
type BusinessProfileRepository interface {
	GetCurrent(ctx context.Context, companyID int64) (*domain.BusinessProfile, error)
	ReplaceCurrent(ctx context.Context, companyID int64, next NextProfileFunc) (previous, current *domain.BusinessProfile, err error)
}

// NextProfileFunc builds the new snapshot from the locked current one, which
// is nil for a company without a profile.
type NextProfileFunc func(previous *domain.BusinessProfile) *domain.BusinessProfile

var profileColumns = []string{
	"profile_id", "company_id", "employee_count", "annual_revenue", "business_description",
	"locations", "assets", "operations", "is_current", "created_at",
}

type businessProfileRepository struct {
	db DB
}

// NewBusinessProfileRepository instantiates the repository.
func NewBusinessProfileRepository(db DB) BusinessProfileRepository {
	return &businessProfileRepository{db: db}
}

func (r *businessProfileRepository) GetCurrent(ctx context.Context, companyID int64) (*domain.BusinessProfile, error) {
	query, args, err := currentProfileQuery(companyID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return getOne[domain.BusinessProfile](ctx, r.db, query, args...)
}

// ReplaceCurrent locks the company's current snapshot, retires it and stores
// the snapshot built by next as the new current one in a single transaction.
func (r *businessProfileRepository) ReplaceCurrent(ctx context.Context, companyID int64, next NextProfileFunc) (*domain.BusinessProfile, *domain.BusinessProfile, error) {
	var previous, current *domain.BusinessProfile
	err := withTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query, args, err := currentProfileQuery(companyID).Suffix("FOR UPDATE").ToSql()
		if err != nil {
			return fmt.Errorf("building select query: %w", err)
		}
		previous, err = getOne[domain.BusinessProfile](ctx, tx, query, args...)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		if previous != nil {
			query, args, err = psql.Update("business_profile").
				Set("is_current", false).
				Where(squirrel.Eq{"profile_id": previous.ID}).
				ToSql()
			if err != nil {
				return fmt.Errorf("building update query: %w", err)
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("retiring current profile: %w", err)
			}
		}

		current = next(previous)
		current.CompanyID = companyID
		query, args, err = psql.Insert("business_profile").
			Columns("company_id", "employee_count", "annual_revenue", "business_description",
				"locations", "assets", "operations", "is_current").
			Values(current.CompanyID, current.EmployeeCount, current.AnnualRevenue, current.BusinessDescription,
				current.Locations, current.Assets, current.Operations, true).
			Suffix(returning(profileColumns)).
			ToSql()
		if err != nil {
			return fmt.Errorf("building insert query: %w", err)
		}
		return pgxscan.Get(ctx, tx, current, query, args...)
	})
	if err != nil {
		return nil, nil, err
	}
	return previous, current, nil
}

func currentProfileQuery(companyID int64) squirrel.SelectBuilder {
	return psql.Select(profileColumns...).
		From("business_profile").
		Where(squirrel.Eq{"company_id": companyID, "is_current": true})
}
