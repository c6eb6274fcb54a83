package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// RiskFactorRepository persists append-only company risk factors.
type RiskFactorRepository interface {
	ListByCompany(ctx context.Context, companyID int64) ([]domain.RiskFactor, error)
	Create(ctx context.Context, factor *domain.RiskFactor) error
}

var riskFactorColumns = []string{
	"risk_factor_id", "company_id", "risk_category", "risk_description",
	"severity_level", "impact_score", "identified_by", "created_at",
}

type riskFactorRepository struct {
	db DB
}

// NewRiskFactorRepository instantiates the repository.
func NewRiskFactorRepository(db DB) RiskFactorRepository {
	return &riskFactorRepository{db: db}
}

func (r *riskFactorRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.RiskFactor, error) {
	query, args, err := psql.Select(riskFactorColumns...).
		From("risk_factor").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("created_at DESC", "risk_factor_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	factors := []domain.RiskFactor{}
	if err := pgxscan.Select(ctx, r.db, &factors, query, args...); err != nil {
		return nil, fmt.Errorf("scanning risk factors: %w", err)
	}
	return factors, nil
}

func (r *riskFactorRepository) Create(ctx context.Context, factor *domain.RiskFactor) error {
	query, args, err := psql.Insert("risk_factor").
		Columns("company_id", "risk_category", "risk_description", "severity_level", "impact_score", "identified_by").
		Values(factor.CompanyID, factor.RiskCategory, factor.RiskDescription, factor.SeverityLevel,
			factor.ImpactScore, factor.IdentifiedBy).
		Suffix("RETURNING risk_factor_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	return r.db.QueryRow(ctx, query, args...).Scan(&factor.ID, &factor.CreatedAt)
}
