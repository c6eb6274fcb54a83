package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// ClaimRepository handles persistence for claims.
type ClaimRepository interface {
	List(ctx context.Context, filter ClaimFilter, page domain.Page) (domain.PageResult[domain.Claim], error)
	GetByID(ctx context.Context, id int64) (*domain.Claim, error)
	Create(ctx context.Context, claim *domain.Claim) error
	Update(ctx context.Context, claim *domain.Claim) error
	Delete(ctx context.Context, id int64) error
}

// ClaimFilter defines query params for claim listing.
type ClaimFilter struct {
	Search   *string
	PolicyID *int64
	Status   *domain.ClaimStatus
}

func (f ClaimFilter) filters() Filters {
	var fs Filters
	if f.Search != nil {
		fs = fs.Search(*f.Search, "claim_number", "description")
	}
	fs = addIf(fs, "policy_id", OpEq, f.PolicyID)
	fs = addIf(fs, "status", OpEq, f.Status)
	return fs
}

var claimColumns = []string{
	"claim_id", "policy_id", "claim_number", "incident_date", "description", "claim_amount",
	"status", "assigned_adjuster", "created_at", "updated_at",
}

type claimRepository struct {
	db DB
}

// NewClaimRepository instantiates the repository.
func NewClaimRepository(db DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) List(ctx context.Context, filter ClaimFilter, page domain.Page) (domain.PageResult[domain.Claim], error) {
	rows := psql.Select(claimColumns...).From("claim").OrderBy("incident_date DESC", "claim_id DESC")
	total := psql.Select("COUNT(*)").From("claim")
	return listPage[domain.Claim](ctx, r.db, rows, total, filter.filters(), page)
}

func (r *claimRepository) GetByID(ctx context.Context, id int64) (*domain.Claim, error) {
	query, args, err := psql.Select(claimColumns...).From("claim").Where(squirrel.Eq{"claim_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return getOne[domain.Claim](ctx, r.db, query, args...)
}

func (r *claimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	query, args, err := psql.Insert("claim").
		Columns("policy_id", "claim_number", "incident_date", "description", "claim_amount", "status", "assigned_adjuster").
		Values(claim.PolicyID, claim.ClaimNumber, claim.IncidentDate, claim.Description,
			claim.ClaimAmount, claim.Status, claim.AssignedAdjuster).
		Suffix(returning(claimColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	return pgxscan.Get(ctx, r.db, claim, query, args...)
}

func (r *claimRepository) Update(ctx context.Context, claim *domain.Claim) error {
	query, args, err := psql.Update("claim").
		SetMap(map[string]any{
			"policy_id":         claim.PolicyID,
			"claim_number":      claim.ClaimNumber,
			"incident_date":     claim.IncidentDate,
			"description":       claim.Description,
			"claim_amount":      claim.ClaimAmount,
			"status":            claim.Status,
			"assigned_adjuster": claim.AssignedAdjuster,
			"updated_at":        squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"claim_id": claim.ID}).
		Suffix(returning(claimColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}
	return scanOne(ctx, r.db, claim, query, args...)
}

func (r *claimRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "claim", "claim_id", id)
}
