package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// PolicyRepository handles persistence for policies.
type PolicyRepository interface {
	List(ctx context.Context, filter PolicyFilter, page domain.Page) (domain.PageResult[domain.Policy], error)
	GetByID(ctx context.Context, id int64) (*domain.Policy, error)
	Create(ctx context.Context, policy *domain.Policy) error
	Update(ctx context.Context, policy *domain.Policy) error
	Delete(ctx context.Context, id int64) error
}

// PolicyFilter defines query params for policy listing.
type PolicyFilter struct {
	Search     *string
	AccountID  *int64
	CompanyID  *int64
	Status     *domain.PolicyStatus
	PolicyType *string
}

func (f PolicyFilter) filters() Filters {
	var fs Filters
	if f.Search != nil {
		fs = fs.Search(*f.Search, "p.policy_number", "p.policy_type", "p.carrier")
	}
	fs = addIf(fs, "p.account_id", OpEq, f.AccountID)
	fs = addIf(fs, "pa.company_id", OpEq, f.CompanyID)
	fs = addIf(fs, "p.status", OpEq, f.Status)
	fs = addIf(fs, "p.policy_type", OpEq, f.PolicyType)
	return fs
}

var policyColumns = []string{
	"policy_id", "account_id", "policy_number", "policy_type", "carrier", "premium",
	"coverage_limit", "effective_date", "expiration_date", "status", "created_at", "updated_at",
}

const policyAccountJoin = "policy_account pa ON pa.account_id = p.account_id"

type policyRepository struct {
	db DB
}

// NewPolicyRepository instantiates the repository.
func NewPolicyRepository(db DB) PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) List(ctx context.Context, filter PolicyFilter, page domain.Page) (domain.PageResult[domain.Policy], error) {
	rows := psql.Select(prefixed("p", policyColumns)...).
		From("policy p").
		Join(policyAccountJoin).
		OrderBy("p.created_at DESC", "p.policy_id DESC")
	total := psql.Select("COUNT(*)").From("policy p").Join(policyAccountJoin)
	return listPage[domain.Policy](ctx, r.db, rows, total, filter.filters(), page)
}

func (r *policyRepository) GetByID(ctx context.Context, id int64) (*domain.Policy, error) {
	query, args, err := psql.Select(policyColumns...).From("policy").Where(squirrel.Eq{"policy_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return getOne[domain.Policy](ctx, r.db, query, args...)
}

func (r *policyRepository) Create(ctx context.Context, policy *domain.Policy) error {
	query, args, err := psql.Insert("policy").
		Columns("account_id", "policy_number", "policy_type", "carrier", "premium",
			"coverage_limit", "effective_date", "expiration_date", "status").
		Values(policy.AccountID, policy.PolicyNumber, policy.PolicyType, policy.Carrier, policy.Premium,
			policy.CoverageLimit, policy.EffectiveDate, policy.ExpirationDate, policy.Status).
		Suffix(returning(policyColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	return pgxscan.Get(ctx, r.db, policy, query, args...)
}

func (r *policyRepository) Update(ctx context.Context, policy *domain.Policy) error {
	query, args, err := psql.Update("policy").
		SetMap(map[string]any{
			"account_id":      policy.AccountID,
			"policy_number":   policy.PolicyNumber,
			"policy_type":     policy.PolicyType,
			"carrier":         policy.Carrier,
			"premium":         policy.Premium,
			"coverage_limit":  policy.CoverageLimit,
			"effective_date":  policy.EffectiveDate,
			"expiration_date": policy.ExpirationDate,
			"status":          policy.Status,
			"updated_at":      squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"policy_id": policy.ID}).
		Suffix(returning(policyColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}
	return scanOne(ctx, r.db, policy, query, args...)
}

func (r *policyRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "policy", "policy_id", id)
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = alias + "." + col
	}
	return out
}
