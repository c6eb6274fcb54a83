package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// PolicyAccountRepository persists the accounts policies are billed under.
type PolicyAccountRepository interface {
	ListByCompany(ctx context.Context, companyID int64) ([]domain.PolicyAccount, error)
	GetByID(ctx context.Context, id int64) (*domain.PolicyAccount, error)
	Create(ctx context.Context, account *domain.PolicyAccount) error
}

var accountColumns = []string{
	"account_id", "company_id", "account_number", "status", "total_premium", "created_at", "updated_at",
}

type policyAccountRepository struct {
	db DB
}

// NewPolicyAccountRepository instantiates the repository.
func NewPolicyAccountRepository(db DB) PolicyAccountRepository {
	return &policyAccountRepository{db: db}
}

func (r *policyAccountRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.PolicyAccount, error) {
	query, args, err := psql.Select(accountColumns...).
		From("policy_account").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("created_at DESC", "account_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	accounts := []domain.PolicyAccount{}
	if err := pgxscan.Select(ctx, r.db, &accounts, query, args...); err != nil {
		return nil, fmt.Errorf("scanning policy accounts: %w", err)
	}
	return accounts, nil
}

func (r *policyAccountRepository) GetByID(ctx context.Context, id int64) (*domain.PolicyAccount, error) {
	query, args, err := psql.Select(accountColumns...).From("policy_account").Where(squirrel.Eq{"account_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return getOne[domain.PolicyAccount](ctx, r.db, query, args...)
}

func (r *policyAccountRepository) Create(ctx context.Context, account *domain.PolicyAccount) error {
	query, args, err := psql.Insert("policy_account").
		Columns("company_id", "account_number", "status", "total_premium").
		Values(account.CompanyID, account.AccountNumber, account.Status, account.TotalPremium).
		Suffix(returning(accountColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	return pgxscan.Get(ctx, r.db, account, query, args...)
}
