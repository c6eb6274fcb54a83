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

// CompanyRepository handles persistence for companies.
type CompanyRepository interface {
	List(ctx context.Context, filter CompanyFilter, page domain.Page) (domain.PageResult[domain.Company], error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, company *domain.Company) error
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id int64) error
}

// CompanyFilter defines query params for company listing.
type CompanyFilter struct {
	Search   *string
	Industry *string
	Size     *domain.CompanySize
	Status   *domain.CompanyStatus
}

func (f CompanyFilter) filters() Filters {
	var fs Filters
	if f.Search != nil {
		fs = fs.Search(*f.Search, "company_name", "legal_name", "tax_id", "primary_industry")
	}
	fs = addIf(fs, "primary_industry", OpILike, f.Industry)
	fs = addIf(fs, "company_size", OpEq, f.Size)
	fs = addIf(fs, "status", OpEq, f.Status)
	return fs
}

var companyColumns = []string{
	"company_id", "company_name", "legal_name", "tax_id", "primary_industry", "naics_code",
	"established_date", "company_size", "status", "created_at", "updated_at",
}

type companyRepository struct {
	db DB
}

// NewCompanyRepository instantiates the repository.
func NewCompanyRepository(db DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) List(ctx context.Context, filter CompanyFilter, page domain.Page) (domain.PageResult[domain.Company], error) {
	rows := psql.Select(companyColumns...).From("company").OrderBy("created_at DESC", "company_id DESC")
	total := psql.Select("COUNT(*)").From("company")
	return listPage[domain.Company](ctx, r.db, rows, total, filter.filters(), page)
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query, args, err := psql.Select(companyColumns...).From("company").Where(squirrel.Eq{"company_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return getOne[domain.Company](ctx, r.db, query, args...)
}

func (r *companyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("company").Where(squirrel.Eq{"company_id": id}))
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	query, args, err := psql.Insert("company").
		Columns("company_name", "legal_name", "tax_id", "primary_industry", "naics_code",
			"established_date", "company_size", "status").
		Values(company.CompanyName, company.LegalName, company.TaxID, company.PrimaryIndustry,
			company.NAICSCode, company.EstablishedDate, company.CompanySize, company.Status).
		Suffix(returning(companyColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	return pgxscan.Get(ctx, r.db, company, query, args...)
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	query, args, err := psql.Update("company").
		SetMap(map[string]any{
			"company_name":     company.CompanyName,
			"legal_name":       company.LegalName,
			"tax_id":           company.TaxID,
			"primary_industry": company.PrimaryIndustry,
			"naics_code":       company.NAICSCode,
			"established_date": company.EstablishedDate,
			"company_size":     company.CompanySize,
			"status":           company.Status,
			"updated_at":       squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"company_id": company.ID}).
		Suffix(returning(companyColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}
	return scanOne(ctx, r.db, company, query, args...)
}

func (r *companyRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "company", "company_id", id)
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func deleteByID(ctx context.Context, db DB, table, column string, id int64) error {
	query, args, err := psql.Delete(table).Where(squirrel.Eq{column: id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}
	cmd, err := db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
