package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// ContactRepository handles persistence for company contacts.
type ContactRepository interface {
	List(ctx context.Context, filter ContactFilter, page domain.Page) (domain.PageResult[domain.Contact], error)
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, id int64) error
}

// ContactFilter defines query params for contact listing.
type ContactFilter struct {
	Search    *string
	CompanyID *int64
	IsPrimary *bool
}

func (f ContactFilter) filters() Filters {
	var fs Filters
	if f.Search != nil {
		fs = fs.Search(*f.Search, "first_name", "last_name", "email", "job_title")
	}
	fs = addIf(fs, "company_id", OpEq, f.CompanyID)
	fs = addIf(fs, "is_primary", OpEq, f.IsPrimary)
	return fs
}

var contactColumns = []string{
	"contact_id", "company_id", "first_name", "last_name", "email", "phone",
	"job_title", "is_primary", "created_at", "updated_at",
}

type contactRepository struct {
	db DB
}

// NewContactRepository instantiates the repository.
func NewContactRepository(db DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter, page domain.Page) (domain.PageResult[domain.Contact], error) {
	rows := psql.Select(contactColumns...).From("contact").OrderBy("last_name ASC", "first_name ASC", "contact_id ASC")
	total := psql.Select("COUNT(*)").From("contact")
	return listPage[domain.Contact](ctx, r.db, rows, total, filter.filters(), page)
}

func (r *contactRepository) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	query, args, err := psql.Select(contactColumns...).From("contact").Where(squirrel.Eq{"contact_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return getOne[domain.Contact](ctx, r.db, query, args...)
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	query, args, err := psql.Insert("contact").
		Columns("company_id", "first_name", "last_name", "email", "phone", "job_title", "is_primary").
		Values(contact.CompanyID, contact.FirstName, contact.LastName, contact.Email,
			contact.Phone, contact.JobTitle, contact.IsPrimary).
		Suffix(returning(contactColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	return pgxscan.Get(ctx, r.db, contact, query, args...)
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	query, args, err := psql.Update("contact").
		SetMap(map[string]any{
			"company_id": contact.CompanyID,
			"first_name": contact.FirstName,
			"last_name":  contact.LastName,
			"email":      contact.Email,
			"phone":      contact.Phone,
			"job_title":  contact.JobTitle,
			"is_primary": contact.IsPrimary,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"contact_id": contact.ID}).
		Suffix(returning(contactColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}
	return scanOne(ctx, r.db, contact, query, args...)
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "contact", "contact_id", id)
}
