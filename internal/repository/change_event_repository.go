package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// ChangeEventRepository persists the company audit trail.
type ChangeEventRepository interface {
	ListByCompany(ctx context.Context, companyID int64, page domain.Page) (domain.PageResult[domain.ChangeEvent], error)
	Create(ctx context.Context, event *domain.ChangeEvent) error
}

var changeEventColumns = []string{
	"event_id", "company_id", "event_type", "description", "old_value", "new_value", "changed_by", "created_at",
}

type changeEventRepository struct {
	db DB
}

// NewChangeEventRepository instantiates the repository.
func NewChangeEventRepository(db DB) ChangeEventRepository {
	return &changeEventRepository{db: db}
}

func (r *changeEventRepository) ListByCompany(ctx context.Context, companyID int64, page domain.Page) (domain.PageResult[domain.ChangeEvent], error) {
	rows := psql.Select(changeEventColumns...).From("change_event").OrderBy("created_at DESC", "event_id DESC")
	total := psql.Select("COUNT(*)").From("change_event")
	filters := Filters{}.Add("company_id", OpEq, companyID)
	return listPage[domain.ChangeEvent](ctx, r.db, rows, total, filters, page)
}

func (r *changeEventRepository) Create(ctx context.Context, event *domain.ChangeEvent) error {
	query, args, err := psql.Insert("change_event").
		Columns("company_id", "event_type", "description", "old_value", "new_value", "changed_by").
		Values(event.CompanyID, event.EventType, event.Description, event.OldValue, event.NewValue, event.ChangedBy).
		Suffix("RETURNING event_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	return r.db.QueryRow(ctx, query, args...).Scan(&event.ID, &event.CreatedAt)
}
