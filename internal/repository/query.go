package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// Op is the comparison a Filter applies.
type Op string

const (
	OpEq     Op = "eq"
	OpILike  Op = "ilike"
	OpGte    Op = "gte"
	OpLte    Op = "lte"
	OpIn     Op = "in"
	OpSearch Op = "search"
)

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)

// Filter is a single (column, operator, value) condition. Value is always bound
// as a placeholder; column names come from code and are checked against
// columnPattern before they reach SQL text.
type Filter struct {
	Column string
	Op     Op
	Value  any
	// Columns holds the alternatives matched by OpSearch.
	Columns []string
}

// Filters accumulates conditions joined with AND.
type Filters []Filter

// Add appends a condition.
func (f Filters) Add(column string, op Op, value any) Filters {
	return append(f, Filter{Column: column, Op: op, Value: value})
}

// Search appends a case-insensitive substring match across columns. Blank
// terms are ignored.
func (f Filters) Search(term string, columns ...string) Filters {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return f
	}
	return append(f, Filter{Op: OpSearch, Value: term, Columns: columns})
}

// addIf appends a condition only when v is set.
func addIf[T any](f Filters, column string, op Op, v *T) Filters {
	if v == nil {
		return f
	}
	return f.Add(column, op, *v)
}

func (f Filter) sqlizer() (squirrel.Sqlizer, error) {
	if f.Op == OpSearch {
		pattern := likePattern(f.Value)
		or := make(squirrel.Or, 0, len(f.Columns))
		for _, col := range f.Columns {
			if !columnPattern.MatchString(col) {
				return nil, fmt.Errorf("invalid filter column %q", col)
			}
			or = append(or, squirrel.ILike{col: pattern})
		}
		return or, nil
	}
	if !columnPattern.MatchString(f.Column) {
		return nil, fmt.Errorf("invalid filter column %q", f.Column)
	}
	switch f.Op {
	case OpEq, OpIn:
		return squirrel.Eq{f.Column: f.Value}, nil
	case OpILike:
		return squirrel.ILike{f.Column: likePattern(f.Value)}, nil
	case OpGte:
		return squirrel.GtOrEq{f.Column: f.Value}, nil
	case OpLte:
		return squirrel.LtOrEq{f.Column: f.Value}, nil
	default:
		return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
	}
}

// apply adds every filter to the builder's WHERE clause.
func (f Filters) apply(sb squirrel.SelectBuilder) (squirrel.SelectBuilder, error) {
	for _, filter := range f {
		pred, err := filter.sqlizer()
		if err != nil {
			return sb, err
		}
		sb = sb.Where(pred)
	}
	return sb, nil
}

// likePattern wraps v in wildcards after escaping LIKE metacharacters.
func likePattern(v any) string {
	s := fmt.Sprint(v)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

func paginate(sb squirrel.SelectBuilder, page domain.Page) squirrel.SelectBuilder {
	return sb.Limit(uint64(page.Limit)).Offset(page.Offset())
}

// count runs a COUNT query and returns the total.
func count(ctx context.Context, db DB, sb squirrel.SelectBuilder) (int64, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count query: %w", err)
	}
	var total int64
	if err := pgxscan.Get(ctx, db, &total, query, args...); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return total, nil
}

// listPage filters rows and countQuery alike, then fetches one page of rows.
func listPage[T any](
	ctx context.Context,
	db DB,
	rows squirrel.SelectBuilder,
	countQuery squirrel.SelectBuilder,
	filters Filters,
	page domain.Page,
) (domain.PageResult[T], error) {
	var result domain.PageResult[T]
	countQuery, err := filters.apply(countQuery)
	if err != nil {
		return result, err
	}
	rows, err = filters.apply(rows)
	if err != nil {
		return result, err
	}
	total, err := count(ctx, db, countQuery)
	if err != nil {
		return result, err
	}
	query, args, err := paginate(rows, page).ToSql()
	if err != nil {
		return result, fmt.Errorf("building select query: %w", err)
	}
	items := make([]T, 0, page.Limit)
	if err := pgxscan.Select(ctx, db, &items, query, args...); err != nil {
		return result, fmt.Errorf("scanning rows: %w", err)
	}
	result.Items = items
	result.Info = domain.NewPageInfo(page, total)
	return result, nil
}

// getOne runs a single-row query, normalizing a missing row to pgx.ErrNoRows.
func getOne[T any](ctx context.Context, db DB, query string, args ...any) (*T, error) {
	var out T
	if err := scanOne(ctx, db, &out, query, args...); err != nil {
		return nil, err
	}
	return &out, nil
}

// scanOne scans a single row into dest, normalizing a missing row to pgx.ErrNoRows.
func scanOne(ctx context.Context, db DB, dest any, query string, args ...any) error {
	if err := pgxscan.Get(ctx, db, dest, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return pgx.ErrNoRows
		}
		return err
	}
	return nil
}
