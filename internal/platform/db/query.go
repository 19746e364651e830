package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ehr/prescribeit/pkg/pagination"
)

// Query builds keyset-paginated list queries. Filters are written with `?`
// placeholders which are numbered as they are added.
type Query struct {
	table  string
	cols   string
	cursor string
	where  string
	args   []interface{}
}

// NewQuery creates a Query over table selecting cols, paged on cursorCol.
func NewQuery(table, cols, cursorCol string) *Query {
	return &Query{table: table, cols: cols, cursor: cursorCol}
}

// Where appends a clause (without leading "AND"). Each `?` in clause binds
// the next argument.
func (q *Query) Where(clause string, args ...interface{}) *Query {
	var b strings.Builder
	n := len(q.args)
	for _, r := range clause {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	q.where += " AND " + b.String()
	q.args = append(q.args, args...)
	return q
}

// Eq adds `col = v` when v is non-nil.
func Eq[T any](q *Query, col string, v *T) *Query {
	if v == nil {
		return q
	}
	return q.Where(col+" = ?", *v)
}

// EqString adds `col = v` when v is not empty.
func (q *Query) EqString(col, v string) *Query {
	if v == "" {
		return q
	}
	return q.Where(col+" = ?", v)
}

// In adds `col = ANY(vs)` when vs is not empty.
func In[T any](q *Query, col string, vs []T) *Query {
	if len(vs) == 0 {
		return q
	}
	return q.Where(col+" = ANY(?)", vs)
}

// CountSQL returns the count over the full filtered set, ignoring the cursor.
func (q *Query) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1%s", q.table, q.where)
}

// CountArgs returns the arguments for CountSQL.
func (q *Query) CountArgs() []interface{} {
	return q.args
}

// PageSQL returns the data query for one page and its arguments.
func (q *Query) PageSQL(p pagination.Params) (string, []interface{}) {
	args := make([]interface{}, len(q.args), len(q.args)+2)
	copy(args, q.args)

	sql := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1%s", q.cols, q.table, q.where)
	if p.StartingID != nil {
		args = append(args, *p.StartingID)
		sql += fmt.Sprintf(" AND %s > $%d", q.cursor, len(args))
	}
	args = append(args, p.PageSize)
	sql += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d", q.cursor, len(args))
	return sql, args
}

// Page runs q and scans one page of rows into T by db tag, along with the
// total size of the filtered set.
func Page[T any](ctx context.Context, conn Querier, q *Query, p pagination.Params) ([]*T, int, error) {
	var total int
	if err := conn.QueryRow(ctx, q.CountSQL(), q.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", q.table, err)
	}

	sql, args := q.PageSQL(p)
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", q.table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, 0, fmt.Errorf("scan %s: %w", q.table, err)
	}
	return items, total, nil
}

// One runs sql and scans exactly one row into T. A missing row is reported as
// apperr.ErrNotFound.
func One[T any](ctx context.Context, conn Querier, sql string, args ...interface{}) (*T, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, Translate(err)
	}
	return item, nil
}

// All runs sql and scans every row into T.
func All[T any](ctx context.Context, conn Querier, sql string, args ...interface{}) ([]*T, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
}

// Exists reports whether sql returns at least one row.
func Exists(ctx context.Context, conn Querier, sql string, args ...interface{}) (bool, error) {
	var ok bool
	err := conn.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&ok)
	return ok, err
}

// Affected converts a zero-row write into apperr.ErrNotFound.
func Affected(what string, id int64, rows int64) error {
	if rows == 0 {
		return notFound(what, id)
	}
	return nil
}

// Delete runs a single-row DELETE. A zero-row delete is ErrNotFound and a
// foreign key violation, meaning other rows still point at this one, is
// ErrConflict.
func Delete(ctx context.Context, conn Querier, what string, id int64, sql string, args ...interface{}) error {
	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		return translateDelete(err, what, id)
	}
	return Affected(what, id, tag.RowsAffected())
}
