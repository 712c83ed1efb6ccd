package kali

import (
	"context"

	"github.com/gopsql/logger"
)

// SelectBuilder builds a SELECT statement. Only clauses legal for SELECT
// are offered.
type SelectBuilder[C Column] struct {
	statement[C]
}

// SelectFrom starts a SELECT statement on table. Without Columns, all
// columns are selected.
//
//	var users []User
//	err := kali.SelectFrom[kali.Col[User]]("users").
//		Filter(UserID.Gt(10)).
//		OrderBy(UserName.Asc()).
//		FetchAll(ctx, ex, &users)
func SelectFrom[C Column](table string) *SelectBuilder[C] {
	return &SelectBuilder[C]{statement[C]{newQuery[C](table, kindSelect)}}
}

// Columns adds columns to the projection.
func (s *SelectBuilder[C]) Columns(columns ...C) *SelectBuilder[C] {
	s.q.columns = append(s.q.columns, columns...)
	return s
}

// Filter adds a WHERE predicate. Multiple calls are combined with AND.
func (s *SelectBuilder[C]) Filter(expr Expr[C]) *SelectBuilder[C] {
	s.q.addFilter(expr)
	return s
}

// OrderBy appends ORDER BY entries.
func (s *SelectBuilder[C]) OrderBy(orderings ...Ordering[C]) *SelectBuilder[C] {
	s.q.orderBy = append(s.q.orderBy, orderings...)
	return s
}

// Limit sets the LIMIT clause.
func (s *SelectBuilder[C]) Limit(limit int64) *SelectBuilder[C] {
	s.q.limit = &limit
	return s
}

// Offset sets the OFFSET clause.
func (s *SelectBuilder[C]) Offset(offset int64) *SelectBuilder[C] {
	s.q.offset = &offset
	return s
}

// Count returns the number of rows matching the filter. Projection,
// ordering, limit and offset are ignored.
func (s *SelectBuilder[C]) Count(ctx context.Context, ex Executor) (count int64, err error) {
	err = s.aggregate("COUNT(*)").FetchOne(ctx, ex, &count)
	return
}

// Exists reports whether at least one row matches the filter.
func (s *SelectBuilder[C]) Exists(ctx context.Context, ex Executor) (bool, error) {
	var one int64
	return s.aggregate("1").FetchOptional(ctx, ex, &one)
}

func (s *SelectBuilder[C]) aggregate(projection string) statement[C] {
	q := *s.q
	q.columns = nil
	q.projection = projection
	q.orderBy = nil
	q.limit = nil
	q.offset = nil
	return statement[C]{&q}
}

// SetLogger sets the logger the statement is logged with, overriding
// DefaultLogger. Nil disables logging.
func (s *SelectBuilder[C]) SetLogger(logger logger.Logger) *SelectBuilder[C] {
	s.q.logger = logger
	return s
}
