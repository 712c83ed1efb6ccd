package kali

import "github.com/gopsql/logger"

// DeleteBuilder builds a DELETE statement.
type DeleteBuilder[C Column] struct {
	statement[C]
}

// DeleteFrom starts a DELETE statement on table. Without Filter every row
// is deleted.
func DeleteFrom[C Column](table string) *DeleteBuilder[C] {
	return &DeleteBuilder[C]{statement[C]{newQuery[C](table, kindDelete)}}
}

// Filter adds a WHERE predicate. Multiple calls are combined with AND.
func (s *DeleteBuilder[C]) Filter(expr Expr[C]) *DeleteBuilder[C] {
	s.q.addFilter(expr)
	return s
}

// Returning sets the RETURNING columns.
func (s *DeleteBuilder[C]) Returning(columns ...C) *DeleteBuilder[C] {
	s.q.returning = append(s.q.returning, columns...)
	return s
}

// SetLogger sets the logger the statement is logged with, overriding
// DefaultLogger. Nil disables logging.
func (s *DeleteBuilder[C]) SetLogger(logger logger.Logger) *DeleteBuilder[C] {
	s.q.logger = logger
	return s
}
