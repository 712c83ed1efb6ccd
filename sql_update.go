package kali

import "github.com/gopsql/logger"

// UpdateBuilder builds an UPDATE statement. It must have at least one Set
// before it is rendered.
type UpdateBuilder[C Column] struct {
	statement[C]
}

// Update starts an UPDATE statement on table.
//
//	kali.Update[kali.Col[User]]("users").
//		Set(UserName, "james").
//		Filter(UserID.Eq(1)).
//		Execute(ctx, ex)
func Update[C Column](table string) *UpdateBuilder[C] {
	return &UpdateBuilder[C]{statement[C]{newQuery[C](table, kindUpdate)}}
}

// Set adds an assignment to the SET list.
func (s *UpdateBuilder[C]) Set(column C, value interface{}) *UpdateBuilder[C] {
	s.q.set = append(s.q.set, Assign(column, value))
	return s
}

// SetChanges adds several assignments, see Model.Changes.
func (s *UpdateBuilder[C]) SetChanges(assignments ...Assignment[C]) *UpdateBuilder[C] {
	s.q.set = append(s.q.set, assignments...)
	return s
}

// Filter adds a WHERE predicate. Multiple calls are combined with AND.
func (s *UpdateBuilder[C]) Filter(expr Expr[C]) *UpdateBuilder[C] {
	s.q.addFilter(expr)
	return s
}

// Returning sets the RETURNING columns.
func (s *UpdateBuilder[C]) Returning(columns ...C) *UpdateBuilder[C] {
	s.q.returning = append(s.q.returning, columns...)
	return s
}

// SetLogger sets the logger the statement is logged with, overriding
// DefaultLogger. Nil disables logging.
func (s *UpdateBuilder[C]) SetLogger(logger logger.Logger) *UpdateBuilder[C] {
	s.q.logger = logger
	return s
}
