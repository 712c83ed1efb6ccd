package kali

import (
	"slices"

	"github.com/gopsql/logger"
)

type (
	// InsertBuilder builds an INSERT statement.
	InsertBuilder[C Column] struct {
		statement[C]
	}

	// ConflictBuilder is an INSERT statement with an ON CONFLICT clause.
	// SET assignments are only offered here.
	ConflictBuilder[C Column] struct {
		statement[C]
	}
)

// InsertInto starts an INSERT statement on table. Without values it
// renders DEFAULT VALUES.
//
//	kali.InsertInto[kali.Col[User]]("users").
//		Value(UserName, "prax").
//		Returning(UserID, UserName).
//		FetchOne(ctx, ex, &user)
func InsertInto[C Column](table string) *InsertBuilder[C] {
	return &InsertBuilder[C]{statement[C]{newQuery[C](table, kindInsert)}}
}

// Assign returns the assignment column = value for Values and SetChanges.
func Assign[C Column](column C, value interface{}) Assignment[C] {
	return Assignment[C]{Column: column, Value: ValueOf(value)}
}

// Value adds a column and its value. Columns and placeholders are rendered
// in the order of the calls.
func (s *InsertBuilder[C]) Value(column C, value interface{}) *InsertBuilder[C] {
	s.q.values = append(s.q.values, Assign(column, value))
	return s
}

// Values adds several assignments, see Model.Changes.
func (s *InsertBuilder[C]) Values(assignments ...Assignment[C]) *InsertBuilder[C] {
	s.q.values = append(s.q.values, assignments...)
	return s
}

// Returning sets the RETURNING columns.
func (s *InsertBuilder[C]) Returning(columns ...C) *InsertBuilder[C] {
	s.q.returning = append(s.q.returning, columns...)
	return s
}

// OnConflict adds an ON CONFLICT clause with the given target columns.
// ConflictIgnore renders DO NOTHING and may omit the target. ConflictUpdate
// renders DO UPDATE SET and needs a target and at least one Set.
//
//	kali.InsertInto[kali.Col[User]]("users").
//		Value(UserID, 1).Value(UserName, "prax").
//		OnConflict(kali.ConflictUpdate, UserID).
//		Set(UserName, "holden")
//	// INSERT INTO users ("id", "username") VALUES (?, ?)
//	// ON CONFLICT ("id") DO UPDATE SET "username" = ?
//
// The returned builder owns a copy of the statement; later calls on s do
// not affect it.
func (s *InsertBuilder[C]) OnConflict(policy OnConflict, columns ...C) *ConflictBuilder[C] {
	q := s.q.clone()
	q.conflict = &conflictClause[C]{columns: slices.Clone(columns), policy: policy}
	return &ConflictBuilder[C]{statement[C]{q}}
}

// Set adds an assignment to the DO UPDATE SET list.
func (s *ConflictBuilder[C]) Set(column C, value interface{}) *ConflictBuilder[C] {
	s.q.set = append(s.q.set, Assign(column, value))
	return s
}

// SetExcluded assigns each column the value the conflicting insert
// proposed: "col" = excluded."col".
func (s *ConflictBuilder[C]) SetExcluded(columns ...C) *ConflictBuilder[C] {
	for _, c := range columns {
		s.q.set = append(s.q.set, Assignment[C]{Column: c, excluded: true})
	}
	return s
}

// Returning sets the RETURNING columns.
func (s *ConflictBuilder[C]) Returning(columns ...C) *ConflictBuilder[C] {
	s.q.returning = append(s.q.returning, columns...)
	return s
}

// SetLogger sets the logger the statement is logged with, overriding
// DefaultLogger. Nil disables logging.
func (s *InsertBuilder[C]) SetLogger(logger logger.Logger) *InsertBuilder[C] {
	s.q.logger = logger
	return s
}
