package kali

import (
	"context"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/gopsql/logger"
)

// DefaultLogger is used by builders not created from a Model. Statements
// are logged with Debug before they are handed to the executor. Nil
// disables logging.
var DefaultLogger logger.Logger

type (
	// OnConflict is the action of an INSERT ... ON CONFLICT clause.
	OnConflict uint8

	// Assignment is one "column = value" pair of a VALUES or SET list.
	Assignment[C Column] struct {
		Column C
		Value  Value

		excluded bool
	}

	kind uint8

	conflictClause[C Column] struct {
		columns []C
		policy  OnConflict
	}

	// query is the state shared by every builder. Facets are only
	// meaningful for some kinds; render checks them again so a builder
	// assembled by hand cannot produce malformed SQL.
	query[C Column] struct {
		table      string
		kind       kind
		columns    []C
		projection string
		filter     Expr[C]
		values     []Assignment[C]
		set        []Assignment[C]
		conflict   *conflictClause[C]
		returning  []C
		orderBy    []Ordering[C]
		limit      *int64
		offset     *int64
		logger     logger.Logger
	}

	// statement provides rendering and the terminal operations to every
	// builder.
	statement[C Column] struct {
		q *query[C]
	}
)

const (
	// ConflictIgnore renders ON CONFLICT ... DO NOTHING.
	ConflictIgnore OnConflict = iota
	// ConflictUpdate renders ON CONFLICT (...) DO UPDATE SET ...
	ConflictUpdate
)

const (
	kindSelect kind = iota
	kindInsert
	kindUpdate
	kindDelete
)

func (k kind) String() string {
	switch k {
	case kindSelect:
		return "SELECT"
	case kindInsert:
		return "INSERT"
	case kindUpdate:
		return "UPDATE"
	case kindDelete:
		return "DELETE"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func newQuery[C Column](table string, k kind) *query[C] {
	return &query[C]{table: table, kind: k, logger: DefaultLogger}
}

func (q *query[C]) addFilter(expr Expr[C]) {
	q.filter = q.filter.And(expr)
}

func (q *query[C]) assertKind(clause string, kinds ...kind) {
	for _, k := range kinds {
		if q.kind == k {
			return
		}
	}
	panic(usageErrorf(q.kind.String(), "%s is not allowed in a %s statement", clause, q.kind))
}

// single returns q, or a copy of q limited to one row if q is a SELECT
// without a limit.
func (q *query[C]) single() *query[C] {
	if q.kind != kindSelect || q.limit != nil {
		return q
	}
	c := *q
	one := int64(1)
	c.limit = &one
	return &c
}

// clone returns a copy of q that shares no clause lists with it.
func (q *query[C]) clone() *query[C] {
	c := *q
	c.columns = slices.Clone(q.columns)
	c.values = slices.Clone(q.values)
	c.set = slices.Clone(q.set)
	c.returning = slices.Clone(q.returning)
	c.orderBy = slices.Clone(q.orderBy)
	if q.conflict != nil {
		cc := *q.conflict
		cc.columns = slices.Clone(q.conflict.columns)
		c.conflict = &cc
	}
	return &c
}

// toSQL renders the statement in fixed clause order. The returned values
// are in the order of the "?" placeholders in the text.
func (q *query[C]) toSQL() (string, []Value) {
	var b strings.Builder
	var values []Value

	switch q.kind {
	case kindSelect:
		b.WriteString("SELECT ")
	case kindInsert:
		b.WriteString("INSERT INTO ")
	case kindUpdate:
		b.WriteString("UPDATE ")
	case kindDelete:
		b.WriteString("DELETE")
	}

	if len(q.columns) > 0 {
		q.assertKind("column list", kindSelect)
		writeColumns(&b, q.columns)
	} else if q.kind == kindSelect {
		if q.projection != "" {
			b.WriteString(q.projection)
		} else {
			b.WriteByte('*')
		}
	}

	switch q.kind {
	case kindSelect, kindDelete:
		b.WriteString(" FROM ")
	}
	b.WriteString(q.table)

	if q.kind == kindInsert {
		if len(q.values) == 0 {
			b.WriteString(" DEFAULT VALUES")
		} else {
			b.WriteString(" (")
			for i, a := range q.values {
				if i > 0 {
					b.WriteString(", ")
				}
				writeColumn(&b, a.Column)
			}
			b.WriteString(") VALUES (")
			for i, a := range q.values {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteByte('?')
				values = append(values, a.Value)
			}
			b.WriteByte(')')
		}
	} else if len(q.values) > 0 {
		q.assertKind("VALUES", kindInsert)
	}

	switch q.kind {
	case kindUpdate:
		if len(q.set) == 0 {
			panic(usageErrorf("UPDATE", "no SET assignments"))
		}
		b.WriteString(" SET ")
		writeAssignments(&b, q.set, &values)
	case kindInsert:
		if q.conflict != nil {
			if len(q.values) == 0 {
				panic(usageErrorf("INSERT", "ON CONFLICT requires at least one value"))
			}
			q.writeConflict(&b, &values)
		} else if len(q.set) > 0 {
			panic(usageErrorf("INSERT", "SET is only allowed after ON CONFLICT"))
		}
	default:
		if len(q.set) > 0 {
			q.assertKind("SET", kindUpdate, kindInsert)
		}
	}

	if !q.filter.IsZero() {
		q.assertKind("WHERE", kindSelect, kindUpdate, kindDelete)
		b.WriteString(" WHERE ")
		q.filter.write(&b, &values)
	}

	if len(q.orderBy) > 0 {
		q.assertKind("ORDER BY", kindSelect)
		b.WriteString(" ORDER BY ")
		for i, o := range q.orderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			o.write(&b)
		}
	}

	if q.limit != nil {
		q.assertKind("LIMIT", kindSelect)
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatInt(*q.limit, 10))
	}

	if q.offset != nil {
		q.assertKind("OFFSET", kindSelect)
		if q.limit == nil {
			// SQLite accepts OFFSET only after LIMIT; -1 means no limit.
			b.WriteString(" LIMIT -1")
		}
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.FormatInt(*q.offset, 10))
	}

	if len(q.returning) > 0 {
		q.assertKind("RETURNING", kindInsert, kindUpdate, kindDelete)
		b.WriteString(" RETURNING ")
		writeColumns(&b, q.returning)
	}

	return b.String(), values
}

func (q *query[C]) writeConflict(b *strings.Builder, values *[]Value) {
	c := q.conflict
	b.WriteString(" ON CONFLICT")
	if len(c.columns) > 0 {
		b.WriteString(" (")
		writeColumns(b, c.columns)
		b.WriteByte(')')
	}
	switch c.policy {
	case ConflictIgnore:
		if len(q.set) > 0 {
			panic(usageErrorf("INSERT", "SET has no effect with ON CONFLICT DO NOTHING"))
		}
		b.WriteString(" DO NOTHING")
	case ConflictUpdate:
		if len(c.columns) == 0 {
			panic(usageErrorf("INSERT", "ON CONFLICT DO UPDATE requires conflict target columns"))
		}
		if len(q.set) == 0 {
			panic(usageErrorf("INSERT", "ON CONFLICT DO UPDATE requires at least one SET assignment"))
		}
		b.WriteString(" DO UPDATE SET ")
		writeAssignments(b, q.set, values)
	default:
		panic(usageErrorf("INSERT", "unknown conflict policy %d", c.policy))
	}
}

func writeAssignments[C Column](b *strings.Builder, set []Assignment[C], values *[]Value) {
	for i, a := range set {
		if i > 0 {
			b.WriteString(", ")
		}
		writeColumn(b, a.Column)
		if a.excluded {
			b.WriteString(" = excluded.")
			writeColumn(b, a.Column)
			continue
		}
		b.WriteString(" = ?")
		*values = append(*values, a.Value)
	}
}

func (q *query[C]) log(sql string, args []interface{}) {
	if q.logger == nil {
		return
	}
	if len(args) == 0 {
		q.logger.Debug(sql)
		return
	}
	q.logger.Debug(sql, args)
}

// ToSQL renders the statement text and the values bound to its
// placeholders. Rendering has no side effects.
func (s statement[C]) ToSQL() (string, []Value) {
	return s.q.toSQL()
}

// String returns the statement text.
func (s statement[C]) String() string {
	sql, _ := s.q.toSQL()
	return sql
}

// Execute runs the statement and returns the number of rows affected.
func (s statement[C]) Execute(ctx context.Context, ex Executor) (int64, error) {
	sql, values := s.q.toSQL()
	args := driverArgs(values)
	s.q.log(sql, args)
	result, err := ex.ExecContext(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// FetchOne stores the first row into dest, which must be a pointer to a
// struct or to a scalar. ErrNoRows is returned if there is no row. A
// SELECT without a limit is sent with LIMIT 1.
func (s statement[C]) FetchOne(ctx context.Context, ex Executor, dest interface{}) error {
	found, err := s.FetchOptional(ctx, ex, dest)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoRows
	}
	return nil
}

// FetchOptional is like FetchOne but reports a missing row with
// found == false instead of an error. dest is left untouched in that case.
func (s statement[C]) FetchOptional(ctx context.Context, ex Executor, dest interface{}) (found bool, err error) {
	rv, err := targetValue(dest)
	if err != nil {
		return false, err
	}
	q := s.q.single()
	sql, values := q.toSQL()
	args := driverArgs(values)
	q.log(sql, args)
	rows, err := ex.QueryContext(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return false, rows.Err()
	}
	columns, err := rows.Columns()
	if err != nil {
		return false, err
	}
	if err := scanRow(rows, columns, rv); err != nil {
		return false, err
	}
	return true, nil
}

// FetchAll appends every row to the slice dest points to.
func (s statement[C]) FetchAll(ctx context.Context, ex Executor, dest interface{}) error {
	rv, err := targetValue(dest)
	if err != nil {
		return err
	}
	if rv.Kind() != reflect.Slice {
		return ErrInvalidTarget
	}
	sql, values := s.q.toSQL()
	args := driverArgs(values)
	s.q.log(sql, args)
	rows, err := ex.QueryContext(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	elemType := rv.Type().Elem()
	for rows.Next() {
		elem := reflect.New(elemType).Elem()
		if err := scanRow(rows, columns, elem); err != nil {
			return err
		}
		rv.Set(reflect.Append(rv, elem))
	}
	return rows.Err()
}
