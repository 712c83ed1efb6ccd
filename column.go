package kali

import "strings"

type (
	// Column is implemented by every column enumeration. ColumnName returns
	// the persisted field name, which is used verbatim as the SQL
	// identifier.
	Column interface {
		ColumnName() string
	}

	// Col is a column of entity E. Declaring columns as Col[E] makes a
	// filter on one entity's column unusable in a query on another entity.
	//
	//	var UserID = kali.Col[User]("id")
	//	kali.SelectFrom[kali.Col[User]]("users").Filter(UserID.Eq(1))
	//
	// Model[E].Col returns checked Col[E] values.
	Col[E any] string
)

func (c Col[E]) ColumnName() string { return string(c) }

func (c Col[E]) Eq(value interface{}) Expr[Col[E]]   { return Eq(c, value) }
func (c Col[E]) Gt(value interface{}) Expr[Col[E]]   { return Gt(c, value) }
func (c Col[E]) Lt(value interface{}) Expr[Col[E]]   { return Lt(c, value) }
func (c Col[E]) Like(value interface{}) Expr[Col[E]] { return Like(c, value) }
func (c Col[E]) IsNull() Expr[Col[E]]                { return IsNull(c) }

func (c Col[E]) In(values ...interface{}) Expr[Col[E]] { return In(c, values...) }

func (c Col[E]) Asc() Ordering[Col[E]]            { return Asc(c) }
func (c Col[E]) Desc() Ordering[Col[E]]           { return Desc(c) }
func (c Col[E]) AscNullsFirst() Ordering[Col[E]]  { return AscNullsFirst(c) }
func (c Col[E]) AscNullsLast() Ordering[Col[E]]   { return AscNullsLast(c) }
func (c Col[E]) DescNullsFirst() Ordering[Col[E]] { return DescNullsFirst(c) }
func (c Col[E]) DescNullsLast() Ordering[Col[E]]  { return DescNullsLast(c) }

// Eq returns the predicate column = value. Comparing with a NULL value
// renders "IS NULL" and binds nothing.
func Eq[C Column](column C, value interface{}) Expr[C] {
	return leaf(opEqual, column, ValueOf(value))
}

// Gt returns the predicate column > value.
func Gt[C Column](column C, value interface{}) Expr[C] {
	return leaf(opGt, column, ValueOf(value))
}

// Lt returns the predicate column < value.
func Lt[C Column](column C, value interface{}) Expr[C] {
	return leaf(opLt, column, ValueOf(value))
}

// Like returns the predicate column LIKE pattern.
func Like[C Column](column C, pattern interface{}) Expr[C] {
	return leaf(opLike, column, ValueOf(pattern))
}

// In returns the predicate column IN (values...), one placeholder per value
// in the given order.
func In[C Column](column C, values ...interface{}) Expr[C] {
	return Expr[C]{n: &node[C]{op: opIn, column: column, values: valuesOf(values)}}
}

// IsNull is Eq(column, nil).
func IsNull[C Column](column C) Expr[C] {
	return leaf(opEqual, column, Null())
}

func writeColumn(b *strings.Builder, c Column) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(c.ColumnName(), `"`, `""`))
	b.WriteByte('"')
}

func writeColumns[C Column](b *strings.Builder, columns []C) {
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		writeColumn(b, c)
	}
}
