package kali

import "strings"

type (
	// Expr is an immutable filter predicate over columns of type C. Leaves
	// compare one column with bound values; And and Or nodes combine two
	// subtrees. The zero Expr is empty: it renders nothing and combining
	// it with another Expr yields the other one.
	Expr[C Column] struct {
		n *node[C]
	}

	node[C Column] struct {
		op          operator
		column      C
		value       Value
		values      []Value
		left, right *node[C]
		raw         string
	}

	operator uint8
)

const (
	opEqual operator = iota
	opGt
	opLt
	opLike
	opIn
	opAnd
	opOr
	opRaw
)

func leaf[C Column](op operator, column C, value Value) Expr[C] {
	return Expr[C]{n: &node[C]{op: op, column: column, value: value}}
}

// Raw returns a predicate copied verbatim into the statement. It binds no
// values, so it must not contain placeholders.
func Raw[C Column](fragment string) Expr[C] {
	return Expr[C]{n: &node[C]{op: opRaw, raw: fragment}}
}

// Both is left.And(right).
func Both[C Column](left, right Expr[C]) Expr[C] {
	return left.And(right)
}

// Either is left.Or(right).
func Either[C Column](left, right Expr[C]) Expr[C] {
	return left.Or(right)
}

// And returns "(e) AND (other)". Repeated calls nest to the left:
// a.And(b).And(c) renders "((a) AND (b)) AND (c)".
func (e Expr[C]) And(other Expr[C]) Expr[C] {
	return e.combine(opAnd, other)
}

// Or returns "(e) OR (other)".
func (e Expr[C]) Or(other Expr[C]) Expr[C] {
	return e.combine(opOr, other)
}

func (e Expr[C]) combine(op operator, other Expr[C]) Expr[C] {
	if e.n == nil {
		return other
	}
	if other.n == nil {
		return e
	}
	return Expr[C]{n: &node[C]{op: op, left: e.n, right: other.n}}
}

// IsZero reports whether e is the empty predicate.
func (e Expr[C]) IsZero() bool { return e.n == nil }

// ToSQL renders the predicate and the values bound to its placeholders,
// in placeholder order.
func (e Expr[C]) ToSQL() (string, []Value) {
	var b strings.Builder
	var values []Value
	e.write(&b, &values)
	return b.String(), values
}

func (e Expr[C]) String() string {
	s, _ := e.ToSQL()
	return s
}

func (e Expr[C]) write(b *strings.Builder, values *[]Value) {
	if e.n != nil {
		e.n.write(b, values)
	}
}

// write walks the tree left to right, so values are appended in the same
// order as the placeholders they belong to.
func (n *node[C]) write(b *strings.Builder, values *[]Value) {
	switch n.op {
	case opEqual:
		writeColumn(b, n.column)
		if n.value.IsNull() {
			b.WriteString(" IS NULL")
			return
		}
		b.WriteString(" = ?")
		*values = append(*values, n.value)
	case opGt:
		writeColumn(b, n.column)
		b.WriteString(" > ?")
		*values = append(*values, n.value)
	case opLt:
		writeColumn(b, n.column)
		b.WriteString(" < ?")
		*values = append(*values, n.value)
	case opLike:
		writeColumn(b, n.column)
		b.WriteString(" LIKE ?")
		*values = append(*values, n.value)
	case opIn:
		writeColumn(b, n.column)
		b.WriteString(" IN (")
		for i, v := range n.values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('?')
			*values = append(*values, v)
		}
		b.WriteByte(')')
	case opAnd, opOr:
		b.WriteByte('(')
		n.left.write(b, values)
		if n.op == opAnd {
			b.WriteString(") AND (")
		} else {
			b.WriteString(") OR (")
		}
		n.right.write(b, values)
		b.WriteByte(')')
	case opRaw:
		b.WriteString(n.raw)
	}
}
