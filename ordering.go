package kali

import "strings"

type (
	// Direction of an ORDER BY entry.
	Direction uint8

	// Ordering is one ORDER BY entry.
	Ordering[C Column] struct {
		Column    C
		Direction Direction
	}
)

const (
	DirAsc Direction = iota
	DirDesc
	DirAscNullsFirst
	DirAscNullsLast
	DirDescNullsFirst
	DirDescNullsLast
)

func (d Direction) String() string {
	switch d {
	case DirDesc:
		return "DESC"
	case DirAscNullsFirst:
		return "ASC NULLS FIRST"
	case DirAscNullsLast:
		return "ASC NULLS LAST"
	case DirDescNullsFirst:
		return "DESC NULLS FIRST"
	case DirDescNullsLast:
		return "DESC NULLS LAST"
	}
	return "ASC"
}

func Asc[C Column](c C) Ordering[C]            { return Ordering[C]{c, DirAsc} }
func Desc[C Column](c C) Ordering[C]           { return Ordering[C]{c, DirDesc} }
func AscNullsFirst[C Column](c C) Ordering[C]  { return Ordering[C]{c, DirAscNullsFirst} }
func AscNullsLast[C Column](c C) Ordering[C]   { return Ordering[C]{c, DirAscNullsLast} }
func DescNullsFirst[C Column](c C) Ordering[C] { return Ordering[C]{c, DirDescNullsFirst} }
func DescNullsLast[C Column](c C) Ordering[C]  { return Ordering[C]{c, DirDescNullsLast} }

func (o Ordering[C]) String() string {
	var b strings.Builder
	o.write(&b)
	return b.String()
}

func (o Ordering[C]) write(b *strings.Builder) {
	writeColumn(b, o.Column)
	b.WriteByte(' ')
	b.WriteString(o.Direction.String())
}
