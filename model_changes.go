package kali

import (
	"encoding/json"
	"reflect"
)

type (
	// RawChanges is a map of column names (or struct field names) to
	// values, used as input to Model.Changes and Filter.
	RawChanges map[string]interface{}

	// Changes is an ordered list of assignments to columns of E, in struct
	// field order. It is the input to InsertBuilder.Values and
	// UpdateBuilder.SetChanges.
	//
	//	changes := users.Changes(kali.RawChanges{"username": "james"})
	//	users.Update().SetChanges(changes...).Filter(UserID.Eq(1))
	Changes[E any] []Assignment[Col[E]]
)

// Changes converts RawChanges to Changes. Keys may be column names or struct
// field names; unknown keys are ignored. If permitted columns are given,
// only those are kept.
func (m Model[E]) Changes(in RawChanges, permitted ...Col[E]) (out Changes[E]) {
	out = Changes[E]{}
	for _, i := range m.permittedIndexes(permitted) {
		field := m.fields[i]
		v, ok := in[field.ColumnName]
		if !ok {
			v, ok = in[field.Name]
		}
		if !ok {
			continue
		}
		out = append(out, Assign(Col[E](field.ColumnName), v))
	}
	return
}

// RecordChanges returns the values of the given columns of e, or of every
// column if none is given.
func (m Model[E]) RecordChanges(e E, columns ...Col[E]) (out Changes[E]) {
	rv := reflect.ValueOf(&e).Elem()
	out = Changes[E]{}
	for _, i := range m.permittedIndexes(columns) {
		field := m.fields[i]
		out = append(out, Assignment[Col[E]]{
			Column: Col[E](field.ColumnName),
			Value:  ValueOf(rv.FieldByIndex(field.index).Interface()),
		})
	}
	return
}

func (m Model[E]) permittedIndexes(permitted []Col[E]) []int {
	idx := make([]int, 0, len(m.fields))
	for i, field := range m.fields {
		if len(permitted) == 0 {
			idx = append(idx, i)
			continue
		}
		for _, c := range permitted {
			if string(c) == field.ColumnName {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

// Columns returns the assigned columns in order.
func (c Changes[E]) Columns() []Col[E] {
	out := make([]Col[E], len(c))
	for i, a := range c {
		out[i] = a.Column
	}
	return out
}

func (c Changes[E]) MarshalJSON() ([]byte, error) {
	data := map[string]interface{}{}
	for _, a := range c {
		data[a.Column.ColumnName()] = a.Value.Interface()
	}
	return json.Marshal(data)
}

func (c Changes[E]) String() string {
	j, _ := json.MarshalIndent(c, "", "  ")
	return string(j)
}
