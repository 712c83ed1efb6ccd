package kali

import (
	"encoding/json"
	"io"
	"reflect"
)

type (
	// ModelWithPermittedFields wraps a Model with a whitelist of columns for
	// mass assignment. Create instances with Permit or PermitAllExcept, then
	// use Filter to extract the allowed columns from user input.
	ModelWithPermittedFields[E any] struct {
		*Model[E]
		permittedFieldsIdx []int
	}
)

// Permit creates a ModelWithPermittedFields that only allows the given
// columns in Filter. If no columns are given, nothing is permitted.
func (m *Model[E]) Permit(columns ...Col[E]) *ModelWithPermittedFields[E] {
	idx := []int{}
	for i, field := range m.fields {
		for _, c := range columns {
			if string(c) == field.ColumnName {
				idx = append(idx, i)
				break
			}
		}
	}
	return &ModelWithPermittedFields[E]{m, idx}
}

// PermitAllExcept creates a ModelWithPermittedFields that allows every
// column except the given ones.
func (m *Model[E]) PermitAllExcept(columns ...Col[E]) *ModelWithPermittedFields[E] {
	idx := []int{}
	for i, field := range m.fields {
		found := false
		for _, c := range columns {
			if string(c) == field.ColumnName {
				found = true
				break
			}
		}
		if !found {
			idx = append(idx, i)
		}
	}
	return &ModelWithPermittedFields[E]{m, idx}
}

// PermittedColumns returns the permitted columns.
func (m ModelWithPermittedFields[E]) PermittedColumns() []Col[E] {
	out := make([]Col[E], 0, len(m.permittedFieldsIdx))
	for _, i := range m.permittedFieldsIdx {
		out = append(out, Col[E](m.fields[i].ColumnName))
	}
	return out
}

// Filter keeps the permitted columns from multiple inputs. Inputs can be
// RawChanges (map[string]interface{}), JSON-encoded objects (string, []byte
// or io.Reader) keyed by column name, or a value of E. Map and JSON values
// are converted to the Go type of the field, so a JSON number lands as an
// Integer in an int column. Later inputs override earlier ones.
//
//	users.Permit(UserName).Filter(`{"username": "james", "id": 99}`)
//	// [username = Text("james")]
func (m ModelWithPermittedFields[E]) Filter(inputs ...interface{}) Changes[E] {
	values := map[int]Value{}
	for _, input := range inputs {
		switch in := input.(type) {
		case RawChanges:
			m.filterPermits(in, values)
		case map[string]interface{}:
			m.filterPermits(in, values)
		case string:
			var c RawChanges
			if json.Unmarshal([]byte(in), &c) == nil {
				m.filterPermits(c, values)
			}
		case []byte:
			var c RawChanges
			if json.Unmarshal(in, &c) == nil {
				m.filterPermits(c, values)
			}
		case io.Reader:
			var c RawChanges
			if json.NewDecoder(in).Decode(&c) == nil {
				m.filterPermits(c, values)
			}
		case E:
			rv := reflect.ValueOf(&in).Elem()
			for _, i := range m.permittedFieldsIdx {
				values[i] = ValueOf(rv.FieldByIndex(m.fields[i].index).Interface())
			}
		}
	}
	out := Changes[E]{}
	for _, i := range m.permittedFieldsIdx {
		if v, ok := values[i]; ok {
			out = append(out, Assignment[Col[E]]{Column: Col[E](m.fields[i].ColumnName), Value: v})
		}
	}
	return out
}

func (m ModelWithPermittedFields[E]) filterPermits(in RawChanges, out map[int]Value) {
	for _, i := range m.permittedFieldsIdx {
		field := m.fields[i]
		raw, ok := in[field.ColumnName]
		if !ok {
			continue
		}
		j, err := json.Marshal(raw)
		if err != nil {
			continue
		}
		x := reflect.New(field.typ)
		if err := json.Unmarshal(j, x.Interface()); err != nil {
			continue
		}
		out[i] = ValueOf(x.Elem().Interface())
	}
}
