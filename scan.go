package kali

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/gopsql/db"
)

type structInfo struct {
	fields   []Field
	byColumn map[string]int
}

var (
	errNoField = errors.New("no field for column")

	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	timeType    = reflect.TypeOf(time.Time{})

	structInfos sync.Map // reflect.Type -> *structInfo
)

func typeInfo(rt reflect.Type) *structInfo {
	if v, ok := structInfos.Load(rt); ok {
		return v.(*structInfo)
	}
	fields := parseStruct(rt)
	info := &structInfo{fields: fields, byColumn: make(map[string]int, len(fields))}
	for i, f := range fields {
		info.byColumn[f.ColumnName] = i
	}
	v, _ := structInfos.LoadOrStore(rt, info)
	return v.(*structInfo)
}

func targetValue(dest interface{}) (reflect.Value, error) {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv.Elem(), nil
}

// scansByField reports whether rows are stored field by field into rt
// rather than into rt as a whole.
func scansByField(rt reflect.Type) bool {
	return rt.Kind() == reflect.Struct && rt != timeType &&
		!reflect.PointerTo(rt).Implements(scannerType)
}

// scanRow stores the current row into rv. Struct targets receive each
// column in the field whose column name matches; every other target must
// be fed by a single column.
func scanRow(scannable db.Scannable, columns []string, rv reflect.Value) error {
	rt := rv.Type()
	if !scansByField(rt) {
		if len(columns) != 1 {
			return &DecodeError{
				Target: rt.String(),
				Err:    fmt.Errorf("%d columns cannot be stored into a single value", len(columns)),
			}
		}
		if err := scannable.Scan(rv.Addr().Interface()); err != nil {
			return &DecodeError{Column: columns[0], Target: rt.String(), Err: err}
		}
		return nil
	}
	info := typeInfo(rt)
	dests := make([]interface{}, len(columns))
	for i, column := range columns {
		idx, ok := info.byColumn[column]
		if !ok {
			return &DecodeError{Column: column, Target: rt.String(), Err: errNoField}
		}
		dests[i] = rv.FieldByIndex(info.fields[idx].index).Addr().Interface()
	}
	if err := scannable.Scan(dests...); err != nil {
		return &DecodeError{Target: rt.String(), Err: err}
	}
	return nil
}
