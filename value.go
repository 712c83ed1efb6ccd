package kali

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

type (
	// Kind is the storage class of a Value.
	Kind uint8

	// Value is a scalar SQL value bound to a "?" placeholder. The zero
	// Value is NULL. Values never carry driver specific types; Interface()
	// returns one of nil, bool, string, int64, float64 or []byte.
	Value struct {
		kind Kind
		b    bool
		i    int64
		f    float64
		s    string
		blob []byte
	}
)

// TimeFormat is the text form of time.Time values, the layout SQLite date
// functions and modernc.org/sqlite read back.
const TimeFormat = "2006-01-02 15:04:05.999999999-07:00"

const (
	KindNull Kind = iota
	KindBool
	KindText
	KindInteger
	KindReal
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindText:
		return "Text"
	case KindInteger:
		return "Integer"
	case KindReal:
		return "Real"
	case KindBlob:
		return "Blob"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Null returns the NULL value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Integer returns a 64-bit integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Real returns a double precision value.
func Real(f float64) Value { return Value{kind: KindReal, f: f} }

// Blob returns a binary value. The slice is not copied.
func Blob(b []byte) Value { return Value{kind: KindBlob, blob: b} }

// Kind returns the storage class of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Interface returns the value as a database/sql driver argument.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindText:
		return v.s
	case KindInteger:
		return v.i
	case KindReal:
		return v.f
	case KindBlob:
		return v.blob
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return "Bool(" + strconv.FormatBool(v.b) + ")"
	case KindText:
		return "Text(" + strconv.Quote(v.s) + ")"
	case KindInteger:
		return "Integer(" + strconv.FormatInt(v.i, 10) + ")"
	case KindReal:
		return "Real(" + strconv.FormatFloat(v.f, 'g', -1, 64) + ")"
	case KindBlob:
		return fmt.Sprintf("Blob(%x)", v.blob)
	}
	return "Null"
}

// ValueOf converts a Go scalar to a Value:
//
//	nil, nil pointers           -> Null
//	bool                        -> Bool
//	string                      -> Text
//	[]byte                      -> Blob
//	int, int8 ... int64         -> Integer
//	uint8 ... uint64, uint      -> Integer (above math.MaxInt64 panics)
//	float32, float64            -> Real
//	time.Time                   -> Text in TimeFormat
//	*T                          -> ValueOf(*T)
//	driver.Valuer               -> ValueOf(Value())
//
// Named types are converted by their underlying kind. Any other type is a
// programming error and panics with *UsageError.
func ValueOf(x interface{}) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case string:
		return Text(v)
	case []byte:
		return Blob(v)
	case int:
		return Integer(int64(v))
	case int8:
		return Integer(int64(v))
	case int16:
		return Integer(int64(v))
	case int32:
		return Integer(int64(v))
	case int64:
		return Integer(v)
	case uint8:
		return Integer(int64(v))
	case uint16:
		return Integer(int64(v))
	case uint32:
		return Integer(int64(v))
	case uint:
		return fromUint(uint64(v))
	case uint64:
		return fromUint(v)
	case float32:
		return Real(float64(v))
	case float64:
		return Real(v)
	case time.Time:
		return Text(v.Format(TimeFormat))
	case driver.Valuer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return Null()
		}
		dv, err := v.Value()
		if err != nil {
			panic(usageErrorf("ValueOf", "%T.Value(): %v", x, err))
		}
		return ValueOf(dv)
	}
	return valueOfReflect(reflect.ValueOf(x), x)
}

func valueOfReflect(rv reflect.Value, x interface{}) Value {
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return Null()
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.String:
		return Text(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Real(rv.Float())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Blob(rv.Bytes())
		}
	}
	panic(usageErrorf("ValueOf", "unsupported value type %T", x))
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		panic(usageErrorf("ValueOf", "unsigned value %d overflows int64", u))
	}
	return Integer(int64(u))
}

func valuesOf(in []interface{}) []Value {
	out := make([]Value, 0, len(in))
	for _, v := range in {
		out = append(out, ValueOf(v))
	}
	return out
}

func driverArgs(values []Value) []interface{} {
	args := make([]interface{}, 0, len(values))
	for _, v := range values {
		args = append(args, v.Interface())
	}
	return args
}
