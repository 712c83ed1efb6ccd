package kali

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type status string

func TestValueOf(t *testing.T) {
	t.Parallel()
	var nilInt *int
	five := 5
	name := "holden"
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		input interface{}
		want  Value
	}{
		{"nil", nil, Null()},
		{"value passes through", Integer(3), Integer(3)},
		{"bool", true, Bool(true)},
		{"string", "admin", Text("admin")},
		{"named string", status("active"), Text("active")},
		{"bytes", []byte{1, 2}, Blob([]byte{1, 2})},
		{"int", 1, Integer(1)},
		{"int8", int8(-3), Integer(-3)},
		{"int16", int16(300), Integer(300)},
		{"int32", int32(-70000), Integer(-70000)},
		{"int64", int64(math.MinInt64), Integer(math.MinInt64)},
		{"uint8", uint8(255), Integer(255)},
		{"uint32", uint32(math.MaxUint32), Integer(math.MaxUint32)},
		{"uint64 max int64", uint64(math.MaxInt64), Integer(math.MaxInt64)},
		{"float32", float32(1.5), Real(1.5)},
		{"float64", 2.25, Real(2.25)},
		{"nil pointer", nilInt, Null()},
		{"int pointer", &five, Integer(5)},
		{"string pointer", &name, Text("holden")},
		{"time", when, Text("2024-01-02 03:04:05+00:00")},
		{"null string", sql.NullString{}, Null()},
		{"valid null int64", sql.NullInt64{Int64: 7, Valid: true}, Integer(7)},
		{"decimal", decimal.RequireFromString("1.25"), Text("1.25")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValueOf(tt.input)
			if got.String() != tt.want.String() {
				t.Errorf("ValueOf(%#v) = %s, want %s", tt.input, got, tt.want)
			}
			if got.Kind() != tt.want.Kind() {
				t.Errorf("ValueOf(%#v).Kind() = %s, want %s", tt.input, got.Kind(), tt.want.Kind())
			}
		})
	}
}

func TestValueOfUnsupported(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input interface{}
	}{
		{"uint64 overflow", uint64(math.MaxUint64)},
		{"uint overflow", uint(math.MaxInt64) + 1},
		{"struct", struct{ A int }{1}},
		{"map", map[string]int{}},
		{"int slice", []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustPanicUsage(t, func() { ValueOf(tt.input) })
		})
	}
}

func TestValueInterface(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value Value
		want  interface{}
	}{
		{Null(), nil},
		{Bool(false), false},
		{Text("x"), "x"},
		{Integer(-1), int64(-1)},
		{Real(0.5), 0.5},
	}
	for _, tt := range tests {
		if got := tt.value.Interface(); got != tt.want {
			t.Errorf("%s.Interface() = %#v, want %#v", tt.value, got, tt.want)
		}
	}
	if b, ok := Blob([]byte("ab")).Interface().([]byte); !ok || string(b) != "ab" {
		t.Errorf("Blob.Interface() = %#v", Blob([]byte("ab")).Interface())
	}
}

func TestValueString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value Value
		want  string
	}{
		{Null(), "Null"},
		{Value{}, "Null"},
		{Bool(true), "Bool(true)"},
		{Text("admin"), `Text("admin")`},
		{Integer(1), "Integer(1)"},
		{Real(1.5), "Real(1.5)"},
		{Blob([]byte{0xca, 0xfe}), "Blob(cafe)"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if !Null().IsNull() || Integer(0).IsNull() {
		t.Error("IsNull() mismatch")
	}
}
