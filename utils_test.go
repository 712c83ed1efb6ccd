package kali_test

import (
	"testing"

	"github.com/gopsql/kali"
)

type (
	user    struct{}
	product struct{}
)

func (_ product) TableName() string {
	return "different_products"
}

func TestToTableName(t *testing.T) {
	cases := [][]interface{}{
		{struct{}{}, "error_no_table_name"},
		{user{}, "user"},
		{&user{}, "user"},
		{product{}, "different_products"},
	}
	for i, c := range cases {
		got := kali.ToTableName(c[0])
		expected, ok := c[1].(string)
		if !ok {
			t.Errorf("case %d type conversion failed", i)
		}
		if got == expected {
			t.Logf("case %d passed", i)
		} else {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}
}

func TestToUnderscore(t *testing.T) {
	cases := [][]string{
		{"column", "column"},
		{"Column", "column"},
		{"ColumnName", "column_name"},
		{"UserProfile", "user_profile"},
	}
	for i, c := range cases {
		got := kali.ToUnderscore(c[0])
		if got == c[1] {
			t.Logf("case %d passed", i)
		} else {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}
}

func TestToPlural(t *testing.T) {
	cases := [][]string{
		{"", ""},
		{"post", "posts"},
		{"category", "categories"},
	}
	for i, c := range cases {
		got := kali.ToPlural(c[0])
		if got == c[1] {
			t.Logf("case %d passed", i)
		} else {
			t.Errorf("case %d failed, got %s", i, got)
		}
	}
	if got := kali.ToPluralUnderscore("PostComment"); got != "post_comments" {
		t.Errorf("ToPluralUnderscore() = %s", got)
	}
}
