package kali

import (
	"reflect"

	"github.com/go-openapi/inflect"
)

var (
	// DefaultColumnNamer converts a struct field name into a column name
	// when the field has no "column" tag. Default is ToUnderscore.
	DefaultColumnNamer func(string) string = ToUnderscore

	// DefaultTableNamer converts a struct name into a table name when the
	// struct has no TableName() method and no TableName option is given.
	// Default is ToUnderscore, so "UserProfile" is stored in
	// "user_profile". Set it to ToPluralUnderscore for "user_profiles".
	DefaultTableNamer func(string) string = ToUnderscore
)

// ToTableName returns the table name of a struct. If the struct has a
// "TableName() string" method, its non-empty result is used. Otherwise the
// struct name is converted with DefaultTableNamer. Anonymous structs yield
// "error_no_table_name".
func ToTableName(object interface{}) (name string) {
	if o, ok := object.(interface{ TableName() string }); ok {
		name = o.TableName()
		if name != "" {
			return
		}
	}
	rt := reflect.TypeOf(object)
	if rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt != nil && rt.Kind() == reflect.Struct {
		name = rt.Name()
		if DefaultTableNamer != nil {
			name = DefaultTableNamer(name)
		}
	}
	if name == "" {
		return "error_no_table_name"
	}
	return
}

// ToColumnName converts a struct field name into a column name with
// DefaultColumnNamer.
func ToColumnName(in string) string {
	if DefaultColumnNamer == nil {
		return in
	}
	return DefaultColumnNamer(in)
}

// ToUnderscore converts a "CamelCase" word to its "snake_case" form. For
// example, "FullName" is converted to "full_name".
func ToUnderscore(in string) string {
	return inflect.Underscore(in)
}

// ToPlural converts a word to its plural form, "post" to "posts".
func ToPlural(in string) string {
	if in == "" {
		return ""
	}
	return inflect.Pluralize(in)
}

// ToPluralUnderscore converts a "CamelCase" word to its plural "snake_case"
// form. For example, "PostComment" is converted to "post_comments".
func ToPluralUnderscore(in string) string {
	return ToPlural(ToUnderscore(in))
}
