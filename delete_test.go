package kali

import (
	"reflect"
	"testing"
)

func TestDelete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		build      func() *DeleteBuilder[userColumn]
		wantSQL    string
		wantValues []Value
	}{
		{
			name:    "all rows",
			build:   func() *DeleteBuilder[userColumn] { return DeleteFrom[userColumn]("users") },
			wantSQL: "DELETE FROM users",
		},
		{
			name: "filter",
			build: func() *DeleteBuilder[userColumn] {
				return DeleteFrom[userColumn]("users").Filter(Eq(userID, 1))
			},
			wantSQL:    `DELETE FROM users WHERE "id" = ?`,
			wantValues: []Value{Integer(1)},
		},
		{
			name: "two filters",
			build: func() *DeleteBuilder[userColumn] {
				return DeleteFrom[userColumn]("users").
					Filter(Gt(userID, 1)).
					Filter(Lt(userID, 5))
			},
			wantSQL:    `DELETE FROM users WHERE ("id" > ?) AND ("id" < ?)`,
			wantValues: []Value{Integer(1), Integer(5)},
		},
		{
			name: "returning",
			build: func() *DeleteBuilder[userColumn] {
				return DeleteFrom[userColumn]("users").
					Filter(Eq(userUsername, "miller")).
					Returning(userID)
			},
			wantSQL:    `DELETE FROM users WHERE "username" = ? RETURNING "id"`,
			wantValues: []Value{Text("miller")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, values := tt.build().ToSQL()
			if sql != tt.wantSQL {
				t.Errorf("ToSQL() = %q, want %q", sql, tt.wantSQL)
			}
			if !reflect.DeepEqual(values, tt.wantValues) {
				t.Errorf("values = %v, want %v", values, tt.wantValues)
			}
		})
	}
}
