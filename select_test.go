package kali

import (
	"reflect"
	"testing"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		build      func() *SelectBuilder[userColumn]
		wantSQL    string
		wantValues []Value
	}{
		{
			name:    "all columns",
			build:   func() *SelectBuilder[userColumn] { return SelectFrom[userColumn]("users") },
			wantSQL: "SELECT * FROM users",
		},
		{
			name: "columns",
			build: func() *SelectBuilder[userColumn] {
				return SelectFrom[userColumn]("users").Columns(userID, userUsername)
			},
			wantSQL: `SELECT "id", "username" FROM users`,
		},
		{
			name: "chained columns",
			build: func() *SelectBuilder[userColumn] {
				return SelectFrom[userColumn]("users").Columns(userID).Columns(userUsername)
			},
			wantSQL: `SELECT "id", "username" FROM users`,
		},
		{
			name: "single filter has no parentheses",
			build: func() *SelectBuilder[userColumn] {
				return SelectFrom[userColumn]("users").Filter(Eq(userID, 1))
			},
			wantSQL:    `SELECT * FROM users WHERE "id" = ?`,
			wantValues: []Value{Integer(1)},
		},
		{
			name: "every clause",
			build: func() *SelectBuilder[userColumn] {
				return SelectFrom[userColumn]("users").
					Columns(userID, userUsername).
					Filter(Eq(userID, 1)).
					Filter(Eq(userUsername, "admin")).
					OrderBy(Asc(userUsername)).
					Limit(10).
					Offset(5)
			},
			wantSQL:    `SELECT "id", "username" FROM users WHERE ("id" = ?) AND ("username" = ?) ORDER BY "username" ASC LIMIT 10 OFFSET 5`,
			wantValues: []Value{Integer(1), Text("admin")},
		},
		{
			name: "several orderings",
			build: func() *SelectBuilder[userColumn] {
				return SelectFrom[userColumn]("users").
					OrderBy(Desc(userUsername), AscNullsLast(userID))
			},
			wantSQL: `SELECT * FROM users ORDER BY "username" DESC, "id" ASC NULLS LAST`,
		},
		{
			name: "offset without limit",
			build: func() *SelectBuilder[userColumn] {
				return SelectFrom[userColumn]("users").Offset(3)
			},
			wantSQL: "SELECT * FROM users LIMIT -1 OFFSET 3",
		},
		{
			name: "in and like",
			build: func() *SelectBuilder[userColumn] {
				return SelectFrom[userColumn]("users").
					Filter(In(userID, 1, 2).Or(Like(userUsername, "h%")))
			},
			wantSQL:    `SELECT * FROM users WHERE ("id" IN (?, ?)) OR ("username" LIKE ?)`,
			wantValues: []Value{Integer(1), Integer(2), Text("h%")},
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

func TestSelectRenderTwice(t *testing.T) {
	t.Parallel()
	s := SelectFrom[userColumn]("users").Filter(Eq(userID, 1))
	sql1, values1 := s.ToSQL()
	sql2, values2 := s.ToSQL()
	if sql1 != sql2 || !reflect.DeepEqual(values1, values2) {
		t.Errorf("rendering differs: %q %v / %q %v", sql1, values1, sql2, values2)
	}
	if s.String() != sql1 {
		t.Errorf("String() = %q, want %q", s.String(), sql1)
	}
}

func TestSelectSingle(t *testing.T) {
	t.Parallel()
	s := SelectFrom[userColumn]("users").Filter(Eq(userID, 1))
	sql, _ := s.q.single().toSQL()
	if want := `SELECT * FROM users WHERE "id" = ? LIMIT 1`; sql != want {
		t.Errorf("single() = %q, want %q", sql, want)
	}
	if got := s.String(); got != `SELECT * FROM users WHERE "id" = ?` {
		t.Errorf("builder changed: %q", got)
	}
	s.Limit(5)
	sql, _ = s.q.single().toSQL()
	if want := `SELECT * FROM users WHERE "id" = ? LIMIT 5`; sql != want {
		t.Errorf("single() = %q, want %q", sql, want)
	}
}

func TestSelectAggregate(t *testing.T) {
	t.Parallel()
	s := SelectFrom[userColumn]("users").
		Columns(userID).
		Filter(Gt(userID, 3)).
		OrderBy(Asc(userID)).
		Limit(2).
		Offset(1)
	count, _ := s.aggregate("COUNT(*)").ToSQL()
	if want := `SELECT COUNT(*) FROM users WHERE "id" > ?`; count != want {
		t.Errorf("count = %q, want %q", count, want)
	}
	if want := `SELECT "id" FROM users WHERE "id" > ? ORDER BY "id" ASC LIMIT 2 OFFSET 1`; s.String() != want {
		t.Errorf("builder changed: %q", s.String())
	}
}

// Clauses not offered by a builder type are still rejected when a record is
// assembled by hand.
func TestRenderRejectsIllegalClauses(t *testing.T) {
	t.Parallel()
	limit := int64(1)
	tests := []struct {
		name string
		q    *query[userColumn]
	}{
		{"columns on delete", &query[userColumn]{table: "users", kind: kindDelete, columns: []userColumn{userID}}},
		{"order by on update", &query[userColumn]{table: "users", kind: kindUpdate,
			set:     []Assignment[userColumn]{Assign(userID, 1)},
			orderBy: []Ordering[userColumn]{Asc(userID)}}},
		{"limit on delete", &query[userColumn]{table: "users", kind: kindDelete, limit: &limit}},
		{"offset on insert", &query[userColumn]{table: "users", kind: kindInsert, offset: &limit}},
		{"returning on select", &query[userColumn]{table: "users", kind: kindSelect, returning: []userColumn{userID}}},
		{"where on insert", &query[userColumn]{table: "users", kind: kindInsert, filter: Eq(userID, 1)}},
		{"values on update", &query[userColumn]{table: "users", kind: kindUpdate,
			set:    []Assignment[userColumn]{Assign(userID, 1)},
			values: []Assignment[userColumn]{Assign(userID, 1)}}},
		{"set on select", &query[userColumn]{table: "users", kind: kindSelect, set: []Assignment[userColumn]{Assign(userID, 1)}}},
		{"set on insert without conflict", &query[userColumn]{table: "users", kind: kindInsert, set: []Assignment[userColumn]{Assign(userID, 1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustPanicUsage(t, func() { tt.q.toSQL() })
		})
	}
}
