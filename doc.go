// Package kali builds typed, parameterized SQL statements for SQLite and
// resolves relations between entities.
//
// # Overview
//
// Statements are built from column values of a caller-defined type, so a
// predicate on one table's columns cannot be used in a query on another
// table. Every value is bound to a "?" placeholder; only table and column
// identifiers and literal clause keywords end up in the statement text.
//
// Key features include:
//   - One builder type per statement kind, offering only legal clauses
//   - Filter expressions combined with And / Or and rendered with explicit
//     parentheses
//   - ON CONFLICT DO NOTHING / DO UPDATE SET and RETURNING
//   - Model-based CRUD derived from struct definitions
//   - Lazy one-to-one and one-to-many relations declared on the owning side
//   - Query results scanning into structs, slices of structs and scalars
//   - Transactions and schema generation
//
// # Basic Usage
//
//	type User struct {
//		ID       int64 `column:"id"`
//		Username string
//	}
//
//	users := kali.NewModel[User](kali.TableName("users"))
//	ex := standard.NewDB("sqlite", sqlDB) // any db.DB is an Executor
//
//	// Insert a record
//	var user User
//	users.Insert().Value(users.Col("username"), "prax").
//		Returning(users.Columns()...).FetchOne(ctx, ex, &user)
//
//	// Find records
//	user, err := users.FetchOne(ctx, ex, user.ID)
//
//	// Update a record
//	users.Update().Set(users.Col("username"), "james").
//		Filter(users.PrimaryKey().Eq(user.ID)).Execute(ctx, ex)
//
//	// Delete a record
//	users.DeleteOne(ctx, ex, user.ID)
//
// Builders can also be used without a Model, with any type implementing
// Column:
//
//	type UserColumn string
//
//	func (c UserColumn) ColumnName() string { return string(c) }
//
//	kali.SelectFrom[UserColumn]("users").
//		Columns("id", "username").
//		Filter(kali.Eq[UserColumn]("id", 1)).
//		ToSQL()
//	// SELECT "id", "username" FROM users WHERE "id" = ?  [Integer(1)]
//
// # Relations
//
// The owning side holds the foreign key and declares the relation once.
// The referenced side resolves its end through the same declaration:
//
//	var PostUser = kali.BelongsTo(posts, posts.Col("user_id"), users)
//
//	func (p Post) User() kali.Reference[User]   { return PostUser.Reference(p) }
//	func (u User) Posts() kali.Collection[Post] { return PostUser.Collection(u) }
//
//	author, err := post.User().Load(ctx, ex)
//	list, err := author.Posts().LoadAll(ctx, ex)
//
// # Executors
//
// Statements run on an Executor. Both db.DB and db.Tx from
// github.com/gopsql/db satisfy it, and the context passed to every
// terminal operation reaches the driver:
//
//	import (
//		"database/sql"
//		"github.com/gopsql/standard"
//		_ "modernc.org/sqlite"
//	)
//
//	c, _ := sql.Open("sqlite", "file.db")
//	conn := standard.NewDB("sqlite", c)
//	users.FetchAll(ctx, conn)
package kali
