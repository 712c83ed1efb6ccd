package kali

import (
	"context"

	"github.com/gopsql/db"
)

// Executor runs rendered statements. db.DB and db.Tx both satisfy it.
// Pooling, transactions, timeouts and cancellation belong to the executor;
// the ctx of every terminal operation is handed to it unchanged.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (db.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (db.Rows, error)
}

var (
	_ Executor = db.DB(nil)
	_ Executor = db.Tx(nil)
)
