package kali

import (
	"context"
	"errors"
	"fmt"

	"github.com/gopsql/db"
)

type (
	// TransactionBlock runs inside a transaction. db.Tx is an Executor, so
	// every builder and Model operation can run on it.
	TransactionBlock func(context.Context, db.Tx) error
)

// MustTransaction is like Transaction but panics if the transaction fails.
func MustTransaction(ctx context.Context, conn db.DB, block TransactionBlock) {
	if err := Transaction(ctx, conn, block); err != nil {
		panic(err)
	}
}

// Transaction starts a transaction on conn and runs block in it. The
// transaction is committed if block returns nil and rolled back if it
// returns an error or panics. A panic is returned as the error, except a
// *UsageError, which is raised again after the rollback. BEGIN,
// COMMIT and ROLLBACK are logged with DefaultLogger.
//
//	err := kali.Transaction(ctx, conn, func(ctx context.Context, tx db.Tx) error {
//		if _, err := users.DeleteOne(ctx, tx, 1); err != nil {
//			return err
//		}
//		return users.InsertRecord(User{Username: "prax"}).FetchOne(ctx, tx, &user)
//	})
func Transaction(ctx context.Context, conn db.DB, block TransactionBlock) (err error) {
	log := func(sql string) {
		if DefaultLogger != nil {
			DefaultLogger.Debug(sql)
		}
	}
	log("BEGIN")
	var tx db.Tx
	tx, err = conn.BeginTx(ctx, "", false)
	if err != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log("ROLLBACK")
			tx.Rollback(ctx)
			if IsUsageError(r) {
				panic(r)
			}
			if rerr, ok := r.(error); ok {
				err = rerr
			} else {
				err = errors.New(fmt.Sprint(r))
			}
		} else if err != nil {
			log("ROLLBACK")
			tx.Rollback(ctx)
		} else {
			log("COMMIT")
			err = tx.Commit(ctx)
		}
	}()
	err = block(ctx, tx)
	return
}
