package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/mathieuvidal/examplan/internal/db"
)

// FailOnNthExecUoW is a unit of work whose transactions return Err from the
// Nth write statement. Plan replacement issues a delete followed by a run of
// inserts, so pointing FailOn at a mid-run insert exercises the rollback
// path of a partially written plan.
//
// Writes are counted from 1. Reads are never counted and never fail.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

// WithinTx runs fn inside a real transaction with writes routed through the
// failure counter. An erroring fn rolls back, as in production.
func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	counter := &countingTx{DBTX: tx, failOn: u.FailOn, injected: u.Err}
	if fnErr := fn(ctx, counter); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type countingTx struct {
	db.DBTX
	writes   atomic.Int32
	failOn   int32
	injected error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.writes.Add(1) == c.failOn {
		return nil, c.injected
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
