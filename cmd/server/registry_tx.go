package main

import (
	"context"
	"database/sql"
	"sync"
	"time"

	dErrors "veridev/pkg/domain-errors"
	txcontext "veridev/pkg/platform/tx"
)

const defaultRegistryTxTimeout = 5 * time.Second

// registryPostgresTx is the database-backed engine boundary. It opens one
// sql.Tx per operation and carries it in context so every store joins the
// same transaction; the mutex keeps the single-writer discipline the ledger
// invariants assume even when the database itself permits concurrent
// transactions.
type registryPostgresTx struct {
	mu      sync.Mutex
	db      *sql.DB
	timeout time.Duration
}

func newRegistryPostgresTx(db *sql.DB, timeout time.Duration) *registryPostgresTx {
	return &registryPostgresTx{db: db, timeout: timeout}
}

func (t *registryPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultRegistryTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	return nil
}
