// Package registry owns the engine-wide transactional boundary. Every
// mutating ledger operation runs inside a Tx so the whole engine behaves as a
// single logical thread of atomic, sequential operations.
package registry

import (
	"context"
	"sync"
	"time"

	dErrors "veridev/pkg/domain-errors"
)

// Tx serializes engine mutations. Implementations may wrap a database
// transaction or, in-memory, one exclusive lock. All services that mutate
// engine state must share a single Tx instance; ordering between concurrent
// callers is whatever order they acquire the boundary in.
type Tx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// defaultTxTimeout bounds how long one operation may hold the engine.
const defaultTxTimeout = 5 * time.Second

// SerialTx is the in-memory boundary: one mutex, no sharding. The ledger
// invariants span seller, catalog and escrow state, so finer-grained locking
// would reintroduce interleaving the engine model forbids.
type SerialTx struct {
	mu      sync.Mutex
	timeout time.Duration
}

// NewSerialTx returns a SerialTx with the given transaction timeout;
// zero means the default.
func NewSerialTx(timeout time.Duration) *SerialTx {
	return &SerialTx{timeout: timeout}
}

func (t *SerialTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring the lock; an operation admitted after a
	// long queue wait should not start with a dead context.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}
