package assets

import (
	"context"
	"sync"

	"veridev/pkg/domain"
)

type accountKey struct {
	identity domain.Identity
	asset    domain.AssetRef
}

// InMemoryLedger is the default asset backend: balances and allowances in two
// maps under one lock, so a transfer debits and credits atomically.
type InMemoryLedger struct {
	mu         sync.RWMutex
	balances   map[accountKey]uint64
	allowances map[accountKey]uint64
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		balances:   make(map[accountKey]uint64),
		allowances: make(map[accountKey]uint64),
	}
}

// Mint credits an identity out of thin air. Funding helper for tests and
// development; a real deployment fronts an external asset system instead.
func (l *InMemoryLedger) Mint(_ context.Context, identity domain.Identity, asset domain.AssetRef, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[accountKey{identity, asset}] += amount
}

func (l *InMemoryLedger) Approve(_ context.Context, owner domain.Identity, asset domain.AssetRef, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allowances[accountKey{owner, asset}] = amount
	return nil
}

func (l *InMemoryLedger) Transfer(_ context.Context, from, to domain.Identity, asset domain.AssetRef, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	fromKey := accountKey{from, asset}
	if l.allowances[fromKey] < amount {
		return ErrAllowanceExceeded
	}
	if l.balances[fromKey] < amount {
		return ErrInsufficientFunds
	}
	l.allowances[fromKey] -= amount
	l.balances[fromKey] -= amount
	l.balances[accountKey{to, asset}] += amount
	return nil
}

func (l *InMemoryLedger) BalanceOf(_ context.Context, identity domain.Identity, asset domain.AssetRef) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[accountKey{identity, asset}], nil
}

func (l *InMemoryLedger) Allowance(_ context.Context, owner domain.Identity, asset domain.AssetRef) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowances[accountKey{owner, asset}], nil
}
