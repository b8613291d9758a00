// Package assets provides the fungible-asset transfer capability the escrow
// ledger depends on. The engine never holds balances itself; it instructs the
// asset ledger to move funds and treats the result as all-or-nothing.
package assets

import (
	"context"
	"errors"

	"veridev/pkg/domain"
)

// Transfer failure facts. The escrow service translates any of these into a
// transfer_failed domain error; which one occurred is detail for logs.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAllowanceExceeded = errors.New("allowance exceeded")
)

// Ledger moves amount units of an asset from one identity to another on the
// engine's behalf. The payer must have pre-authorized the engine via Approve
// for at least the amount; the transfer debits the allowance alongside the
// balance so one approval cannot be spent twice.
type Ledger interface {
	Transfer(ctx context.Context, from, to domain.Identity, asset domain.AssetRef, amount uint64) error
	Approve(ctx context.Context, owner domain.Identity, asset domain.AssetRef, amount uint64) error
	BalanceOf(ctx context.Context, identity domain.Identity, asset domain.AssetRef) (uint64, error)
	Allowance(ctx context.Context, owner domain.Identity, asset domain.AssetRef) (uint64, error)
}
