package seller

import (
	"context"

	"veridev/pkg/domain"
)

// Store persists seller accounts. Implementations return sentinel.ErrConflict
// from Create when the identity is already registered and sentinel.ErrNotFound
// when the identity is unknown.
type Store interface {
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	FindByIdentity(ctx context.Context, identity domain.Identity) (*Account, error)
}
