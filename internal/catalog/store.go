package catalog

import (
	"context"

	"veridev/pkg/domain"
)

// Store persists products in creation order. Append allocates the next id
// from a strictly increasing counter starting at 1 and returns it; a failed
// operation never consumes an id. FindByID returns sentinel.ErrNotFound for
// unknown ids. ListAll returns the full ordered set, never a partial view.
type Store interface {
	Append(ctx context.Context, product *Product) (domain.ProductID, error)
	FindByID(ctx context.Context, id domain.ProductID) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
}
