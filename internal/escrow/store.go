package escrow

import (
	"context"

	"veridev/pkg/domain"
)

// Store persists certificates and maintains the per-party purchase and sale
// indexes. Append assigns the certificate ID (sequential, starting at 1) and
// records it under both the buyer's and the seller's index in the same write.
//
// FindByID and Update return sentinel.ErrNotFound for unknown IDs. List
// methods return the IDs in ascending order and an empty slice, not an
// error, for parties with no history.
type Store interface {
	Append(ctx context.Context, cert *Certificate) (domain.CertificateID, error)
	FindByID(ctx context.Context, id domain.CertificateID) (*Certificate, error)
	Update(ctx context.Context, cert *Certificate) error
	ListByBuyer(ctx context.Context, buyer domain.Identity) ([]domain.CertificateID, error)
	ListBySeller(ctx context.Context, seller domain.Identity) ([]domain.CertificateID, error)
}
