package catalog

import (
	"time"

	"veridev/pkg/domain"
)

// Product is a certification offer. Products are immutable after creation;
// there is no update or delete operation. The owning seller must be
// registered at creation time, but a later registration change does not
// retroactively invalidate the product.
//
// Price is in the smallest unit of the payment asset. Zero is accepted:
// callers are responsible for sane pricing, and a zero-price listing behaves
// as a free certification path.
type Product struct {
	ID         domain.ProductID `json:"id"`
	DeviceType string           `json:"device_type"`
	Price      uint64           `json:"price"`
	Asset      domain.AssetRef  `json:"asset"`
	Seller     domain.Identity  `json:"seller"`
	CreatedAt  time.Time        `json:"created_at"`
}
