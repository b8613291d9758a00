package audit

import (
	"time"

	"veridev/pkg/domain"
)

// Action names a registry engine event. One event is emitted per successful
// mutating operation.
type Action string

const (
	ActionSellerRegistered     Action = "seller.registered"
	ActionSellerUpdated        Action = "seller.updated"
	ActionProductCreated       Action = "product.created"
	ActionCertificatePurchased Action = "certificate.purchased"
	ActionCertificateCompleted Action = "certificate.completed"
	ActionCertificateRefunded  Action = "certificate.refunded"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp     time.Time
	Actor         domain.Identity
	Action        Action
	ProductID     domain.ProductID
	CertificateID domain.CertificateID
	Asset         domain.AssetRef
	Amount        uint64
	Detail        string
}
