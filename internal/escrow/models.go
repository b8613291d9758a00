package escrow

import (
	"time"

	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
)

// DeviceClaim is the buyer's description of the device at purchase time.
// It is recorded verbatim and never interpreted by the engine.
type DeviceClaim struct {
	Brand             string
	Model             string
	Variant           string
	SerialFingerprint domain.SerialFingerprint
}

// VerificationReport holds the seller's findings when a certification is
// completed. All fields are empty until then.
type VerificationReport struct {
	Brand     string
	Model     string
	Variant   string
	Condition string
	Remarks   string
}

// Certificate is one device certification order. The escrowed funds for it
// belong to the referenced product's price and asset; the product record is
// immutable, so the certificate does not duplicate them.
type Certificate struct {
	ID          domain.CertificateID
	ProductID   domain.ProductID
	Buyer       domain.Identity
	Seller      domain.Identity
	Claim       DeviceClaim
	Report      VerificationReport
	Status      Status
	PurchasedAt time.Time
	FinalizedAt time.Time // zero while pending
}

// NewCertificate builds a pending certificate for a purchased product.
// The ID is assigned by the store on append.
func NewCertificate(buyer, seller domain.Identity, productID domain.ProductID, claim DeviceClaim, now time.Time) *Certificate {
	return &Certificate{
		ProductID:   productID,
		Buyer:       buyer,
		Seller:      seller,
		Claim:       claim,
		Status:      StatusPending,
		PurchasedAt: now,
	}
}

// CanComplete checks that the caller may record a verification result for
// this certificate.
func (c *Certificate) CanComplete(caller domain.Identity) error {
	if caller != c.Seller {
		return dErrors.New(dErrors.CodeNotAuthorized, "only the selling party may complete a certification")
	}
	if !CanTransition(c.Status, StatusCompleted) {
		return dErrors.New(dErrors.CodeAlreadyFinalized, "certificate is already finalized")
	}
	return nil
}

// ApplyCompletion records the verification report and marks the certificate
// completed. Callers must check CanComplete first.
func (c *Certificate) ApplyCompletion(report VerificationReport, now time.Time) {
	c.Report = report
	c.Status = StatusCompleted
	c.FinalizedAt = now
}

// CanRefund checks that the caller may refund this certificate. A completed
// certification can never be refunded; that failure gets its own code because
// callers distinguish it from a double refund.
func (c *Certificate) CanRefund(caller domain.Identity) error {
	if caller != c.Seller {
		return dErrors.New(dErrors.CodeNotAuthorized, "only the selling party may refund a certification")
	}
	if c.Status == StatusCompleted {
		return dErrors.New(dErrors.CodeCannotRefundCompleted, "completed certifications cannot be refunded")
	}
	if !CanTransition(c.Status, StatusRefunded) {
		return dErrors.New(dErrors.CodeAlreadyFinalized, "certificate is already finalized")
	}
	return nil
}

// ApplyRefund marks the certificate refunded. Callers must check CanRefund
// first and move the escrowed funds back before applying.
func (c *Certificate) ApplyRefund(now time.Time) {
	c.Status = StatusRefunded
	c.FinalizedAt = now
}
