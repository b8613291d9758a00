package escrow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"veridev/internal/assets"
	"veridev/internal/audit"
	"veridev/internal/catalog"
	"veridev/internal/registry"
	"veridev/internal/seller"
	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
)

const (
	buyerID  = domain.Identity("0xbuyer")
	sellerID = domain.Identity("0xseller")
	usdt     = domain.AssetRef("0xusdt")

	phonePrice = uint64(15_000_000)
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	ledger  *assets.InMemoryLedger
	store   *InMemoryStore
	events  *audit.InMemoryStore
	sellers *seller.Service
	catalog *catalog.Service
	svc     *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	tx := registry.NewSerialTx(time.Second)
	publisher := audit.NewPublisher(audit.NewInMemoryStore())
	s.events = audit.NewInMemoryStore()

	sellerStore := seller.NewInMemoryStore()
	s.sellers = seller.New(sellerStore, tx, seller.WithAuditPublisher(publisher))

	catalogStore := catalog.NewInMemoryStore()
	s.catalog = catalog.New(catalogStore, s.sellers, tx, catalog.WithAuditPublisher(publisher))

	s.ledger = assets.NewInMemoryLedger()
	s.store = NewInMemoryStore()
	s.svc = New(s.store, catalogStore, s.ledger, tx,
		WithAuditPublisher(audit.NewPublisher(s.events)))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// listPhone registers the seller, lists a phone certification offer and
// returns its id. Mirrors the onboarding every lifecycle test needs.
func (s *ServiceSuite) listPhone() domain.ProductID {
	_, err := s.sellers.Register(s.ctx, sellerID, "Rome", "Rome Phone Service")
	s.Require().NoError(err)
	product, err := s.catalog.Create(s.ctx, sellerID, "phone", phonePrice, usdt)
	s.Require().NoError(err)
	return product.ID
}

func (s *ServiceSuite) fundBuyer() {
	s.ledger.Mint(s.ctx, buyerID, usdt, 100_000_000)
	s.Require().NoError(s.ledger.Approve(s.ctx, buyerID, usdt, phonePrice))
}

func (s *ServiceSuite) balance(identity domain.Identity) uint64 {
	b, err := s.ledger.BalanceOf(s.ctx, identity, usdt)
	s.Require().NoError(err)
	return b
}

func iphoneClaim() DeviceClaim {
	return DeviceClaim{
		Brand:             "Apple",
		Model:             "iPhone 12",
		Variant:           "128GB",
		SerialFingerprint: domain.FingerprintSerial("iphone-serial-123"),
	}
}

func (s *ServiceSuite) TestPurchaseOpensPendingCertificate() {
	productID := s.listPhone()
	s.fundBuyer()

	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)

	s.Equal(domain.CertificateID(1), cert.ID)
	s.Equal(StatusPending, cert.Status)
	s.Equal(buyerID, cert.Buyer)
	s.Equal(sellerID, cert.Seller)
	s.Equal("iPhone 12", cert.Claim.Model)
	s.True(cert.FinalizedAt.IsZero())

	s.Equal(uint64(100_000_000-15_000_000), s.balance(buyerID))
	s.Equal(phonePrice, s.balance(sellerID))
}

func (s *ServiceSuite) TestPurchaseAppendsBothIndexes() {
	productID := s.listPhone()
	s.fundBuyer()

	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)

	bought, err := s.svc.CertificatesByBuyer(s.ctx, buyerID)
	s.Require().NoError(err)
	s.Equal([]domain.CertificateID{cert.ID}, bought)

	sold, err := s.svc.CertificatesBySeller(s.ctx, sellerID)
	s.Require().NoError(err)
	s.Equal([]domain.CertificateID{cert.ID}, sold)
}

func (s *ServiceSuite) TestPurchaseUnknownProduct() {
	s.fundBuyer()

	_, err := s.svc.Purchase(s.ctx, buyerID, 42, iphoneClaim())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeProductNotFound))
}

func (s *ServiceSuite) TestPurchaseTransferFailureLeavesNoState() {
	productID := s.listPhone()
	s.ledger.Mint(s.ctx, buyerID, usdt, 100_000_000)
	// No approval, so the transfer is rejected by the ledger.

	_, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeTransferFailed))

	// No certificate id was allocated and no index entry exists.
	_, err = s.svc.Certificate(s.ctx, 1)
	s.True(dErrors.HasCode(err, dErrors.CodeCertificateNotFound))
	bought, err := s.svc.CertificatesByBuyer(s.ctx, buyerID)
	s.Require().NoError(err)
	s.Empty(bought)

	// Funds did not move.
	s.Equal(uint64(100_000_000), s.balance(buyerID))
	s.Equal(uint64(0), s.balance(sellerID))
	s.Empty(s.events.All())
}

func (s *ServiceSuite) TestPurchaseZeroPriceNeedsNoApproval() {
	_, err := s.sellers.Register(s.ctx, sellerID, "Rome", "Rome Phone Service")
	s.Require().NoError(err)
	product, err := s.catalog.Create(s.ctx, sellerID, "phone", 0, usdt)
	s.Require().NoError(err)

	cert, err := s.svc.Purchase(s.ctx, buyerID, product.ID, iphoneClaim())
	s.Require().NoError(err)
	s.Equal(StatusPending, cert.Status)
}

func (s *ServiceSuite) TestCompleteRecordsVerification() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)

	completed, err := s.svc.Complete(s.ctx, sellerID, cert.ID, VerificationReport{
		Brand:     "Apple",
		Model:     "iPhone 12",
		Variant:   "128GB",
		Condition: "Good",
		Remarks:   "Minor scratches",
	})
	s.Require().NoError(err)

	s.Equal(StatusCompleted, completed.Status)
	s.Equal("Good", completed.Report.Condition)
	s.Equal("Minor scratches", completed.Report.Remarks)
	s.False(completed.FinalizedAt.IsZero())

	// Completion moves no funds; the seller was paid at purchase time.
	s.Equal(phonePrice, s.balance(sellerID))
}

func (s *ServiceSuite) TestCompleteByNonSeller() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)

	_, err = s.svc.Complete(s.ctx, buyerID, cert.ID, VerificationReport{Condition: "Good"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized))

	current, err := s.svc.Certificate(s.ctx, cert.ID)
	s.Require().NoError(err)
	s.Equal(StatusPending, current.Status)
}

func (s *ServiceSuite) TestCompleteTwice() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)
	_, err = s.svc.Complete(s.ctx, sellerID, cert.ID, VerificationReport{Condition: "Good"})
	s.Require().NoError(err)

	_, err = s.svc.Complete(s.ctx, sellerID, cert.ID, VerificationReport{Condition: "Bad"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyFinalized))
}

func (s *ServiceSuite) TestCompleteUnknownCertificate() {
	_, err := s.svc.Complete(s.ctx, sellerID, 9, VerificationReport{Condition: "Good"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeCertificateNotFound))
}

func (s *ServiceSuite) TestRefundReturnsEscrowedFunds() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)

	// The seller pre-authorizes the engine to move the refund back.
	s.Require().NoError(s.ledger.Approve(s.ctx, sellerID, usdt, phonePrice))

	refunded, err := s.svc.Refund(s.ctx, sellerID, cert.ID)
	s.Require().NoError(err)

	s.Equal(StatusRefunded, refunded.Status)
	s.Equal(uint64(100_000_000), s.balance(buyerID))
	s.Equal(uint64(0), s.balance(sellerID))
}

func (s *ServiceSuite) TestRefundByNonSeller() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)

	_, err = s.svc.Refund(s.ctx, buyerID, cert.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized))
}

func (s *ServiceSuite) TestRefundAfterComplete() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)
	_, err = s.svc.Complete(s.ctx, sellerID, cert.ID, VerificationReport{Condition: "Good"})
	s.Require().NoError(err)

	s.Require().NoError(s.ledger.Approve(s.ctx, sellerID, usdt, phonePrice))
	_, err = s.svc.Refund(s.ctx, sellerID, cert.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeCannotRefundCompleted))

	// The escrowed funds stay with the seller.
	s.Equal(phonePrice, s.balance(sellerID))
}

func (s *ServiceSuite) TestCompleteAfterRefund() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)
	s.Require().NoError(s.ledger.Approve(s.ctx, sellerID, usdt, phonePrice))
	_, err = s.svc.Refund(s.ctx, sellerID, cert.ID)
	s.Require().NoError(err)

	_, err = s.svc.Complete(s.ctx, sellerID, cert.ID, VerificationReport{Condition: "Good"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyFinalized))
}

func (s *ServiceSuite) TestRefundTransferFailureKeepsPending() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)

	// Seller never approved the engine for the refund amount.
	_, err = s.svc.Refund(s.ctx, sellerID, cert.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeTransferFailed))

	current, err := s.svc.Certificate(s.ctx, cert.ID)
	s.Require().NoError(err)
	s.Equal(StatusPending, current.Status)
	s.Equal(phonePrice, s.balance(sellerID))
}

func (s *ServiceSuite) TestRefundDoubleRefund() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)
	s.Require().NoError(s.ledger.Approve(s.ctx, sellerID, usdt, phonePrice))
	_, err = s.svc.Refund(s.ctx, sellerID, cert.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.ledger.Approve(s.ctx, sellerID, usdt, phonePrice))
	_, err = s.svc.Refund(s.ctx, sellerID, cert.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyFinalized))

	// The second refund moved nothing.
	s.Equal(uint64(100_000_000), s.balance(buyerID))
}

func (s *ServiceSuite) TestLifecycleEmitsAuditEvents() {
	productID := s.listPhone()
	s.fundBuyer()
	cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
	s.Require().NoError(err)
	_, err = s.svc.Complete(s.ctx, sellerID, cert.ID, VerificationReport{Condition: "Good"})
	s.Require().NoError(err)

	events := s.events.All()
	s.Require().Len(events, 2)
	s.Equal(audit.ActionCertificatePurchased, events[0].Action)
	s.Equal(phonePrice, events[0].Amount)
	s.Equal(audit.ActionCertificateCompleted, events[1].Action)
	s.Equal(cert.ID, events[1].CertificateID)
}

func (s *ServiceSuite) TestIndexesOrderedByPurchase() {
	productID := s.listPhone()
	s.ledger.Mint(s.ctx, buyerID, usdt, 100_000_000)
	s.Require().NoError(s.ledger.Approve(s.ctx, buyerID, usdt, 3*phonePrice))

	var ids []domain.CertificateID
	for range 3 {
		cert, err := s.svc.Purchase(s.ctx, buyerID, productID, iphoneClaim())
		s.Require().NoError(err)
		ids = append(ids, cert.ID)
	}

	s.Equal([]domain.CertificateID{1, 2, 3}, ids)
	bought, err := s.svc.CertificatesByBuyer(s.ctx, buyerID)
	s.Require().NoError(err)
	s.Equal(ids, bought)
}
