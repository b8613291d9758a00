package escrow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"veridev/internal/audit"
	"veridev/internal/catalog"
	"veridev/internal/escrow/metrics"
	"veridev/internal/registry"
	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
	"veridev/pkg/platform/sentinel"
)

// ProductReader resolves the immutable offer a certificate was purchased
// against. Price and asset for refunds come from here, never from the
// certificate record.
type ProductReader interface {
	FindByID(ctx context.Context, id domain.ProductID) (*catalog.Product, error)
}

// AssetLedger moves escrow funds. Any transfer failure surfaces to callers
// as transfer_failed with all engine state unchanged.
type AssetLedger interface {
	Transfer(ctx context.Context, from, to domain.Identity, asset domain.AssetRef, amount uint64) error
}

// AuditPublisher emits registry events for successful mutations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the escrow ledger: purchases fund it, completion and
// refund finalize it. All mutations run inside the engine-wide transactional
// boundary with the asset transfer as the last fallible step, so a failed
// transfer never leaves a certificate behind and a failed write never moves
// funds.
type Service struct {
	store    Store
	products ProductReader
	ledger   AssetLedger
	tx       registry.Tx
	logger   *slog.Logger
	audit    AuditPublisher
	metrics  *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service. The tx must be the engine-wide boundary shared
// with the seller and catalog services.
func New(store Store, products ProductReader, ledger AssetLedger, tx registry.Tx, opts ...Option) *Service {
	s := &Service{store: store, products: products, ledger: ledger, tx: tx, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Purchase escrows the product price from the buyer and opens a pending
// certificate carrying the buyer's device claim. The buyer must have
// pre-authorized the engine on the asset ledger for at least the price.
// A zero-price product purchases without any authorization.
func (s *Service) Purchase(ctx context.Context, buyer domain.Identity, productID domain.ProductID, claim DeviceClaim) (*Certificate, error) {
	start := time.Now()

	var cert *Certificate
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		product, err := s.products.FindByID(txCtx, productID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeProductNotFound, "product not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load product")
		}

		if err := s.ledger.Transfer(txCtx, buyer, product.Seller, product.Asset, product.Price); err != nil {
			return dErrors.Wrap(err, dErrors.CodeTransferFailed, "escrow funding transfer failed")
		}

		c := NewCertificate(buyer, product.Seller, productID, claim, time.Now())
		id, err := s.store.Append(txCtx, c)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append certificate")
		}
		c.ID = id
		cert = c

		return s.emit(txCtx, audit.Event{
			Actor:         buyer,
			Action:        audit.ActionCertificatePurchased,
			ProductID:     productID,
			CertificateID: id,
			Asset:         product.Asset,
			Amount:        product.Price,
			Detail:        claim.Model,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementPurchased()
		s.metrics.ObservePurchase(start)
	}
	s.logger.InfoContext(ctx, "certification purchased",
		"certificate_id", cert.ID, "product_id", productID, "buyer", buyer)
	return cert, nil
}

// Complete records the seller's verification report and marks the
// certificate completed. No funds move; the escrowed amount was already
// credited to the seller at purchase time. Only the certificate's seller may
// complete, and only while the certificate is pending.
func (s *Service) Complete(ctx context.Context, caller domain.Identity, id domain.CertificateID, report VerificationReport) (*Certificate, error) {
	start := time.Now()

	var cert *Certificate
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.find(txCtx, id)
		if err != nil {
			return err
		}
		if err := c.CanComplete(caller); err != nil {
			return err
		}

		c.ApplyCompletion(report, time.Now())
		if err := s.store.Update(txCtx, c); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update certificate")
		}
		cert = c

		return s.emit(txCtx, audit.Event{
			Actor:         caller,
			Action:        audit.ActionCertificateCompleted,
			ProductID:     c.ProductID,
			CertificateID: id,
			Detail:        report.Condition,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementCompleted()
		s.metrics.ObserveFinalize(start)
	}
	s.logger.InfoContext(ctx, "certification completed", "certificate_id", id, "seller", caller)
	return cert, nil
}

// Refund returns the escrowed price from the seller to the buyer and marks
// the certificate refunded. Only the certificate's seller may refund; a
// completed certification can never be refunded. The seller must have
// pre-authorized the engine for the refund amount.
func (s *Service) Refund(ctx context.Context, caller domain.Identity, id domain.CertificateID) (*Certificate, error) {
	start := time.Now()

	var cert *Certificate
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.find(txCtx, id)
		if err != nil {
			return err
		}
		if err := c.CanRefund(caller); err != nil {
			return err
		}

		product, err := s.products.FindByID(txCtx, c.ProductID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load product for refund")
		}

		if err := s.ledger.Transfer(txCtx, c.Seller, c.Buyer, product.Asset, product.Price); err != nil {
			return dErrors.Wrap(err, dErrors.CodeTransferFailed, "refund transfer failed")
		}

		c.ApplyRefund(time.Now())
		if err := s.store.Update(txCtx, c); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update certificate")
		}
		cert = c

		return s.emit(txCtx, audit.Event{
			Actor:         caller,
			Action:        audit.ActionCertificateRefunded,
			ProductID:     c.ProductID,
			CertificateID: id,
			Asset:         product.Asset,
			Amount:        product.Price,
		})
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementRefunded()
		s.metrics.ObserveFinalize(start)
	}
	s.logger.InfoContext(ctx, "certification refunded", "certificate_id", id, "seller", caller)
	return cert, nil
}

// Certificate returns one record by id.
func (s *Service) Certificate(ctx context.Context, id domain.CertificateID) (*Certificate, error) {
	return s.find(ctx, id)
}

// CertificatesByBuyer returns the ids of every certificate the identity has
// purchased, in purchase order. Unknown identities get an empty list.
func (s *Service) CertificatesByBuyer(ctx context.Context, buyer domain.Identity) ([]domain.CertificateID, error) {
	ids, err := s.store.ListByBuyer(ctx, buyer)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list purchases")
	}
	return ids, nil
}

// CertificatesBySeller returns the ids of every certificate sold by the
// identity, in purchase order. Unknown identities get an empty list.
func (s *Service) CertificatesBySeller(ctx context.Context, seller domain.Identity) ([]domain.CertificateID, error) {
	ids, err := s.store.ListBySeller(ctx, seller)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sales")
	}
	return ids, nil
}

func (s *Service) find(ctx context.Context, id domain.CertificateID) (*Certificate, error) {
	cert, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeCertificateNotFound, "certificate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	return cert, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) error {
	if s.audit == nil {
		return nil
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to emit registry event")
	}
	return nil
}
