package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"veridev/internal/audit"
	"veridev/internal/platform/metrics"
	"veridev/internal/registry"
	"veridev/pkg/domain"
	dErrors "veridev/pkg/domain-errors"
	"veridev/pkg/platform/sentinel"
)

// RegistrationChecker gates listing on a registered seller account.
type RegistrationChecker interface {
	IsRegistered(ctx context.Context, identity domain.Identity) (bool, error)
}

// AuditPublisher emits registry events for successful mutations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the product catalog.
type Service struct {
	store   Store
	sellers RegistrationChecker
	tx      registry.Tx
	logger  *slog.Logger
	audit   AuditPublisher
	metrics *metrics.Metrics
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
// with the seller and escrow services.
func New(store Store, sellers RegistrationChecker, tx registry.Tx, opts ...Option) *Service {
	s := &Service{store: store, sellers: sellers, tx: tx, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create lists a new certification offer for the caller and returns its id.
// Only registration is gated; price and device type are accepted as given,
// including a zero price.
func (s *Service) Create(ctx context.Context, caller domain.Identity, deviceType string, price uint64, asset domain.AssetRef) (*Product, error) {
	var product *Product
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		registered, err := s.sellers.IsRegistered(txCtx, caller)
		if err != nil {
			return err
		}
		if !registered {
			return dErrors.New(dErrors.CodeNotRegistered, "not a registered seller")
		}

		p := &Product{
			DeviceType: deviceType,
			Price:      price,
			Asset:      asset,
			Seller:     caller,
			CreatedAt:  time.Now(),
		}
		id, err := s.store.Append(txCtx, p)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append product")
		}
		p.ID = id
		product = p

		if s.audit == nil {
			return nil
		}
		if err := s.audit.Emit(txCtx, audit.Event{
			Actor:     caller,
			Action:    audit.ActionProductCreated,
			ProductID: id,
			Asset:     asset,
			Amount:    price,
			Detail:    deviceType,
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to emit registry event")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementProductsCreated()
	}
	s.logger.InfoContext(ctx, "product created", "id", product.ID, "seller", caller)
	return product, nil
}

// Product returns one offer by id.
func (s *Service) Product(ctx context.Context, id domain.ProductID) (*Product, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeProductNotFound, "product not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load product")
	}
	return product, nil
}

// Products returns every offer in creation order. Callers may re-read at any
// time and always get the current full set.
func (s *Service) Products(ctx context.Context) ([]*Product, error) {
	products, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list products")
	}
	return products, nil
}
