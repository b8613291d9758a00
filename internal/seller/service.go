package seller

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

// AuditPublisher emits registry events for successful mutations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the account registry: seller registration, profile
// updates and profile reads.
type Service struct {
	store   Store
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
// with the catalog and escrow services.
func New(store Store, tx registry.Tx, opts ...Option) *Service {
	s := &Service{store: store, tx: tx, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates the caller's seller account. A caller registers at most
// once; re-registration fails without touching the stored profile.
func (s *Service) Register(ctx context.Context, caller domain.Identity, name, location string) (*Account, error) {
	var account *Account
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := NewAccount(caller, name, location, time.Now())
		if err != nil {
			return err
		}
		if err := s.store.Create(txCtx, a); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeAlreadyRegistered, "seller already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create seller account")
		}
		account = a
		return s.emit(txCtx, audit.Event{
			Actor:  caller,
			Action: audit.ActionSellerRegistered,
			Detail: name + " (" + location + ")",
		})
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementSellersRegistered()
	}
	s.logger.InfoContext(ctx, "seller registered", "identity", caller)
	return account, nil
}

// Update overwrites the caller's profile fields in place. Argument order
// (location first) matches the management surface.
func (s *Service) Update(ctx context.Context, caller domain.Identity, location, name string) (*Account, error) {
	var account *Account
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.store.FindByIdentity(txCtx, caller)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotRegistered, "not a registered seller")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load seller account")
		}
		if err := a.ApplyUpdate(location, name, time.Now()); err != nil {
			return err
		}
		if err := s.store.Update(txCtx, a); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update seller account")
		}
		account = a
		return s.emit(txCtx, audit.Event{
			Actor:  caller,
			Action: audit.ActionSellerUpdated,
			Detail: name + " (" + location + ")",
		})
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Account returns the stored profile for any identity. Unknown identities
// report not_found; reads have no side effects.
func (s *Service) Account(ctx context.Context, identity domain.Identity) (*Account, error) {
	account, err := s.store.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "seller not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load seller account")
	}
	return account, nil
}

// IsRegistered reports whether the identity holds a registered account. The
// catalog service uses this as its listing gate.
func (s *Service) IsRegistered(ctx context.Context, identity domain.Identity) (bool, error) {
	account, err := s.store.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load seller account")
	}
	return account.Registered, nil
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
