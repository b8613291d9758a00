package escrow

import (
	"context"
	"sync"

	"veridev/pkg/domain"
	"veridev/pkg/platform/sentinel"
)

// InMemoryStore keeps certificates in an append-only arena. IDs are the
// arena position plus one. Buyer and seller indexes are appended to at
// purchase time, never recomputed.
type InMemoryStore struct {
	mu       sync.RWMutex
	certs    []Certificate
	byBuyer  map[domain.Identity][]domain.CertificateID
	bySeller map[domain.Identity][]domain.CertificateID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byBuyer:  make(map[domain.Identity][]domain.CertificateID),
		bySeller: make(map[domain.Identity][]domain.CertificateID),
	}
}

func (s *InMemoryStore) Append(_ context.Context, cert *Certificate) (domain.CertificateID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := domain.CertificateID(len(s.certs) + 1)
	stored := *cert
	stored.ID = id
	s.certs = append(s.certs, stored)
	s.byBuyer[cert.Buyer] = append(s.byBuyer[cert.Buyer], id)
	s.bySeller[cert.Seller] = append(s.bySeller[cert.Seller], id)
	return id, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.CertificateID) (*Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := int(id) - 1
	if idx < 0 || idx >= len(s.certs) {
		return nil, sentinel.ErrNotFound
	}
	cert := s.certs[idx]
	return &cert, nil
}

func (s *InMemoryStore) Update(_ context.Context, cert *Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(cert.ID) - 1
	if idx < 0 || idx >= len(s.certs) {
		return sentinel.ErrNotFound
	}
	s.certs[idx] = *cert
	return nil
}

func (s *InMemoryStore) ListByBuyer(_ context.Context, buyer domain.Identity) ([]domain.CertificateID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CertificateID(nil), s.byBuyer[buyer]...), nil
}

func (s *InMemoryStore) ListBySeller(_ context.Context, seller domain.Identity) ([]domain.CertificateID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CertificateID(nil), s.bySeller[seller]...), nil
}
