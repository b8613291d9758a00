package catalog

import (
	"context"
	"sync"

	"veridev/pkg/domain"
	"veridev/pkg/platform/sentinel"
)

// InMemoryStore is an arena of products indexed by a strictly increasing
// counter. The slice position of product id n is n-1, so ordered reads are a
// copy, not a scan.
type InMemoryStore struct {
	mu       sync.RWMutex
	products []Product
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, product *Product) (domain.ProductID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := domain.ProductID(len(s.products) + 1)
	p := *product
	p.ID = id
	s.products = append(s.products, p)
	return id, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.ProductID) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id.IsNil() || int(id) > len(s.products) {
		return nil, sentinel.ErrNotFound
	}
	p := s.products[id-1]
	return &p, nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Product, len(s.products))
	for i := range s.products {
		p := s.products[i]
		out[i] = &p
	}
	return out, nil
}
