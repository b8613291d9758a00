package seller

import (
	"context"
	"sync"

	"veridev/pkg/domain"
	"veridev/pkg/platform/sentinel"
)

// InMemoryStore is the default account store. The engine tx serializes
// mutations; the store's own lock only guards against concurrent reads from
// query endpoints.
type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[domain.Identity]Account
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{accounts: make(map[domain.Identity]Account)}
}

func (s *InMemoryStore) Create(_ context.Context, account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.Identity]; exists {
		return sentinel.ErrConflict
	}
	s.accounts[account.Identity] = *account
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.Identity]; !exists {
		return sentinel.ErrNotFound
	}
	s.accounts[account.Identity] = *account
	return nil
}

func (s *InMemoryStore) FindByIdentity(_ context.Context, identity domain.Identity) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, exists := s.accounts[identity]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return &account, nil
}
