// Package memory keeps accounts in a map for the life of the process.
package memory

import (
	"context"
	"sync"

	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/models"
)

type Store struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	order    []string
}

func NewStore() *Store {
	return &Store{accounts: make(map[string]models.Account)}
}

func (s *Store) Init(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Name() string { return "memory" }

func (s *Store) SaveAccount(ctx context.Context, a models.Account) error {
	if a.User.ID == "" {
		return errors.Validation("user id", "cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[a.User.ID]; !ok {
		s.order = append(s.order, a.User.ID)
	}
	s.accounts[a.User.ID] = a.Clone()
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, errors.NotFound("account", id)
	}
	return a.Clone(), nil
}

// ListUsers returns users in creation order
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.accounts[id].User)
	}
	return out, nil
}
