// Package order keeps the most recent placed order, which the
// confirmation view reads back after checkout.
package order

import (
	"errors"
	"fmt"

	"github.com/urbanwear/storefront/internal/domain"
	"github.com/urbanwear/storefront/internal/localstore"
)

var ErrNoLastOrder = errors.New("no order has been placed")

type LastOrderStore struct {
	store *localstore.Store
}

func NewLastOrderStore(store *localstore.Store) *LastOrderStore {
	return &LastOrderStore{store: store}
}

// Save replaces the stored last order. Only one order is kept; placing
// a new one overwrites the previous snapshot.
func (s *LastOrderStore) Save(draft *domain.OrderDraft) error {
	if err := s.store.Save(localstore.KeyLastOrder, draft); err != nil {
		return fmt.Errorf("save last order: %w", err)
	}
	return nil
}

func (s *LastOrderStore) Load() (*domain.OrderDraft, error) {
	var draft domain.OrderDraft
	if !s.store.Load(localstore.KeyLastOrder, &draft) {
		return nil, ErrNoLastOrder
	}
	return &draft, nil
}

func (s *LastOrderStore) Clear() error {
	return s.store.Delete(localstore.KeyLastOrder)
}
