// Package wishlist keeps the set of saved product ids per user.
package wishlist

import (
	"fmt"

	"github.com/urbanwear/storefront/internal/localstore"
)

type Service struct {
	store *localstore.Store
}

func NewService(store *localstore.Store) *Service {
	return &Service{store: store}
}

// Toggle adds the product to the wishlist when absent and removes it
// when present. It returns true when the product ended up saved.
func (s *Service) Toggle(userID string, productID int) (bool, error) {
	ids := s.load(userID)

	for i, id := range ids {
		if id == productID {
			ids = append(ids[:i], ids[i+1:]...)
			return false, s.save(userID, ids)
		}
	}
	ids = append(ids, productID)
	return true, s.save(userID, ids)
}

func (s *Service) Contains(userID string, productID int) bool {
	for _, id := range s.load(userID) {
		if id == productID {
			return true
		}
	}
	return false
}

// List returns the saved product ids in the order they were added.
func (s *Service) List(userID string) []int {
	return s.load(userID)
}

func (s *Service) Clear(userID string) error {
	if err := s.store.Delete(wishlistKey(userID)); err != nil {
		return fmt.Errorf("clear wishlist: %w", err)
	}
	return nil
}

func (s *Service) load(userID string) []int {
	var ids []int
	s.store.Load(wishlistKey(userID), &ids)
	return ids
}

func (s *Service) save(userID string, ids []int) error {
	if err := s.store.Save(wishlistKey(userID), ids); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}
	return nil
}

func wishlistKey(userID string) string {
	if userID == "" || userID == "local" {
		return localstore.KeyWishlist
	}
	return localstore.KeyWishlist + "-" + userID
}
