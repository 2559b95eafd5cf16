package repository

import (
	"context"

	"github.com/urbanwear/storefront/internal/domain"
	"github.com/urbanwear/storefront/internal/localstore"
)

// localRepository keeps the whole cart as one JSON blob under the
// fixed localstore key, mirroring how the storefront persists the cart
// in the browser. A missing or unreadable entry is an empty cart.
type localRepository struct {
	store *localstore.Store
}

func NewLocalRepository(store *localstore.Store) CartRepository {
	return &localRepository{store: store}
}

func (r *localRepository) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	if !r.store.Load(cartKey(userID), &cart) {
		return nil, ErrCartNotFound
	}
	return &cart, nil
}

func (r *localRepository) UpsertCart(_ context.Context, cart *domain.Cart) error {
	return r.store.Save(cartKey(cart.UserID), cart)
}

func (r *localRepository) DeleteCart(_ context.Context, userID string) error {
	return r.store.Delete(cartKey(userID))
}

func cartKey(userID string) string {
	if userID == "" || userID == "local" {
		return localstore.KeyCart
	}
	return localstore.KeyCart + "-" + userID
}
