package repository

import (
	"context"
	"errors"

	"github.com/urbanwear/storefront/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository is the persistence boundary for carts. Consumers
// define this interface, not the implementations; the cart survives
// restarts through whichever store is wired in.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}
