package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwear/storefront/internal/cart/cache"
	"github.com/urbanwear/storefront/internal/cart/repository"
	"github.com/urbanwear/storefront/internal/domain"
)

type mockRepository struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockRepository) GetCart(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, repository.ErrCartNotFound
	}
	return m.cart, nil
}

func (m *mockRepository) UpsertCart(_ context.Context, c *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = c
	return m.err
}

func (m *mockRepository) DeleteCart(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.cart = nil
	return nil
}

type mockCache struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCache) Get(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return m.err
}

func (m *mockCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	return nil
}

func newTestService() (*Service, *mockRepository, *mockCache) {
	repo := &mockRepository{}
	c := &mockCache{}
	return NewService(repo, c), repo, c
}

func testProduct(id int64, price int64) domain.Product {
	return domain.Product{ID: id, Name: "Urban Hoodie", Price: price, ImageURL: "/img/hoodie.jpg"}
}

func TestAddItem_NewLineItem(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "user-1", testProduct(1, 2850), "M", "Black")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 1, cart.TotalItems())
	assert.Equal(t, int64(2850), cart.Subtotal())
}

func TestAddItem_SameVariantIncrementsQuantity(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", testProduct(1, 2850), "M", "Black")
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "user-1", testProduct(1, 2850), "M", "Black")
	require.NoError(t, err)

	// One line item with quantity 2, not two line items.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.TotalItems())
}

func TestAddItem_DifferentVariantIsSeparateLine(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", testProduct(1, 2850), "M", "Black")
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "user-1", testProduct(1, 2850), "L", "Black")
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.TotalItems())
	assert.Equal(t, int64(5700), cart.Subtotal())
}

func TestRemoveItem_DropsAllVariants(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", testProduct(1, 2850), "M", "Black")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", testProduct(1, 2850), "L", "White")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", testProduct(2, 1950), "M", "Black")
	require.NoError(t, err)

	// RemoveItem keys on product id only; both variants of product 1 go.
	cart, err := svc.RemoveItem(ctx, "user-1", 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].ProductID)
}

func TestUpdateQuantity_SetsQuantity(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", testProduct(2, 1950), "M", "Black")
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "user-1", 2, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, int64(9750), cart.Subtotal())
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", testProduct(2, 1950), "M", "Black")
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "user-1", 2, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	cart, err = svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.TotalItems())
}

func TestTotals_AfterMixedOperations(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", testProduct(1, 2850), "M", "Black")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", testProduct(2, 1950), "M", "Black")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", testProduct(2, 1950), "M", "Black")
	require.NoError(t, err)

	// The end-to-end scenario cart: 2850x1 + 1950x2.
	cart, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, int64(6750), cart.Subtotal())
}

func TestClear_EmptiesCart(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", testProduct(1, 2850), "M", "Black")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "user-1"))

	cart, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGet_CacheErrorFallsThroughToRepo(t *testing.T) {
	repo := &mockRepository{cart: &domain.Cart{
		UserID: "user-1",
		Items:  []domain.LineItem{{ProductID: 1, UnitPrice: 100, Quantity: 1}},
	}}
	c := &mockCache{err: assert.AnError}
	svc := NewService(repo, c)

	cart, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), cart.Subtotal())
}
