// Package api exposes the storefront over HTTP. Handlers validate and
// translate; all business rules live in the services they call.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/urbanwear/storefront/internal/config"
)

type Services struct {
	Cart      cartService
	Catalog   productSource
	Checkout  checkoutService
	LastOrder lastOrderReader
	Shipping  shippingStore
	Returns   returnsStore
	Wishlist  wishlistService
	Gateways  config.Gateways
}

func NewRouter(svcs Services, requestTimeout time.Duration) http.Handler {
	cartHandler := NewCartHandler(svcs.Cart, svcs.Catalog, requestTimeout)
	catalogHandler := NewCatalogHandler(svcs.Catalog, requestTimeout)
	checkoutHandler := NewCheckoutHandler(svcs.Checkout, svcs.LastOrder, requestTimeout)
	paymentHandler := NewPaymentHandler(svcs.Gateways)
	shippingHandler := NewShippingHandler(svcs.Shipping)
	returnsHandler := NewReturnsHandler(svcs.Returns)
	wishlistHandler := NewWishlistHandler(svcs.Wishlist)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(MockAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/{product_id}", catalogHandler.GetProduct)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", checkoutHandler.Quote)
			r.Post("/", checkoutHandler.Submit)
		})

		r.Get("/orders/last", checkoutHandler.LastOrder)

		r.Get("/payment-methods", paymentHandler.ListMethods)
		r.Post("/payments/jazz-cash/callback", paymentHandler.JazzCashCallback)

		r.Route("/shipping", func(r chi.Router) {
			r.Get("/", shippingHandler.List)
			r.Get("/{order_number}", shippingHandler.Track)
			r.Post("/{order_number}/advance", shippingHandler.Advance)
		})

		r.Route("/returns", func(r chi.Router) {
			r.Get("/", returnsHandler.List)
			r.Get("/{id}", returnsHandler.Get)
			r.Post("/{id}/advance", returnsHandler.Advance)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.List)
			r.Post("/toggle", wishlistHandler.Toggle)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
