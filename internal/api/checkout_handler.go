package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/urbanwear/storefront/internal/checkout"
	"github.com/urbanwear/storefront/internal/domain"
	"github.com/urbanwear/storefront/internal/order"
	"github.com/urbanwear/storefront/internal/payment"
	"github.com/urbanwear/storefront/internal/pricing"
)

type checkoutService interface {
	Quote(ctx context.Context, userID string) (pricing.Quote, error)
	Submit(ctx context.Context, sub checkout.Submission) (*checkout.Result, error)
}

type lastOrderReader interface {
	Load() (*domain.OrderDraft, error)
}

type CheckoutHandler struct {
	checkout  checkoutService
	lastOrder lastOrderReader
	timeout   time.Duration
}

func NewCheckoutHandler(checkout checkoutService, lastOrder lastOrderReader, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, lastOrder: lastOrder, timeout: timeout}
}

func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	quote, err := h.checkout.Quote(ctx, getUserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to price cart")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var sub checkout.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	sub.UserID = getUserIDFromContext(r.Context())

	result, err := h.checkout.Submit(ctx, sub)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Order == nil {
		// Payment declined: nothing was placed.
		status = http.StatusPaymentRequired
	}
	respondJSON(w, status, result)
}

func (h *CheckoutHandler) LastOrder(w http.ResponseWriter, r *http.Request) {
	draft, err := h.lastOrder.Load()
	if errors.Is(err, order.ErrNoLastOrder) {
		respondError(w, http.StatusNotFound, "not_found", "no order has been placed")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load last order")
		return
	}

	respondJSON(w, http.StatusOK, draft)
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	var vErr *checkout.ValidationError
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   vErr.Message,
			Code:    "validation_failed",
			Details: vErr.Field,
		})
		return
	}

	if errors.Is(err, checkout.ErrEmptyCart) {
		respondError(w, http.StatusConflict, "empty_cart", "cannot check out an empty cart")
		return
	}

	var gErr *payment.GatewayError
	if errors.As(err, &gErr) {
		respondJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   gErr.Message,
			Code:    "gateway_error",
			Details: gErr.Method.String(),
		})
		return
	}

	respondError(w, http.StatusInternalServerError, "internal_error", "checkout failed")
}
