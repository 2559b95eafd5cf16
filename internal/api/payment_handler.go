package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/urbanwear/storefront/internal/config"
	"github.com/urbanwear/storefront/internal/domain"
	"github.com/urbanwear/storefront/internal/payment"
)

type PaymentHandler struct {
	gateways config.Gateways
}

func NewPaymentHandler(gateways config.Gateways) *PaymentHandler {
	return &PaymentHandler{gateways: gateways}
}

// ListMethods returns the selectable gateways. Disabled methods are
// filtered out server-side.
func (h *PaymentHandler) ListMethods(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, domain.EnabledMethods())
}

// JazzCashCallback receives the asynchronous wallet confirmation. The
// secure hash is verified before the response code is even looked at.
func (h *PaymentHandler) JazzCashCallback(w http.ResponseWriter, r *http.Request) {
	var cb payment.JazzCashCallback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := payment.VerifyCallback(h.gateways, cb)
	if errors.Is(err, payment.ErrInvalidCallbackHash) {
		respondError(w, http.StatusUnauthorized, "invalid_hash", "callback hash verification failed")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "callback processing failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
