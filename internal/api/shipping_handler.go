package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/urbanwear/storefront/internal/domain"
	"github.com/urbanwear/storefront/internal/shipping"
)

type shippingStore interface {
	List() []domain.ShippingRecord
	Get(orderNumber string) (domain.ShippingRecord, error)
	Advance(orderNumber string, next domain.ShippingStatus) (domain.ShippingRecord, error)
}

type ShippingHandler struct {
	store shippingStore
}

func NewShippingHandler(store shippingStore) *ShippingHandler {
	return &ShippingHandler{store: store}
}

type AdvanceShippingRequestDTO struct {
	Status string `json:"status"`
}

func (h *ShippingHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.List())
}

func (h *ShippingHandler) Track(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.Get(chi.URLParam(r, "order_number"))
	if errors.Is(err, shipping.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "shipping record not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load shipping record")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

func (h *ShippingHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req AdvanceShippingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	record, err := h.store.Advance(chi.URLParam(r, "order_number"), domain.ShippingStatus(req.Status))
	switch {
	case errors.Is(err, shipping.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, "not_found", "shipping record not found")
		return
	case errors.Is(err, shipping.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", "shipping status can only move forward one step")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to advance shipping status")
		return
	}

	respondJSON(w, http.StatusOK, record)
}
