package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/urbanwear/storefront/internal/domain"
	"github.com/urbanwear/storefront/internal/returns"
)

type returnsStore interface {
	List() []domain.ReturnRequest
	Get(id string) (domain.ReturnRequest, error)
	Advance(id string, next domain.ReturnStatus) (domain.ReturnRequest, error)
}

type ReturnsHandler struct {
	store returnsStore
}

func NewReturnsHandler(store returnsStore) *ReturnsHandler {
	return &ReturnsHandler{store: store}
}

type AdvanceReturnRequestDTO struct {
	Status string `json:"status"`
}

func (h *ReturnsHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.List())
}

func (h *ReturnsHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.store.Get(chi.URLParam(r, "id"))
	if errors.Is(err, returns.ErrRequestNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "return request not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load return request")
		return
	}

	respondJSON(w, http.StatusOK, req)
}

func (h *ReturnsHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var dto AdvanceReturnRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	req, err := h.store.Advance(chi.URLParam(r, "id"), domain.ReturnStatus(dto.Status))
	switch {
	case errors.Is(err, returns.ErrRequestNotFound):
		respondError(w, http.StatusNotFound, "not_found", "return request not found")
		return
	case errors.Is(err, returns.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", "return status cannot move there from its current state")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to advance return status")
		return
	}

	respondJSON(w, http.StatusOK, req)
}
