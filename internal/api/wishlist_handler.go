package api

import (
	"encoding/json"
	"net/http"
)

type wishlistService interface {
	Toggle(userID string, productID int) (bool, error)
	List(userID string) []int
}

type WishlistHandler struct {
	wishlist wishlistService
}

func NewWishlistHandler(wishlist wishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

type ToggleWishlistRequestDTO struct {
	ProductID int `json:"product_id"`
}

type ToggleWishlistResponseDTO struct {
	ProductID int  `json:"product_id"`
	Saved     bool `json:"saved"`
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	ids := h.wishlist.List(getUserIDFromContext(r.Context()))
	if ids == nil {
		ids = []int{}
	}
	respondJSON(w, http.StatusOK, ids)
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleWishlistRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	saved, err := h.wishlist.Toggle(getUserIDFromContext(r.Context()), req.ProductID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update wishlist")
		return
	}

	respondJSON(w, http.StatusOK, ToggleWishlistResponseDTO{ProductID: req.ProductID, Saved: saved})
}
