package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/middleware"
	"github.com/glowcart/glowcart-api/internal/payload"
	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/httpx"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// WishlistHandler exposes the authenticated user's wishlist over HTTP.
type WishlistHandler struct {
	wishlistUsecase usecase.WishlistUsecase
	validator       *validation.Validator
	logger          *zerolog.Logger
}

func NewWishlistHandler(
	wishlistUsecase usecase.WishlistUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *WishlistHandler {
	return &WishlistHandler{
		wishlistUsecase: wishlistUsecase,
		validator:       validator,
		logger:          logger,
	}
}

// Add handles POST /api/wishlist/add.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	var req payload.WishlistRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	if err := h.wishlistUsecase.AddToWishlist(r.Context(), claims.UserID, req.ProductID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusCreated, "Product added to wishlist", nil)
}

// Remove handles POST /api/wishlist/remove.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	var req payload.WishlistRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	if err := h.wishlistUsecase.RemoveFromWishlist(r.Context(), claims.UserID, req.ProductID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Product removed from wishlist", nil)
}

// Get handles GET /api/wishlist/get_wishlist.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	products, err := h.wishlistUsecase.GetWishlist(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Wishlist fetched", httpx.Envelope{
		"wishlist": products,
	})
}
