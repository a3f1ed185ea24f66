package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/middleware"
	"github.com/glowcart/glowcart-api/internal/payload"
	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/httpx"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// CartHandler exposes the authenticated user's shopping cart over HTTP.
type CartHandler struct {
	cartUsecase usecase.CartUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewCartHandler(
	cartUsecase usecase.CartUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *CartHandler {
	return &CartHandler{
		cartUsecase: cartUsecase,
		validator:   validator,
		logger:      logger,
	}
}

// Add handles POST /api/cart/add_to_cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	var req payload.AddToCartRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	item, err := h.cartUsecase.AddToCart(r.Context(), claims.UserID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusCreated, "Product added to cart", httpx.Envelope{
		"cartItem": item,
	})
}

// Remove handles PUT /api/cart/remove_from_cart/{id}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.cartUsecase.RemoveFromCart(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Product removed from cart", nil)
}

// Get handles GET /api/cart/get_cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	items, err := h.cartUsecase.GetActiveCart(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Cart fetched", httpx.Envelope{
		"cart": items,
	})
}

// UpdateQuantity handles PUT /api/cart/update_quantity.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	var req payload.UpdateCartQuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	if err := h.cartUsecase.UpdateQuantity(r.Context(), claims.UserID, req.ProductID, req.Quantity); err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Cart quantity updated", nil)
}

// UpdateStatus handles PUT /api/cart/update_status: checkout marks the whole
// active cart inactive.
func (h *CartHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	if err := h.cartUsecase.DeactivateCart(r.Context(), claims.UserID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Cart status updated", nil)
}
