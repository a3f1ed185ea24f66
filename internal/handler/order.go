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

// OrderHandler exposes order placement and management over HTTP.
type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
	validator    *validation.Validator
	logger       *zerolog.Logger
}

func NewOrderHandler(
	orderUsecase usecase.OrderUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
		validator:    validator,
		logger:       logger,
	}
}

// Place handles POST /api/order/place_order.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	var req payload.PlaceOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	order, err := h.orderUsecase.PlaceOrder(r.Context(), claims.UserID, usecase.PlaceOrderParams{
		CartItemIDs: req.Carts,
		TotalPrice:  req.TotalPrice,
		Name:        req.Name,
		Email:       req.Email,
		Street:      req.Street,
		City:        req.City,
		Phone:       req.Phone,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusCreated, "Order placed", httpx.Envelope{
		"order": order,
	})
}

// ListAll handles GET /api/order/get_all_orders.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.GetAllOrders(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Orders fetched", httpx.Envelope{
		"orders": orders,
	})
}

// ListByUser handles GET /api/order/get_orders_by_user.
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	orders, err := h.orderUsecase.GetOrdersByUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Orders fetched", httpx.Envelope{
		"orders": orders,
	})
}

// UpdateStatus handles POST /api/order/update_order_status/{orderId}.
// Marking an order delivered removes it.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateOrderStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	if err := h.orderUsecase.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status); err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Order status updated", nil)
}
