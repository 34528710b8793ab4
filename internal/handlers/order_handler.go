package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
	"github.com/Lixing-Zhang/multivendor-shop/internal/repository"
	"github.com/Lixing-Zhang/multivendor-shop/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// PlaceOrder handles POST /api/home/order/place-order
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req models.PlaceOrderRequest

	if err := decodeJSON(r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingUser):
			h.log.Warn("failed to place order", "error", err)
			WriteError(w, http.StatusBadRequest, "User ID is required", h.log)
		case errors.Is(err, service.ErrEmptyCart):
			h.log.Warn("failed to place order", "error", err)
			WriteError(w, http.StatusBadRequest, "Cart has no purchasable items", h.log)
		case errors.Is(err, repository.ErrCartChanged):
			h.log.Warn("failed to place order", "error", err)
			WriteError(w, http.StatusConflict, "Cart changed, please review your cart", h.log)
		case errors.Is(err, repository.ErrInsufficientStock):
			h.log.Warn("failed to place order", "error", err)
			WriteError(w, http.StatusConflict, "Stock changed, please review your cart", h.log)
		default:
			h.log.Error("failed to place order", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, order, h.log)
	h.log.Info("order placed successfully", "order_id", order.ID, "sellers", len(order.Sellers), "price", order.Price)
}

// GetOrder handles GET /api/home/order/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			h.log.Info("order not found", "order_id", orderID)
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}
		h.log.Error("failed to get order", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}
