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

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	service *service.CartService
	log     *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// AddToCart handles POST /api/home/product/add-to-cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warn("failed to decode add-to-cart request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	item, err := h.service.AddToCart(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, "failed to add to cart", err)
		return
	}

	h.log.Info("product added to cart",
		"user_id", item.UserID,
		"product_id", item.ProductID,
		"quantity", item.Quantity,
	)
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Added to cart successfully",
		"product": item,
	}, h.log)
}

// GetCart handles GET /api/home/product/get-cart-product/{userId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	summary, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, "failed to load cart", err)
		return
	}

	WriteJSON(w, http.StatusOK, summary, h.log)
}

// UpdateQuantity handles PUT /api/home/product/quantity/{cartId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	var req models.UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warn("failed to decode quantity request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	item, err := h.service.UpdateQuantity(r.Context(), cartID, req.Quantity)
	if err != nil {
		h.writeServiceError(w, "failed to update quantity", err)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.log)
}

// RemoveItem handles DELETE /api/home/product/delete-cart-product/{cartId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	if err := h.service.RemoveItem(r.Context(), cartID); err != nil {
		h.writeServiceError(w, "failed to remove cart item", err)
		return
	}

	h.log.Info("cart item removed", "cart_id", cartID)
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Product removed successfully"}, h.log)
}

func (h *CartHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingUser):
		h.log.Warn(msg, "error", err)
		WriteError(w, http.StatusBadRequest, "User ID is required", h.log)
	case errors.Is(err, service.ErrInvalidQuantity):
		h.log.Warn(msg, "error", err)
		WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.log)
	case errors.Is(err, repository.ErrQuantityLimit):
		h.log.Warn(msg, "error", err)
		WriteError(w, http.StatusBadRequest, "Quantity exceeds the per-item limit", h.log)
	case errors.Is(err, service.ErrInvalidProduct):
		h.log.Warn(msg, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
	case errors.Is(err, repository.ErrCartItemNotFound):
		h.log.Info(msg, "error", err)
		WriteError(w, http.StatusNotFound, "Cart item not found", h.log)
	default:
		h.log.Error(msg, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
