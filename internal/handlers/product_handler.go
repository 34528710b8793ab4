package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/multivendor-shop/internal/repository"
	"github.com/Lixing-Zhang/multivendor-shop/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// QueryProducts handles GET /api/home/query-products
// Malformed numeric parameters fall back to their defaults instead of failing
func (h *ProductHandler) QueryProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.QueryProducts(r.Context(), r.URL.Query())
	if err != nil {
		h.logger.Error("failed to query products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Debug("products queried",
		"query", r.URL.RawQuery,
		"total", page.TotalProduct,
		"returned", len(page.Products),
	)
	WriteJSON(w, http.StatusOK, page, h.logger)
}

// GetProduct handles GET /api/product/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		h.logger.Warn("product ID is required")
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Info("product not found", "productId", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}

		h.logger.Error("failed to get product", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}
