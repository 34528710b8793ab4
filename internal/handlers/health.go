package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

type catalogReader interface {
	GetAll(ctx context.Context) ([]models.Product, error)
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	catalog catalogReader
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog catalogReader, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Products  int       `json:"products"`
}

// ServeHTTP reports healthy while the catalog can be read
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	}

	products, err := h.catalog.GetAll(r.Context())
	if err != nil {
		h.logger.Error("health check: catalog unavailable", "error", err)
		response.Status = "unhealthy"
		WriteJSON(w, http.StatusServiceUnavailable, response, h.logger)
		return
	}

	response.Products = len(products)
	WriteJSON(w, http.StatusOK, response, h.logger)
}
