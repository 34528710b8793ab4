package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/multivendor-shop/internal/config"
	"github.com/Lixing-Zhang/multivendor-shop/internal/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Health  *HealthHandler
	Product *ProductHandler
	Cart    *CartHandler
	Order   *OrderHandler
}

// NewRouter wires middleware and routes
func NewRouter(h Handlers, auth config.AuthConfig, log *slog.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	// The seller/admin dashboard and storefront run on other origins
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/product/{productId}", h.Product.GetProduct)

		r.Route("/home", func(r chi.Router) {
			r.Get("/query-products", h.Product.QueryProducts)
			r.Get("/product/get-cart-product/{userId}", h.Cart.GetCart)
			r.Get("/order/{orderId}", h.Order.GetOrder)

			r.Group(func(r chi.Router) {
				r.Use(middleware.APIKeyAuth(auth))

				r.Post("/product/add-to-cart", h.Cart.AddToCart)
				r.Put("/product/quantity/{cartId}", h.Cart.UpdateQuantity)
				r.Delete("/product/delete-cart-product/{cartId}", h.Cart.RemoveItem)
				r.Post("/order/place-order", h.Order.PlaceOrder)
			})
		})
	})

	return r
}
