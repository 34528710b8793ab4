package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/multivendor-shop/internal/config"
	"github.com/Lixing-Zhang/multivendor-shop/internal/repository"
	"github.com/Lixing-Zhang/multivendor-shop/internal/service"
	"github.com/Lixing-Zhang/multivendor-shop/pkg/logger"
)

const testAPIKey = "apitest"

type testServer struct {
	router   http.Handler
	products *repository.InMemoryProductRepository
	carts    *repository.InMemoryCartRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.New("error")
	products := repository.NewInMemoryProductRepository()
	carts := repository.NewInMemoryCartRepository()
	orders := repository.NewInMemoryOrderRepository()

	productService := service.NewProductService(products, 9)
	cartService := service.NewCartService(products, carts, 20, log)
	orderService := service.NewOrderService(cartService, products, carts, orders)

	router := NewRouter(Handlers{
		Health:  NewHealthHandler(products, log),
		Product: NewProductHandler(productService, log),
		Cart:    NewCartHandler(cartService, log),
		Order:   NewOrderHandler(orderService, log),
	}, config.AuthConfig{APIKeys: []string{testAPIKey}}, log, 5*time.Second)

	return &testServer{router: router, products: products, carts: carts}
}

// do sends a request through the router; body may be a string for raw payloads
func (s *testServer) do(t *testing.T, method, path string, body interface{}, apiKey string) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if apiKey != "" {
		req.Header.Set("api_key", apiKey)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
