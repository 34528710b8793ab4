package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
	"github.com/Lixing-Zhang/multivendor-shop/internal/repository"
	"github.com/Lixing-Zhang/multivendor-shop/pkg/logger"
)

func newOrderFixture(catalog []models.Product) (cartFixture, *OrderService) {
	f := newCartFixture(catalog)
	orders := NewOrderService(f.svc, f.products, f.carts, repository.NewInMemoryOrderRepository())
	return f, orders
}

// hookedCarts runs afterList once a user's cart has been read, before the
// rows are returned to the caller
type hookedCarts struct {
	*repository.InMemoryCartRepository
	afterList func()
}

func (h *hookedCarts) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	items, err := h.InMemoryCartRepository.ListByUser(ctx, userID)
	if h.afterList != nil {
		h.afterList()
	}
	return items, err
}

// hookedProducts runs beforeReserve ahead of every stock reservation
type hookedProducts struct {
	*repository.InMemoryProductRepository
	beforeReserve func()
}

func (h *hookedProducts) ReserveStock(ctx context.Context, quantities map[string]int) error {
	if h.beforeReserve != nil {
		h.beforeReserve()
	}
	return h.InMemoryProductRepository.ReserveStock(ctx, quantities)
}

type failingOrders struct {
	repository.OrderRepository
	err error
}

func (f failingOrders) Create(ctx context.Context, order *models.Order) error {
	return f.err
}

func newHookedOrderService(products repository.ProductRepository, carts *hookedCarts, orders repository.OrderRepository) *OrderService {
	log := logger.NewWithWriter(io.Discard, "error")
	cartService := NewCartService(products, carts, 20, log)
	return NewOrderService(cartService, products, carts, orders)
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f, orders := newOrderFixture(testCatalog())
	ctx := context.Background()

	_, _ = f.svc.AddToCart(ctx, models.AddToCartRequest{UserID: "u1", ProductID: "a", Quantity: 2})
	_, _ = f.svc.AddToCart(ctx, models.AddToCartRequest{UserID: "u1", ProductID: "b", Quantity: 5})
	_, _ = f.svc.AddToCart(ctx, models.AddToCartRequest{UserID: "u1", ProductID: "c", Quantity: 1})

	order, err := orders.PlaceOrder(ctx, "u1")
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	if order.ID == "" {
		t.Error("order ID is empty")
	}
	if order.Price != 169.99 {
		t.Errorf("price = %v, want 169.99", order.Price)
	}
	if order.ShippingFee != 40 {
		t.Errorf("shipping_fee = %v, want 40", order.ShippingFee)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want %s", order.Status, models.OrderStatusPending)
	}
	if len(order.Sellers) != 2 {
		t.Errorf("expected 2 seller groups, got %d", len(order.Sellers))
	}

	// stock reserved for purchased products only
	a, _ := f.products.GetByID(ctx, "a")
	b, _ := f.products.GetByID(ctx, "b")
	if a.Stock != 3 {
		t.Errorf("stock of a = %d, want 3", a.Stock)
	}
	if b.Stock != 2 {
		t.Errorf("stock of b = %d, want 2", b.Stock)
	}

	// out-of-stock line stays in the cart
	left, _ := f.carts.ListByUser(ctx, "u1")
	if len(left) != 1 || left[0].ProductID != "b" {
		t.Errorf("unexpected cart after order: %+v", left)
	}

	stored, err := orders.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if stored.Price != order.Price {
		t.Errorf("stored price = %v, want %v", stored.Price, order.Price)
	}
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	f, orders := newOrderFixture(testCatalog())
	ctx := context.Background()

	if _, err := orders.PlaceOrder(ctx, "u1"); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("error = %v, want %v", err, ErrEmptyCart)
	}

	// only out-of-stock lines is still nothing to buy
	_, _ = f.svc.AddToCart(ctx, models.AddToCartRequest{UserID: "u1", ProductID: "b", Quantity: 9})
	if _, err := orders.PlaceOrder(ctx, "u1"); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("error = %v, want %v", err, ErrEmptyCart)
	}
}

func TestOrderService_PlaceOrder_RequiresUser(t *testing.T) {
	_, orders := newOrderFixture(testCatalog())

	if _, err := orders.PlaceOrder(context.Background(), ""); !errors.Is(err, ErrMissingUser) {
		t.Errorf("error = %v, want %v", err, ErrMissingUser)
	}
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	_, orders := newOrderFixture(testCatalog())

	if _, err := orders.GetOrder(context.Background(), "nope"); !errors.Is(err, repository.ErrOrderNotFound) {
		t.Errorf("error = %v, want %v", err, repository.ErrOrderNotFound)
	}
}

func TestOrderService_PlaceOrder_ConcurrentSameCart(t *testing.T) {
	ctx := context.Background()
	products := repository.NewInMemoryProductRepositoryWith([]models.Product{{ID: "a", SellerID: "s1", Price: 10, Stock: 100}})
	carts := &hookedCarts{InMemoryCartRepository: repository.NewInMemoryCartRepository()}
	_, _ = carts.Add(ctx, "u1", "a", 2)

	// both calls read the full cart before either goes further
	var listed sync.WaitGroup
	listed.Add(2)
	carts.afterList = func() {
		listed.Done()
		listed.Wait()
	}
	orders := newHookedOrderService(products, carts, repository.NewInMemoryOrderRepository())

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = orders.PlaceOrder(ctx, "u1")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case !errors.Is(err, repository.ErrCartChanged):
			t.Errorf("error = %v, want nil or %v", err, repository.ErrCartChanged)
		}
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want exactly 1 (errs %v)", succeeded, errs)
	}

	p, _ := products.GetByID(ctx, "a")
	if p.Stock != 98 {
		t.Errorf("stock = %d, want 98", p.Stock)
	}
	left, _ := carts.InMemoryCartRepository.ListByUser(ctx, "u1")
	if len(left) != 0 {
		t.Errorf("expected empty cart, got %+v", left)
	}
}

func TestOrderService_PlaceOrder_KeepsUnitsAddedDuringCheckout(t *testing.T) {
	ctx := context.Background()
	products := repository.NewInMemoryProductRepositoryWith(testCatalog())
	carts := &hookedCarts{InMemoryCartRepository: repository.NewInMemoryCartRepository()}
	row, _ := carts.Add(ctx, "u1", "a", 2)

	carts.afterList = func() {
		_, _ = carts.InMemoryCartRepository.Add(ctx, "u1", "a", 3)
	}
	orders := newHookedOrderService(products, carts, repository.NewInMemoryOrderRepository())

	order, err := orders.PlaceOrder(ctx, "u1")
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}
	if order.Price != 160 {
		t.Errorf("price = %v, want 160", order.Price)
	}

	left, _ := carts.InMemoryCartRepository.ListByUser(ctx, "u1")
	if len(left) != 1 || left[0].ID != row.ID || left[0].Quantity != 3 {
		t.Errorf("unexpected cart after order: %+v", left)
	}
	a, _ := products.GetByID(ctx, "a")
	if a.Stock != 3 {
		t.Errorf("stock of a = %d, want 3", a.Stock)
	}
}

func TestOrderService_PlaceOrder_ReserveFailureRestoresCart(t *testing.T) {
	ctx := context.Background()
	inner := repository.NewInMemoryProductRepositoryWith(testCatalog())
	products := &hookedProducts{InMemoryProductRepository: inner}
	carts := &hookedCarts{InMemoryCartRepository: repository.NewInMemoryCartRepository()}
	_, _ = carts.Add(ctx, "u1", "a", 2)
	_, _ = carts.Add(ctx, "u1", "c", 1)

	// another buyer takes most of a's stock after the cart was priced
	products.beforeReserve = func() {
		_ = inner.ReserveStock(ctx, map[string]int{"a": 4})
	}
	orders := newHookedOrderService(products, carts, repository.NewInMemoryOrderRepository())

	if _, err := orders.PlaceOrder(ctx, "u1"); !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("error = %v, want %v", err, repository.ErrInsufficientStock)
	}

	left, _ := carts.InMemoryCartRepository.ListByUser(ctx, "u1")
	if len(left) != 2 || left[0].Quantity != 2 || left[1].Quantity != 1 {
		t.Errorf("cart not restored: %+v", left)
	}
	c, _ := inner.GetByID(ctx, "c")
	if c.Stock != 10 {
		t.Errorf("stock of c = %d, want 10", c.Stock)
	}
}

func TestOrderService_PlaceOrder_StoreFailureReleasesStock(t *testing.T) {
	ctx := context.Background()
	storeDown := errors.New("order store unavailable")
	products := repository.NewInMemoryProductRepositoryWith(testCatalog())
	carts := &hookedCarts{InMemoryCartRepository: repository.NewInMemoryCartRepository()}
	_, _ = carts.Add(ctx, "u1", "a", 2)
	_, _ = carts.Add(ctx, "u1", "c", 1)

	orders := newHookedOrderService(products, carts, failingOrders{err: storeDown})

	if _, err := orders.PlaceOrder(ctx, "u1"); !errors.Is(err, storeDown) {
		t.Fatalf("error = %v, want %v", err, storeDown)
	}

	a, _ := products.GetByID(ctx, "a")
	c, _ := products.GetByID(ctx, "c")
	if a.Stock != 5 || c.Stock != 10 {
		t.Errorf("stock = (%d, %d), want (5, 10) after failed store", a.Stock, c.Stock)
	}
	left, _ := carts.InMemoryCartRepository.ListByUser(ctx, "u1")
	if len(left) != 2 || left[0].Quantity != 2 || left[1].Quantity != 1 {
		t.Errorf("cart not restored: %+v", left)
	}
}
