package service

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
	"github.com/Lixing-Zhang/multivendor-shop/internal/repository"
)

var (
	ErrEmptyCart = errors.New("cart has no purchasable items")
)

// OrderService handles order business logic
type OrderService struct {
	carts    *CartService
	products repository.ProductRepository
	cartRepo repository.CartRepository
	orders   repository.OrderRepository
	now      func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(carts *CartService, products repository.ProductRepository, cartRepo repository.CartRepository, orders repository.OrderRepository) *OrderService {
	return &OrderService{
		carts:    carts,
		products: products,
		cartRepo: cartRepo,
		orders:   orders,
		now:      time.Now,
	}
}

// PlaceOrder turns the in-stock part of a user's cart into an order. The
// purchased units are taken out of the cart first, so concurrent calls for
// the same cart cannot both succeed; stock is then reserved and the order
// stored. Any failure after the take puts the units and stock back.
// Out-of-stock lines stay in the cart.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string) (*models.Order, error) {
	checkout, err := s.carts.Checkout(ctx, userID)
	if err != nil {
		return nil, err
	}
	if checkout.Summary.PurchasableItemCount == 0 {
		return nil, ErrEmptyCart
	}

	taken := make([]models.CartItem, 0, len(checkout.Summary.InStock))
	quantities := make(map[string]int, len(checkout.Summary.InStock))
	for _, l := range checkout.Summary.InStock {
		taken = append(taken, models.CartItem{
			ID:        l.ID,
			UserID:    userID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
		quantities[l.ProductID] += l.Quantity
	}

	if err := s.cartRepo.Take(ctx, taken); err != nil {
		return nil, errors.Wrap(err, "take cart items")
	}

	if err := s.products.ReserveStock(ctx, quantities); err != nil {
		return nil, errors.Join(
			errors.Wrap(err, "reserve stock"),
			s.restoreCart(ctx, taken),
		)
	}

	order := &models.Order{
		ID:          generateOrderID(),
		UserID:      userID,
		Sellers:     toSellerCarts(checkout.Sellers),
		Price:       checkout.Summary.TotalPrice(),
		ShippingFee: checkout.ShippingFee,
		Status:      models.OrderStatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		var releaseErr error
		if rerr := s.products.ReleaseStock(ctx, quantities); rerr != nil {
			releaseErr = errors.Wrap(rerr, "release stock")
		}
		return nil, errors.Join(
			errors.Wrap(err, "store order"),
			releaseErr,
			s.restoreCart(ctx, taken),
		)
	}

	return order, nil
}

func (s *OrderService) restoreCart(ctx context.Context, items []models.CartItem) error {
	if err := s.cartRepo.Restore(ctx, items); err != nil {
		return errors.Wrap(err, "restore cart items")
	}
	return nil
}

// GetOrder returns an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// generateOrderID generates a unique order ID using UUID
func generateOrderID() string {
	return uuid.New().String()
}
