package service

import (
	"context"
	"log/slog"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/multivendor-shop/internal/cart"
	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
	"github.com/Lixing-Zhang/multivendor-shop/internal/repository"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrMissingUser     = errors.New("user id is required")
)

// CartService handles cart business logic
type CartService struct {
	products             repository.ProductRepository
	carts                repository.CartRepository
	shippingFeePerSeller float64
	log                  *slog.Logger
}

// NewCartService creates a new cart service
func NewCartService(products repository.ProductRepository, carts repository.CartRepository, shippingFeePerSeller float64, log *slog.Logger) *CartService {
	return &CartService{
		products:             products,
		carts:                carts,
		shippingFeePerSeller: shippingFeePerSeller,
		log:                  log,
	}
}

// Checkout is the priced view of a user's cart
type Checkout struct {
	Summary     cart.Summary
	Sellers     []cart.SellerGroup
	ShippingFee float64
	Missing     []*cart.MissingProductError
}

// AddToCart puts quantity units of a product in the user's cart
func (s *CartService) AddToCart(ctx context.Context, req models.AddToCartRequest) (*models.CartItem, error) {
	if req.UserID == "" {
		return nil, ErrMissingUser
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !s.products.Exists(ctx, req.ProductID) {
		return nil, ErrInvalidProduct
	}

	item, err := s.carts.Add(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, errors.Wrap(err, "add cart item")
	}
	return item, nil
}

// UpdateQuantity sets the quantity of one cart row
func (s *CartService) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return s.carts.UpdateQuantity(ctx, cartItemID, quantity)
}

// RemoveItem deletes one cart row
func (s *CartService) RemoveItem(ctx context.Context, cartItemID string) error {
	return s.carts.Remove(ctx, cartItemID)
}

// Checkout joins the user's cart with the catalog and prices it. Rows whose
// product no longer exists are skipped and reported in Missing.
func (s *CartService) Checkout(ctx context.Context, userID string) (*Checkout, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	lines, err := s.join(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, missing := cart.SummarizePartial(lines)
	for _, m := range missing {
		s.log.Warn("cart line references missing product",
			"user_id", userID,
			"cart_id", m.LineID,
			"product_id", m.ProductID,
		)
	}

	sellers := cart.GroupBySeller(summary.InStock)
	fee, _ := cart.ShippingFee(s.shippingFeePerSeller, sellers).Float64()

	return &Checkout{
		Summary:     summary,
		Sellers:     sellers,
		ShippingFee: fee,
		Missing:     missing,
	}, nil
}

// GetCart returns the cart summary payload for a user
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.CartSummary, error) {
	c, err := s.Checkout(ctx, userID)
	if err != nil {
		return nil, err
	}

	outOfStock := make([]models.CartLine, 0, len(c.Summary.OutOfStock))
	for _, l := range c.Summary.OutOfStock {
		outOfStock = append(outOfStock, toCartLine(l))
	}

	var missing []string
	for _, m := range c.Missing {
		missing = append(missing, m.LineID)
	}

	return &models.CartSummary{
		StockProduct:      toSellerCarts(c.Sellers),
		OutOfStockProduct: outOfStock,
		BuyProductItem:    c.Summary.InStockCount,
		CalculatePrice:    c.Summary.TotalPrice(),
		CartProductCount:  c.Summary.PurchasableItemCount,
		OutOfStockCount:   c.Summary.OutOfStockCount,
		ShippingFee:       c.ShippingFee,
		Missing:           missing,
	}, nil
}

// join pairs each cart row with its product; rows for unknown products get
// a nil product
func (s *CartService) join(ctx context.Context, userID string) ([]cart.LineItem, error) {
	rows, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list cart")
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	found, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "load cart products")
	}

	lines := make([]cart.LineItem, 0, len(rows))
	for _, row := range rows {
		line := cart.LineItem{
			ID:        row.ID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
		}
		if p, ok := found[row.ProductID]; ok {
			line.Product = &p
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func toCartLine(l cart.LineItem) models.CartLine {
	return models.CartLine{
		ID:       l.ID,
		Quantity: l.Quantity,
		Product:  *l.Product,
	}
}

func toSellerCarts(groups []cart.SellerGroup) []models.SellerCart {
	out := make([]models.SellerCart, 0, len(groups))
	for _, g := range groups {
		lines := make([]models.CartLine, 0, len(g.Lines))
		for _, l := range g.Lines {
			lines = append(lines, toCartLine(l))
		}
		price, _ := g.Subtotal.Float64()
		out = append(out, models.SellerCart{
			SellerID: g.SellerID,
			Price:    price,
			Products: lines,
		})
	}
	return out
}
