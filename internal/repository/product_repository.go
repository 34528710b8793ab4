package repository

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
	Exists(ctx context.Context, id string) bool
	ReserveStock(ctx context.Context, quantities map[string]int) error
	ReleaseStock(ctx context.Context, quantities map[string]int) error
}

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// Products are returned in insertion order.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	order    []string
	products map[string]models.Product
}

// NewInMemoryProductRepository creates a new in-memory product repository with seed data
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return NewInMemoryProductRepositoryWith(SeedProducts())
}

// NewInMemoryProductRepositoryWith creates a repository holding the given products
func NewInMemoryProductRepositoryWith(products []models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		order:    make([]string, 0, len(products)),
		products: make(map[string]models.Product, len(products)),
	}
	for _, p := range products {
		if _, dup := r.products[p.ID]; !dup {
			r.order = append(r.order, p.ID)
		}
		r.products[p.ID] = p
	}
	return r
}

// GetAll returns a copy of every product
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	product, exists := r.products[id]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// GetByIDs returns the products found among ids, keyed by id. Unknown ids
// are absent from the result.
func (r *InMemoryProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	found := make(map[string]models.Product, len(ids))

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

// Exists reports whether a product with id is in the catalog
func (r *InMemoryProductRepository) Exists(ctx context.Context, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[id]
	return ok
}

// ReserveStock removes the given quantities from stock, keyed by product id.
// Either every product is decremented or none is.
func (r *InMemoryProductRepository) ReserveStock(ctx context.Context, quantities map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, quantity := range quantities {
		p, ok := r.products[id]
		if !ok {
			return errors.Wrapf(ErrProductNotFound, "product %s", id)
		}
		if p.Stock < quantity {
			return errors.Wrapf(ErrInsufficientStock, "product %s", id)
		}
	}

	for id, quantity := range quantities {
		p := r.products[id]
		p.Stock -= quantity
		r.products[id] = p
	}
	return nil
}

// ReleaseStock returns previously reserved quantities to stock. Every product
// must still exist, or nothing is released.
func (r *InMemoryProductRepository) ReleaseStock(ctx context.Context, quantities map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range quantities {
		if _, ok := r.products[id]; !ok {
			return errors.Wrapf(ErrProductNotFound, "product %s", id)
		}
	}

	for id, quantity := range quantities {
		p := r.products[id]
		p.Stock += quantity
		r.products[id] = p
	}
	return nil
}

// SeedProducts returns the demo catalog served when no storage is configured
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: "1", SellerID: "s1", Name: "Trail Running Shoe", Slug: "trail-running-shoe", Brand: "Stride", Category: "Shoes", Rating: 4.6, Price: 120, Discount: 10, Stock: 14},
		{ID: "2", SellerID: "s1", Name: "Canvas Sneaker", Slug: "canvas-sneaker", Brand: "Stride", Category: "Shoes", Rating: 3.8, Price: 45, Discount: 0, Stock: 40},
		{ID: "3", SellerID: "s2", Name: "Leather Tote", Slug: "leather-tote", Brand: "Hollow", Category: "Bags", Rating: 4.9, Price: 210, Discount: 15, Stock: 3},
		{ID: "4", SellerID: "s2", Name: "Day Backpack", Slug: "day-backpack", Brand: "Hollow", Category: "Bags", Rating: 4.1, Price: 75, Discount: 0, Stock: 22},
		{ID: "5", SellerID: "s3", Name: "Wireless Earbuds", Slug: "wireless-earbuds", Brand: "Pulse", Category: "Electronics", Rating: 4.3, Price: 89.99, Discount: 20, Stock: 0},
		{ID: "6", SellerID: "s3", Name: "Smart Watch", Slug: "smart-watch", Brand: "Pulse", Category: "Electronics", Rating: 5, Price: 249.5, Discount: 5, Stock: 8},
		{ID: "7", SellerID: "s3", Name: "USB-C Charger", Slug: "usb-c-charger", Brand: "Pulse", Category: "Electronics", Rating: 2.7, Price: 19.99, Discount: 0, Stock: 120},
		{ID: "8", SellerID: "s1", Name: "Wool Socks", Slug: "wool-socks", Brand: "Stride", Category: "Clothing", Rating: 4.0, Price: 12.5, Discount: 0, Stock: 200},
		{ID: "9", SellerID: "s2", Name: "Rain Jacket", Slug: "rain-jacket", Brand: "Hollow", Category: "Clothing", Rating: 3.2, Price: 95, Discount: 30, Stock: 11},
		{ID: "10", SellerID: "s1", Name: "Running Shorts", Slug: "running-shorts", Brand: "Stride", Category: "Clothing", Rating: 4.4, Price: 35, Discount: 0, Stock: 5},
		{ID: "11", SellerID: "s2", Name: "Travel Duffel", Slug: "travel-duffel", Brand: "Hollow", Category: "Bags", Rating: 3.9, Price: 130, Discount: 0, Stock: 6},
		{ID: "12", SellerID: "s3", Name: "Bluetooth Speaker", Slug: "bluetooth-speaker", Brand: "Pulse", Category: "Electronics", Rating: 4.7, Price: 59, Discount: 0, Stock: 17},
	}
}
