package repository

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrQuantityLimit    = errors.New("cart line quantity over limit")
	ErrCartChanged      = errors.New("cart changed")
)

// DefaultMaxLineQuantity caps the units a single cart row may hold
const DefaultMaxLineQuantity = 1000

// CartRepository defines the interface for cart row storage
type CartRepository interface {
	Add(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error)
	GetByID(ctx context.Context, id string) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	Take(ctx context.Context, items []models.CartItem) error
	Restore(ctx context.Context, items []models.CartItem) error
}

// InMemoryCartRepository implements CartRepository with in-memory storage
type InMemoryCartRepository struct {
	mu          sync.RWMutex
	order       []string
	items       map[string]models.CartItem
	maxQuantity int
}

// NewInMemoryCartRepository creates an empty cart repository
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return NewInMemoryCartRepositoryWithLimit(DefaultMaxLineQuantity)
}

// NewInMemoryCartRepositoryWithLimit creates an empty cart repository whose
// rows hold at most maxQuantity units
func NewInMemoryCartRepositoryWithLimit(maxQuantity int) *InMemoryCartRepository {
	if maxQuantity < 1 {
		maxQuantity = DefaultMaxLineQuantity
	}
	return &InMemoryCartRepository{
		items:       make(map[string]models.CartItem),
		maxQuantity: maxQuantity,
	}
}

// Add stores a new cart row, or raises the quantity of the user's existing
// row for the same product
func (r *InMemoryCartRepository) Add(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity > r.maxQuantity {
		return nil, errors.Wrapf(ErrQuantityLimit, "max %d", r.maxQuantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.findRow(userID, productID); ok {
		item := r.items[id]
		// both operands are at most maxQuantity, so this cannot overflow
		if item.Quantity > r.maxQuantity-quantity {
			return nil, errors.Wrapf(ErrQuantityLimit, "max %d", r.maxQuantity)
		}
		item.Quantity += quantity
		r.items[id] = item
		return &item, nil
	}

	item := models.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return &item, nil
}

// GetByID returns a cart row
func (r *InMemoryCartRepository) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrCartItemNotFound
	}
	return &item, nil
}

// UpdateQuantity replaces the quantity of a cart row
func (r *InMemoryCartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error) {
	if quantity > r.maxQuantity {
		return nil, errors.Wrapf(ErrQuantityLimit, "max %d", r.maxQuantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrCartItemNotFound
	}
	item.Quantity = quantity
	r.items[id] = item
	return &item, nil
}

// Remove deletes a cart row
func (r *InMemoryCartRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrCartItemNotFound
	}
	delete(r.items, id)
	r.compact()
	return nil
}

// ListByUser returns the user's cart rows in the order they were added
func (r *InMemoryCartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.CartItem, 0)
	for _, id := range r.order {
		if item := r.items[id]; item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

// Take removes the listed quantities from the rows with the same ids. Every
// row must still belong to the same user and hold at least that many units,
// otherwise ErrCartChanged is returned and nothing is taken. Rows left with
// zero units are deleted; units added after the listing stay in the cart.
func (r *InMemoryCartRepository) Take(ctx context.Context, items []models.CartItem) error {
	want := make(map[string]int, len(items))
	for _, it := range items {
		want[it.ID] += it.Quantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range items {
		row, ok := r.items[it.ID]
		if !ok || row.UserID != it.UserID || row.Quantity < want[it.ID] {
			return errors.Wrapf(ErrCartChanged, "cart item %s", it.ID)
		}
	}

	removed := false
	for id, quantity := range want {
		row := r.items[id]
		row.Quantity -= quantity
		if row.Quantity == 0 {
			delete(r.items, id)
			removed = true
			continue
		}
		r.items[id] = row
	}
	if removed {
		r.compact()
	}
	return nil
}

// Restore puts back units removed by Take. A row that still exists gets its
// quantity raised; a deleted row is merged into the user's row for the same
// product if one was added since, or else recreated under its old id.
func (r *InMemoryCartRepository) Restore(ctx context.Context, items []models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range items {
		if row, ok := r.items[it.ID]; ok {
			row.Quantity += it.Quantity
			r.items[it.ID] = row
			continue
		}
		if id, ok := r.findRow(it.UserID, it.ProductID); ok {
			row := r.items[id]
			row.Quantity += it.Quantity
			r.items[id] = row
			continue
		}
		r.items[it.ID] = it
		r.order = append(r.order, it.ID)
	}
	return nil
}

// findRow returns the id of the user's row for productID; caller holds the lock
func (r *InMemoryCartRepository) findRow(userID, productID string) (string, bool) {
	for _, id := range r.order {
		if item := r.items[id]; item.UserID == userID && item.ProductID == productID {
			return id, true
		}
	}
	return "", false
}

// compact drops deleted ids from order; caller holds the write lock
func (r *InMemoryCartRepository) compact() {
	kept := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.items[id]; ok {
			kept = append(kept, id)
		}
	}
	r.order = kept
}
