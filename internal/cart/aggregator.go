// Package cart computes checkout totals for cart lines joined with their products.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
)

var hundred = decimal.NewFromInt(100)

// LineItem is a cart row joined with its product. Product is nil when the
// join found no match.
type LineItem struct {
	ID        string
	ProductID string
	Quantity  int
	Product   *models.Product
}

// InStock reports whether the product has enough stock for the line
func (l LineItem) InStock() bool {
	return l.Product.Stock >= l.Quantity
}

// Subtotal is quantity times the effective unit price, unrounded
func (l LineItem) Subtotal() decimal.Decimal {
	return EffectivePrice(l.Product.Price, l.Product.Discount).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Summary is the checkout view of a cart
type Summary struct {
	InStock    []LineItem
	OutOfStock []LineItem

	// InStockCount and OutOfStockCount are quantity-weighted
	InStockCount    int
	OutOfStockCount int

	// PurchasableItemCount is the number of in-stock lines
	PurchasableItemCount int

	Total decimal.Decimal
}

// TotalPrice is Total as a float, already rounded to cents
func (s Summary) TotalPrice() float64 {
	f, _ := s.Total.Float64()
	return f
}

// EffectivePrice applies a whole-number percentage discount to a unit price
func EffectivePrice(price float64, discount int) decimal.Decimal {
	p := decimal.NewFromFloat(price)
	if discount == 0 {
		return p
	}
	return p.Mul(hundred.Sub(decimal.NewFromInt(int64(discount)))).Div(hundred)
}

// Summarize splits lines by stock and totals the purchasable ones. The first
// line with a missing product aborts with a *MissingProductError.
func Summarize(lines []LineItem) (Summary, error) {
	for _, l := range lines {
		if l.Product == nil {
			return Summary{}, &MissingProductError{LineID: l.ID, ProductID: l.ProductID}
		}
	}
	return summarize(lines), nil
}

// SummarizePartial is Summarize that drops lines with a missing product and
// returns them as errors alongside the summary of the rest.
func SummarizePartial(lines []LineItem) (Summary, []*MissingProductError) {
	var missing []*MissingProductError
	kept := make([]LineItem, 0, len(lines))
	for _, l := range lines {
		if l.Product == nil {
			missing = append(missing, &MissingProductError{LineID: l.ID, ProductID: l.ProductID})
			continue
		}
		kept = append(kept, l)
	}
	return summarize(kept), missing
}

func summarize(lines []LineItem) Summary {
	s := Summary{
		InStock:    []LineItem{},
		OutOfStock: []LineItem{},
		Total:      decimal.Zero,
	}

	for _, l := range lines {
		if !l.InStock() {
			s.OutOfStock = append(s.OutOfStock, l)
			s.OutOfStockCount += l.Quantity
			continue
		}
		s.InStock = append(s.InStock, l)
		s.InStockCount += l.Quantity
		s.PurchasableItemCount++
		s.Total = s.Total.Add(l.Subtotal())
	}

	s.Total = s.Total.Round(2)
	return s
}
