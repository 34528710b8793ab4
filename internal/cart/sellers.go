package cart

import "github.com/shopspring/decimal"

// SellerGroup holds the in-stock lines of one seller
type SellerGroup struct {
	SellerID string
	Lines    []LineItem
	Subtotal decimal.Decimal
}

// GroupBySeller groups lines by their product's seller in first-seen order.
// Subtotals are rounded to cents. Lines must have a joined product.
func GroupBySeller(lines []LineItem) []SellerGroup {
	groups := make([]SellerGroup, 0)
	index := make(map[string]int)

	for _, l := range lines {
		seller := l.Product.SellerID
		i, ok := index[seller]
		if !ok {
			i = len(groups)
			index[seller] = i
			groups = append(groups, SellerGroup{SellerID: seller, Subtotal: decimal.Zero})
		}
		groups[i].Lines = append(groups[i].Lines, l)
		groups[i].Subtotal = groups[i].Subtotal.Add(l.Subtotal())
	}

	for i := range groups {
		groups[i].Subtotal = groups[i].Subtotal.Round(2)
	}
	return groups
}

// ShippingFee charges a flat fee per seller shipping part of the order
func ShippingFee(perSeller float64, groups []SellerGroup) decimal.Decimal {
	return decimal.NewFromFloat(perSeller).Mul(decimal.NewFromInt(int64(len(groups))))
}
