// Package query filters, sorts and paginates an in-memory product catalog.
//
// Every stage is a pure function over a product slice. Stages never modify
// their input, so one catalog snapshot can be queried from many goroutines.
package query

import (
	"cmp"
	"slices"

	"github.com/Lixing-Zhang/multivendor-shop/internal/models"
)

// Predicate reports whether a product should be kept
type Predicate func(p models.Product) bool

// Stage transforms a product sequence into a new one
type Stage func(products []models.Product) []models.Product

// Pipeline composes stages left to right
func Pipeline(stages ...Stage) Stage {
	return func(products []models.Product) []models.Product {
		for _, stage := range stages {
			products = stage(products)
		}
		return products
	}
}

// Filter keeps the products matching pred, preserving order
func Filter(pred Predicate) Stage {
	return func(products []models.Product) []models.Product {
		out := make([]models.Product, 0, len(products))
		for _, p := range products {
			if pred(p) {
				out = append(out, p)
			}
		}
		return out
	}
}

// identity is used for stages whose parameter is absent
func identity(products []models.Product) []models.Product {
	return products
}

// CategoryIs matches an exact category label
func CategoryIs(category string) Predicate {
	return func(p models.Product) bool {
		return p.Category == category
	}
}

// RatingInBucket matches ratings in the half-open interval [bucket, bucket+1)
func RatingInBucket(bucket int) Predicate {
	lo := float64(bucket)
	hi := float64(bucket + 1)
	return func(p models.Product) bool {
		return lo <= p.Rating && p.Rating < hi
	}
}

// PriceBetween matches prices in the closed interval [low, high]
func PriceBetween(low, high float64) Predicate {
	return func(p models.Product) bool {
		return low <= p.Price && p.Price <= high
	}
}

// ByCategory is a no-op when category is empty
func ByCategory(category string) Stage {
	if category == "" {
		return identity
	}
	return Filter(CategoryIs(category))
}

// ByRating is a no-op when ok is false
func ByRating(bucket int, ok bool) Stage {
	if !ok {
		return identity
	}
	return Filter(RatingInBucket(bucket))
}

// ByPrice always runs. When bounded is false no price bound was supplied
// and every product is kept, negative prices included.
func ByPrice(low, high float64, bounded bool) Stage {
	if !bounded {
		return Filter(func(models.Product) bool { return true })
	}
	return Filter(PriceBetween(low, high))
}

// SortByPrice sorts ascending for "low-to-high", descending for any other
// non-empty value, and keeps the input order when sortPrice is empty.
// The sort is stable so equal prices keep their relative order.
func SortByPrice(sortPrice string) Stage {
	if sortPrice == "" {
		return identity
	}

	compare := func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) }
	if sortPrice == SortLowToHigh {
		compare = func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	}

	return func(products []models.Product) []models.Product {
		out := slices.Clone(products)
		slices.SortStableFunc(out, compare)
		return out
	}
}

// Paginate returns the slice [(page-1)*parPage, page*parPage). Pages past the
// end, or non-positive page arguments, yield an empty sequence.
func Paginate(pageNumber, parPage int) Stage {
	return func(products []models.Product) []models.Product {
		start, end, ok := pageBounds(len(products), pageNumber, parPage)
		if !ok {
			return []models.Product{}
		}
		return slices.Clone(products[start:end])
	}
}

func pageBounds(n, pageNumber, parPage int) (int, int, bool) {
	if pageNumber < 1 || parPage < 1 {
		return 0, 0, false
	}
	// start > n; checked by division so large inputs cannot overflow
	if pageNumber-1 > n/parPage {
		return 0, 0, false
	}
	start := (pageNumber - 1) * parPage
	if start >= n {
		return 0, 0, false
	}
	return start, start + min(parPage, n-start), true
}

// ProductQuery runs a fixed category → rating → price → sort order over a
// catalog, with pagination applied last
type ProductQuery struct {
	params Params
	sorted Stage
}

// New builds a query from parsed params
func New(params Params) *ProductQuery {
	return &ProductQuery{
		params: params,
		sorted: Pipeline(
			ByCategory(params.Category),
			ByRating(params.Rating, params.HasRating),
			ByPrice(params.LowPrice, params.HighPrice, params.HasPriceRange),
			SortByPrice(params.SortPrice),
		),
	}
}

// Params returns the params the query was built from
func (q *ProductQuery) Params() Params {
	return q.params
}

// Count returns how many products pass the filters, ignoring pagination
func (q *ProductQuery) Count(products []models.Product) int {
	return len(q.sorted(products))
}

// Page returns the filtered, sorted products on the requested page
func (q *ProductQuery) Page(products []models.Product) []models.Product {
	return Pipeline(q.sorted, Paginate(q.params.PageNumber, q.params.ParPage))(products)
}
