package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query string keys understood by the catalog listing
const (
	KeyCategory   = "category"
	KeyRating     = "rating"
	KeyLowPrice   = "lowPrice"
	KeyHighPrice  = "highPrice"
	KeySortPrice  = "sortPrice"
	KeyPageNumber = "pageNumber"
	KeyParPage    = "parPage"

	// SortLowToHigh is the only sortPrice value that sorts ascending
	SortLowToHigh = "low-to-high"

	DefaultPageNumber = 1
	DefaultParPage    = 9
)

// Params is the typed form of a catalog query string.
// Malformed numeric values never produce errors; they fall back to defaults.
type Params struct {
	Category string

	// Rating is the lower edge of the rating bucket. HasRating is false when
	// the parameter was absent or not numeric.
	Rating    int
	HasRating bool

	// LowPrice and HighPrice default to 0 and +Inf. HasPriceRange is true
	// when at least one bound was supplied as a number.
	LowPrice      float64
	HighPrice     float64
	HasPriceRange bool

	// SortPrice is empty when no reordering was requested
	SortPrice string

	PageNumber int
	ParPage    int
}

// DefaultParams returns params that match every product and return the first page
func DefaultParams() Params {
	return Params{
		LowPrice:   0,
		HighPrice:  math.Inf(1),
		PageNumber: DefaultPageNumber,
		ParPage:    DefaultParPage,
	}
}

// ParseParams reads raw query-string values. defaultParPage replaces the
// built-in page size when positive.
func ParseParams(values url.Values, defaultParPage int) Params {
	p := DefaultParams()
	if defaultParPage > 0 {
		p.ParPage = defaultParPage
	}

	p.Category = values.Get(KeyCategory)

	if raw, ok := lookup(values, KeyRating); ok {
		if n, ok := parseLeadingInt(raw); ok {
			p.Rating = n
			p.HasRating = true
		}
	}

	if raw, ok := lookup(values, KeyLowPrice); ok {
		if v, ok := parseFloat(raw); ok {
			p.LowPrice = v
			p.HasPriceRange = true
		}
	}
	if raw, ok := lookup(values, KeyHighPrice); ok {
		if v, ok := parseFloat(raw); ok {
			p.HighPrice = v
			p.HasPriceRange = true
		}
	}

	p.SortPrice = values.Get(KeySortPrice)

	if raw, ok := lookup(values, KeyPageNumber); ok {
		p.PageNumber = positiveIntOr(raw, p.PageNumber)
	}
	if raw, ok := lookup(values, KeyParPage); ok {
		p.ParPage = positiveIntOr(raw, p.ParPage)
	}

	return p
}

func lookup(values url.Values, key string) (string, bool) {
	if _, ok := values[key]; !ok {
		return "", false
	}
	raw := values.Get(key)
	return raw, raw != ""
}

// parseLeadingInt reads an optionally signed run of leading digits and
// ignores whatever follows, so "4.5" is 4 and "3stars" is 3.
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFloat(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func positiveIntOr(raw string, fallback int) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n < 1 {
		return fallback
	}
	return n
}
