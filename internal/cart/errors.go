package cart

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrMissingProduct is matched by every MissingProductError
var ErrMissingProduct = errors.New("cart line has no matching product")

// MissingProductError reports a cart line whose product join came back empty
type MissingProductError struct {
	LineID    string
	ProductID string
}

func (e *MissingProductError) Error() string {
	return fmt.Sprintf("cart line %s: product %s: %v", e.LineID, e.ProductID, ErrMissingProduct)
}

func (e *MissingProductError) Unwrap() error {
	return ErrMissingProduct
}
