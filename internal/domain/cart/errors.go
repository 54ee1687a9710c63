package cart

import (
	"errors"

	domcategory "example.com/fastshop/internal/domain/category"
	domproduct "example.com/fastshop/internal/domain/product"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidProductID = errors.New("product id must be positive")
	ErrQuantityTooLarge = errors.New("quantity too large")
	ErrItemNotInCart    = errors.New("product not in cart")
)

// IsValidation reports whether err rejects the caller's input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidProductID) ||
		errors.Is(err, ErrQuantityTooLarge)
}

// IsNotFound reports whether err names something absent from the catalog or cart.
func IsNotFound(err error) bool {
	return errors.Is(err, domproduct.ErrProductNotFound) ||
		errors.Is(err, domcategory.ErrCategoryNotFound) ||
		errors.Is(err, ErrItemNotInCart)
}
