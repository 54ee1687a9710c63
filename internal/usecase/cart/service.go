package cart

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	domcart "example.com/fastshop/internal/domain/cart"
	domproduct "example.com/fastshop/internal/domain/product"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domproduct.Product, error)
}

// Service is the cart engine. It holds no cart state: every call takes the
// client's cart and returns a new one, reading prices from the catalog.
type Service struct {
	productRepo ProductRepository
	log         logrus.FieldLogger
}

func NewService(productRepo ProductRepository, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Service{
		productRepo: productRepo,
		log:         log,
	}
}

// AddToCart merges quantity into the existing quantity for productID.
// On failure the input cart is returned untouched.
func (s *Service) AddToCart(ctx context.Context, c domcart.Cart, productID, quantity int64) (domcart.Cart, error) {
	if err := validateMutation(c, productID, quantity); err != nil {
		return c, err
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return c, err
	}

	merged, err := c.AddQuantity(productID, quantity)
	if err != nil {
		return c, err
	}

	updated := c.Clone()
	updated[productID] = merged
	if _, err := updated.TotalQuantity(); err != nil {
		return c, err
	}
	return updated, nil
}

// UpdateCartItem replaces the quantity of a product already in the cart.
func (s *Service) UpdateCartItem(ctx context.Context, c domcart.Cart, productID, quantity int64) (domcart.Cart, error) {
	if err := validateMutation(c, productID, quantity); err != nil {
		return c, err
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return c, err
	}
	if _, ok := c[productID]; !ok {
		return c, domcart.ErrItemNotInCart
	}

	updated := c.Clone()
	updated[productID] = quantity
	if _, err := updated.TotalQuantity(); err != nil {
		return c, err
	}
	return updated, nil
}

// RemoveFromCart drops productID. Removing an absent product is not an error.
func (s *Service) RemoveFromCart(ctx context.Context, c domcart.Cart, productID int64) (domcart.Cart, error) {
	if err := c.Validate(); err != nil {
		return c, err
	}
	if productID <= 0 {
		return c, domcart.ErrInvalidProductID
	}

	updated := c.Clone()
	delete(updated, productID)
	return updated, nil
}

// GetCartDetails prices every line at the current catalog price. Products
// that no longer exist are left out of the result.
func (s *Service) GetCartDetails(ctx context.Context, c domcart.Cart) (*domcart.Details, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := make([]domcart.Item, 0, len(ids))
	for _, id := range ids {
		p, err := s.productRepo.GetByID(ctx, id)
		if errors.Is(err, domproduct.ErrProductNotFound) {
			s.log.WithFields(logrus.Fields{
				"product_id": id,
				"quantity":   c[id],
			}).Warn("skipping cart item for missing product")
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, domcart.NewItem(p.ID, p.Name, p.Price, c[id], p.ImageURL))
	}

	return domcart.NewDetails(items)
}

func validateMutation(c domcart.Cart, productID, quantity int64) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if productID <= 0 {
		return domcart.ErrInvalidProductID
	}
	if quantity <= 0 {
		return domcart.ErrInvalidQuantity
	}
	return nil
}
