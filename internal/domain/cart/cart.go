package cart

import (
	"math"

	"github.com/shopspring/decimal"
)

// Cart maps a product id to the requested quantity. It is owned by the
// client and round-trips on every call; a product that is not in the cart
// has no key.
type Cart map[int64]int64

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// Validate requires positive ids and quantities, and a unit total that fits
// in an int64.
func (c Cart) Validate() error {
	for id, qty := range c {
		if id <= 0 {
			return ErrInvalidProductID
		}
		if qty <= 0 {
			return ErrInvalidQuantity
		}
	}
	_, err := c.TotalQuantity()
	return err
}

// TotalQuantity sums the units in the cart. Quantities are assumed positive.
func (c Cart) TotalQuantity() (int64, error) {
	var n int64
	for _, qty := range c {
		next, err := addQuantities(n, qty)
		if err != nil {
			return 0, err
		}
		n = next
	}
	return n, nil
}

func addQuantities(a, b int64) (int64, error) {
	if a > math.MaxInt64-b {
		return 0, ErrQuantityTooLarge
	}
	return a + b, nil
}

// AddQuantity reports the merged quantity for productID, guarding against
// overflow.
func (c Cart) AddQuantity(productID, quantity int64) (int64, error) {
	return addQuantities(c[productID], quantity)
}

// Item is a priced cart line. It is derived on every read and never stored.
type Item struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Quantity  int64
	Subtotal  decimal.Decimal
	ImageURL  string
}

type Details struct {
	Items      []Item
	Total      decimal.Decimal
	ItemsCount int64
}

func NewItem(productID int64, name string, price float64, quantity int64, imageURL string) Item {
	p := decimal.NewFromFloat(price)
	return Item{
		ProductID: productID,
		Name:      name,
		Price:     p,
		Quantity:  quantity,
		Subtotal:  p.Mul(decimal.NewFromInt(quantity)),
		ImageURL:  imageURL,
	}
}

// NewDetails aggregates items into a priced view. It fails with
// ErrQuantityTooLarge when the unit count does not fit in an int64.
func NewDetails(items []Item) (*Details, error) {
	d := &Details{
		Items: items,
		Total: decimal.Zero,
	}
	if d.Items == nil {
		d.Items = []Item{}
	}
	for _, item := range d.Items {
		count, err := addQuantities(d.ItemsCount, item.Quantity)
		if err != nil {
			return nil, err
		}
		d.ItemsCount = count
		d.Total = d.Total.Add(item.Subtotal)
	}
	return d, nil
}
