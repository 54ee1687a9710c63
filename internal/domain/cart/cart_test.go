package cart

import (
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domproduct "example.com/fastshop/internal/domain/product"
)

func TestCart_CloneIsIndependent(t *testing.T) {
	c := Cart{1: 2, 2: 3}

	cloned := c.Clone()
	cloned[1] = 10
	delete(cloned, 2)

	require.Equal(t, Cart{1: 2, 2: 3}, c)
	require.Equal(t, Cart{1: 10}, cloned)
}

func TestCart_CloneOfNilIsEmpty(t *testing.T) {
	var c Cart

	cloned := c.Clone()

	require.NotNil(t, cloned)
	require.Len(t, cloned, 0)
}

func TestCart_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cart    Cart
		wantErr error
	}{
		{name: "Empty cart", cart: Cart{}},
		{name: "Nil cart", cart: nil},
		{name: "Positive entries", cart: Cart{1: 1, 7: 40}},
		{name: "Zero quantity", cart: Cart{1: 0}, wantErr: ErrInvalidQuantity},
		{name: "Negative quantity", cart: Cart{1: -3}, wantErr: ErrInvalidQuantity},
		{name: "Zero product id", cart: Cart{0: 1}, wantErr: ErrInvalidProductID},
		{name: "Negative product id", cart: Cart{-5: 1}, wantErr: ErrInvalidProductID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cart.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCart_TotalQuantityCountsUnits(t *testing.T) {
	n, err := Cart{1: 3, 2: 2}.TotalQuantity()
	require.NoError(t, err)
	require.Equal(t, int64(5), n)

	n, err = Cart{}.TotalQuantity()
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}

func TestCart_TotalQuantityOverflow(t *testing.T) {
	_, err := Cart{1: math.MaxInt64, 2: 1}.TotalQuantity()
	require.ErrorIs(t, err, ErrQuantityTooLarge)

	n, err := Cart{1: math.MaxInt64 - 1, 2: 1}.TotalQuantity()
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), n)
}

func TestCart_ValidateRejectsOverflowingTotal(t *testing.T) {
	require.ErrorIs(t, Cart{1: math.MaxInt64, 2: 1}.Validate(), ErrQuantityTooLarge)
	require.NoError(t, Cart{1: math.MaxInt64}.Validate())
}

func TestCart_AddQuantity(t *testing.T) {
	c := Cart{1: 2}

	merged, err := c.AddQuantity(1, 3)
	require.NoError(t, err)
	require.Equal(t, int64(5), merged)

	fresh, err := c.AddQuantity(2, 4)
	require.NoError(t, err)
	require.Equal(t, int64(4), fresh)

	_, err = Cart{1: math.MaxInt64 - 1}.AddQuantity(1, 2)
	require.ErrorIs(t, err, ErrQuantityTooLarge)
}

func TestNewItem_SubtotalIsExact(t *testing.T) {
	item := NewItem(1, "Notebook", 9.99, 2, "")

	require.True(t, item.Price.Equal(decimal.RequireFromString("9.99")))
	require.True(t, item.Subtotal.Equal(decimal.RequireFromString("19.98")), item.Subtotal.String())
	require.Equal(t, 19.98, item.Subtotal.InexactFloat64())
}

func TestNewItem_ThirdsDoNotDrift(t *testing.T) {
	// 0.1 * 3 is 0.30000000000000004 in float64
	item := NewItem(1, "Sticker", 0.1, 3, "")

	require.Equal(t, "0.3", item.Subtotal.String())
}

func TestNewDetails_Aggregates(t *testing.T) {
	details, err := NewDetails([]Item{
		NewItem(1, "Notebook", 9.99, 3, ""),
		NewItem(2, "Pen", 5.00, 2, "/static/pen.png"),
	})
	require.NoError(t, err)

	require.Len(t, details.Items, 2)
	require.Equal(t, int64(5), details.ItemsCount)
	require.Equal(t, "39.97", details.Total.String())

	sum := decimal.Zero
	for _, item := range details.Items {
		require.True(t, item.Subtotal.Equal(item.Price.Mul(decimal.NewFromInt(item.Quantity))))
		sum = sum.Add(item.Subtotal)
	}
	require.True(t, details.Total.Equal(sum))
}

func TestNewDetails_Empty(t *testing.T) {
	details, err := NewDetails(nil)
	require.NoError(t, err)

	require.NotNil(t, details.Items)
	require.Len(t, details.Items, 0)
	require.True(t, details.Total.IsZero())
	require.Equal(t, int64(0), details.ItemsCount)
}

func TestNewDetails_ItemsCountOverflow(t *testing.T) {
	_, err := NewDetails([]Item{
		NewItem(1, "Notebook", 9.99, math.MaxInt64, ""),
		NewItem(2, "Pen", 5.00, 1, ""),
	})
	require.ErrorIs(t, err, ErrQuantityTooLarge)
}

func TestErrorKinds(t *testing.T) {
	require.True(t, IsValidation(ErrInvalidQuantity))
	require.True(t, IsValidation(fmt.Errorf("add: %w", ErrQuantityTooLarge)))
	require.False(t, IsValidation(ErrItemNotInCart))

	require.True(t, IsNotFound(ErrItemNotInCart))
	require.True(t, IsNotFound(fmt.Errorf("lookup: %w", domproduct.ErrProductNotFound)))
	require.False(t, IsNotFound(ErrInvalidProductID))
}
