package store_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLine(productID, variant string, unitPrice float64) domain.LineItem {
	return domain.LineItem{
		ProductID:   productID,
		Variant:     variant,
		DisplayName: "testProduct",
		UnitPrice:   unitPrice,
		Quantity:    1,
	}
}

func TestCartIncrease(t *testing.T) {
	t.Run("NewLine", func(t *testing.T) {
		c := store.NewCart()
		li, existed := c.Increase(testLine("p1", "", 75))
		assert.False(t, existed)
		assert.Equal(t, 1, li.Quantity)
		assert.Equal(t, 75.0, li.TotalPrice)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("SameKeyTwiceMerges", func(t *testing.T) {
		c := store.NewCart()
		c.Increase(testLine("p1", "vanilla", 75))
		li, existed := c.Increase(testLine("p1", "vanilla", 999))
		assert.True(t, existed)
		assert.Equal(t, 2, li.Quantity)
		assert.Equal(t, 75.0, li.UnitPrice, "unit price fixed at first add")
		assert.Equal(t, 150.0, li.TotalPrice)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("VariantsAreDistinctLines", func(t *testing.T) {
		c := store.NewCart()
		c.Increase(testLine("p1", "vanilla", 75))
		c.Increase(testLine("p1", "chocolate", 80))
		assert.Equal(t, 2, c.Len())
	})

	t.Run("InvariantAfterMutations", func(t *testing.T) {
		c := store.NewCart()
		for range 5 {
			c.Increase(testLine("p1", "", 9.99))
		}
		c.Increase(testLine("p2", "", 3))
		for _, li := range c.Items() {
			assert.Positive(t, li.Quantity)
			assert.InDelta(
				t, li.UnitPrice*float64(li.Quantity), li.TotalPrice, 1e-9,
			)
		}
	})
}

func TestCartDecrease(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		c := store.NewCart()
		c.Increase(testLine("p1", "", 10))
		c.Increase(testLine("p1", "", 10))

		li, removed, err := c.Decrease(domain.Key{ProductID: "p1"})
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, 1, li.Quantity)
		assert.Equal(t, 10.0, li.TotalPrice)
	})

	t.Run("QuantityOneRemovesLine", func(t *testing.T) {
		c := store.NewCart()
		c.Increase(testLine("p1", "", 10))

		li, removed, err := c.Decrease(domain.Key{ProductID: "p1"})
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, 0, li.Quantity)
		assert.Equal(t, 0, c.Len())

		_, ok := c.Get(domain.Key{ProductID: "p1"})
		assert.False(t, ok, "key is absent after removal")
	})

	t.Run("UnknownKey", func(t *testing.T) {
		c := store.NewCart()
		_, _, err := c.Decrease(domain.Key{ProductID: "ghost"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCartRemove(t *testing.T) {
	c := store.NewCart()
	for range 3 {
		c.Increase(testLine("p1", "", 10))
	}

	li, err := c.Remove(domain.Key{ProductID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, 3, li.Quantity)
	assert.Equal(t, 0, c.Len())

	_, err = c.Remove(domain.Key{ProductID: "p1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartReplaceAll(t *testing.T) {
	t.Run("Overwrites", func(t *testing.T) {
		c := store.NewCart()
		c.Increase(testLine("local", "", 5))

		c.ReplaceAll([]domain.LineItem{
			{ProductID: "r1", UnitPrice: 10, Quantity: 2},
			{ProductID: "r2", UnitPrice: 3, Quantity: 1},
		})

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "r1", items[0].ProductID)
		assert.Equal(t, 20.0, items[0].TotalPrice)

		_, ok := c.Get(domain.Key{ProductID: "local"})
		assert.False(t, ok, "no merge with previous state")
	})

	t.Run("DropsZeroQuantity", func(t *testing.T) {
		c := store.NewCart()
		c.ReplaceAll([]domain.LineItem{
			{ProductID: "r1", UnitPrice: 10, Quantity: 0},
			{ProductID: "r2", UnitPrice: 3, Quantity: 2},
		})
		assert.Equal(t, 1, c.Len())
	})
}

func TestCartOrder(t *testing.T) {
	c := store.NewCart()
	c.Increase(testLine("a", "", 1))
	c.Increase(testLine("b", "", 1))
	c.Increase(testLine("c", "", 1))
	c.Increase(testLine("a", "", 1))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ProductID)
	assert.Equal(t, "b", items[1].ProductID)
	assert.Equal(t, "c", items[2].ProductID)
}

func TestCartSetRemoteItemID(t *testing.T) {
	c := store.NewCart()
	c.Increase(testLine("p1", "", 10))

	ok := c.SetRemoteItemID(domain.Key{ProductID: "p1"}, "srv-42")
	assert.True(t, ok)

	li, _ := c.Get(domain.Key{ProductID: "p1"})
	assert.Equal(t, "srv-42", li.RemoteItemID)

	ok = c.SetRemoteItemID(domain.Key{ProductID: "gone"}, "srv-43")
	assert.False(t, ok)
}

func TestWishlistToggle(t *testing.T) {
	w := store.NewWishlist()
	item := domain.WishlistItem{ProductID: "p1", DisplayName: "testProduct"}

	added := w.Toggle(item)
	assert.True(t, added)
	assert.True(t, w.Has("p1"))

	added = w.Toggle(item)
	assert.False(t, added)
	assert.False(t, w.Has("p1"))
	assert.Equal(t, 0, w.Len())
}
