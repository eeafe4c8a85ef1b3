package storage

import (
	"path/filepath"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeItemCart() []domain.LineItem {
	return []domain.LineItem{
		{
			ProductID: "p1", DisplayName: "Vanilla Shake",
			UnitPrice: 9.5, Quantity: 2, TotalPrice: 19,
			RemoteItemID: "srv-1",
		},
		{
			ProductID: "p2", Variant: "mint",
			UnitPrice: 3, Quantity: 1, TotalPrice: 3,
		},
		{
			ProductID: "p3", DisplayName: "Cookie Box",
			UnitPrice: 12.25, Quantity: 4, TotalPrice: 49,
		},
	}
}

func TestCartRepository(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		kv, err := New(t.TempDir())
		require.NoError(t, err)
		defer kv.Close()

		r := NewCartRepository(kv)
		require.NoError(t, r.SaveCart("sess1", threeItemCart()))

		got, err := r.LoadCart("sess1")
		require.NoError(t, err)
		assert.Equal(t, threeItemCart(), got)
	})

	t.Run("SurvivesRestart", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store")

		kv, err := New(path)
		require.NoError(t, err)
		r := NewCartRepository(kv)
		require.NoError(t, r.SaveCart("sess1", threeItemCart()))
		kv.Close()

		kv, err = New(path)
		require.NoError(t, err)
		defer kv.Close()

		got, err := NewCartRepository(kv).LoadCart("sess1")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, threeItemCart(), got)
	})

	t.Run("MissingBlobYieldsEmpty", func(t *testing.T) {
		kv, err := New(t.TempDir())
		require.NoError(t, err)
		defer kv.Close()

		got, err := NewCartRepository(kv).LoadCart("ghost")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("CorruptBlobYieldsEmpty", func(t *testing.T) {
		kv, err := New(t.TempDir())
		require.NoError(t, err)
		defer kv.Close()

		require.NoError(
			t, kv.db.Put(cartKey("sess1"), []byte("{broken"), nil),
		)

		got, err := NewCartRepository(kv).LoadCart("sess1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		kv, err := New(t.TempDir())
		require.NoError(t, err)
		defer kv.Close()

		r := NewCartRepository(kv)
		require.NoError(t, r.SaveCart("sess1", threeItemCart()))
		require.NoError(t, r.DeleteCart("sess1"))

		got, err := r.LoadCart("sess1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		kv, err := New(t.TempDir())
		require.NoError(t, err)
		defer kv.Close()

		r := NewCartRepository(kv)
		require.NoError(t, r.SaveCart("sess1", threeItemCart()))

		got, err := r.LoadCart("sess2")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestWishlistRepository(t *testing.T) {
	items := []domain.WishlistItem{
		{ProductID: "p1", DisplayName: "Vanilla Shake", UnitPrice: 9.5},
		{ProductID: "p2", UnitPrice: 3},
	}

	t.Run("RoundTrip", func(t *testing.T) {
		kv, err := New(t.TempDir())
		require.NoError(t, err)
		defer kv.Close()

		r := NewWishlistRepository(kv)
		require.NoError(t, r.SaveWishlist("sess1", items))

		got, err := r.LoadWishlist("sess1")
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("SeparateNamespaceFromCart", func(t *testing.T) {
		kv, err := New(t.TempDir())
		require.NoError(t, err)
		defer kv.Close()

		require.NoError(
			t, NewCartRepository(kv).SaveCart("sess1", threeItemCart()),
		)

		got, err := NewWishlistRepository(kv).LoadWishlist("sess1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
