package store

import "github.com/niksmo/storefront/internal/core/domain"

// A Wishlist is a set of product references keyed by ProductID.
// There are no quantity semantics. Not safe for concurrent use.
type Wishlist struct {
	order []string
	items map[string]domain.WishlistItem
}

func NewWishlist() *Wishlist {
	return &Wishlist{items: make(map[string]domain.WishlistItem)}
}

// Toggle adds the item when absent and removes it when present.
// It reports whether the item is present after the call.
func (w *Wishlist) Toggle(item domain.WishlistItem) bool {
	if _, ok := w.items[item.ProductID]; ok {
		w.delete(item.ProductID)
		return false
	}
	w.items[item.ProductID] = item
	w.order = append(w.order, item.ProductID)
	return true
}

func (w *Wishlist) Has(productID string) bool {
	_, ok := w.items[productID]
	return ok
}

func (w *Wishlist) Items() []domain.WishlistItem {
	out := make([]domain.WishlistItem, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.items[id])
	}
	return out
}

func (w *Wishlist) Len() int {
	return len(w.items)
}

func (w *Wishlist) ReplaceAll(items []domain.WishlistItem) {
	w.order = w.order[:0]
	clear(w.items)
	for _, item := range items {
		if _, ok := w.items[item.ProductID]; !ok {
			w.order = append(w.order, item.ProductID)
		}
		w.items[item.ProductID] = item
	}
}

func (w *Wishlist) delete(productID string) {
	delete(w.items, productID)
	for i, id := range w.order {
		if id == productID {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}
