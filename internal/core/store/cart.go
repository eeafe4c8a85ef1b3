// Package store holds the in-memory cart and wishlist state the
// rendering layer reads from. It is the single source of truth for
// a session; mutations happen only through the core service.
package store

import (
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
)

// A Cart is an ordered collection of line items keyed by
// (ProductID, Variant). After every operation the invariants hold:
// keys are unique, no entry has Quantity <= 0 and
// TotalPrice == UnitPrice * Quantity for every entry.
//
// Cart is not safe for concurrent use, the owning service
// serializes access.
type Cart struct {
	order []domain.Key
	items map[domain.Key]domain.LineItem
}

func NewCart() *Cart {
	return &Cart{items: make(map[domain.Key]domain.LineItem)}
}

// Increase bumps the quantity for the key of li, inserting li as a
// new line when the key is absent. The unit price of an existing
// line is kept as is, only the total is recomputed. It returns the
// resulting line and whether the key already existed.
func (c *Cart) Increase(li domain.LineItem) (domain.LineItem, bool) {
	k := li.Key()
	cur, ok := c.items[k]
	if !ok {
		if li.Quantity < 1 {
			li.Quantity = 1
		}
		li.TotalPrice = li.UnitPrice * float64(li.Quantity)
		c.items[k] = li
		c.order = append(c.order, k)
		return li, false
	}

	cur.Quantity++
	cur.TotalPrice = cur.UnitPrice * float64(cur.Quantity)
	c.items[k] = cur
	return cur, true
}

// Decrease lowers the quantity by one. A line reaching zero is
// removed entirely; the returned flag reports the removal. The
// returned line carries the state after the mutation (quantity 0
// when removed).
func (c *Cart) Decrease(k domain.Key) (domain.LineItem, bool, error) {
	const op = "Cart.Decrease"

	cur, ok := c.items[k]
	if !ok {
		return domain.LineItem{}, false, fmt.Errorf(
			"%s: %s/%s: %w", op, k.ProductID, k.Variant, domain.ErrNotFound,
		)
	}

	cur.Quantity--
	if cur.Quantity <= 0 {
		cur.Quantity = 0
		cur.TotalPrice = 0
		c.delete(k)
		return cur, true, nil
	}

	cur.TotalPrice = cur.UnitPrice * float64(cur.Quantity)
	c.items[k] = cur
	return cur, false, nil
}

// Remove deletes the line unconditionally regardless of quantity.
func (c *Cart) Remove(k domain.Key) (domain.LineItem, error) {
	const op = "Cart.Remove"

	cur, ok := c.items[k]
	if !ok {
		return domain.LineItem{}, fmt.Errorf(
			"%s: %s/%s: %w", op, k.ProductID, k.Variant, domain.ErrNotFound,
		)
	}
	c.delete(k)
	return cur, nil
}

// ReplaceAll overwrites the whole cart with a fetched snapshot.
// No merging: the snapshot wins. Entries violating the quantity
// invariant are dropped, duplicate keys keep the last occurrence.
func (c *Cart) ReplaceAll(items []domain.LineItem) {
	c.order = c.order[:0]
	clear(c.items)
	for _, li := range items {
		if li.Quantity <= 0 {
			continue
		}
		li.TotalPrice = li.UnitPrice * float64(li.Quantity)
		k := li.Key()
		if _, ok := c.items[k]; !ok {
			c.order = append(c.order, k)
		}
		c.items[k] = li
	}
}

// SetRemoteItemID records the identifier the remote service assigned
// to the line. It reports whether the line still exists.
func (c *Cart) SetRemoteItemID(k domain.Key, remoteItemID string) bool {
	cur, ok := c.items[k]
	if !ok {
		return false
	}
	cur.RemoteItemID = remoteItemID
	c.items[k] = cur
	return true
}

func (c *Cart) Get(k domain.Key) (domain.LineItem, bool) {
	li, ok := c.items[k]
	return li, ok
}

// Items returns the lines in insertion order.
func (c *Cart) Items() []domain.LineItem {
	out := make([]domain.LineItem, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.items[k])
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) delete(k domain.Key) {
	delete(c.items, k)
	for i, ok := range c.order {
		if ok == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
