package domain

import "time"

type CartEventKind string

const (
	EventItemAdded       CartEventKind = "item_added"
	EventQuantityChanged CartEventKind = "quantity_changed"
	EventItemRemoved     CartEventKind = "item_removed"
	EventCartRefreshed   CartEventKind = "cart_refreshed"
	EventWishlistAdded   CartEventKind = "wishlist_added"
	EventWishlistRemoved CartEventKind = "wishlist_removed"
)

// A CartEvent is emitted to the activity stream after every
// cart or wishlist mutation. CustomerID is empty for guests.
type CartEvent struct {
	EventID    string
	SessionID  string
	CustomerID string
	Kind       CartEventKind
	ProductID  string
	Variant    string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
	OccurredAt time.Time
}
