package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrGuestSession    = errors.New("session has no customer")
)

type (
	// A Key identifies a cart line within one session.
	// Variant is empty for products without secondary options.
	Key struct {
		ProductID string
		Variant   string
	}

	// A LineItem is one cart row. UnitPrice is fixed at the price
	// in effect when the item was first added, TotalPrice is always
	// UnitPrice * Quantity. RemoteItemID is empty until the remote
	// cart service acknowledges creation.
	LineItem struct {
		ProductID    string
		Variant      string
		DisplayName  string
		ImageRef     string
		Rating       float64
		UnitPrice    float64
		Quantity     int
		TotalPrice   float64
		RemoteItemID string
	}

	// A Product is the catalog data a caller passes on add;
	// display fields are denormalized into the line item.
	Product struct {
		ProductID   string
		Variant     string
		DisplayName string
		ImageRef    string
		Rating      float64
		Price       float64
		Discount    Discount
	}

	WishlistItem struct {
		ProductID   string
		DisplayName string
		ImageRef    string
		Rating      float64
		UnitPrice   float64
	}
)

func (li LineItem) Key() Key {
	return Key{ProductID: li.ProductID, Variant: li.Variant}
}
