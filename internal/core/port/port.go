package port

import (
	"context"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Inbound ports, implemented by the core service and called by the
// rendering layer.

type CartAdder interface {
	AddToCart(ctx context.Context, sessionID string, p domain.Product) (domain.LineItem, error)
}

type CartDecrementer interface {
	DecrementCartItem(ctx context.Context, sessionID string, k domain.Key) (domain.LineItem, error)
}

type CartRemover interface {
	RemoveCartItem(ctx context.Context, sessionID string, k domain.Key) error
}

type CartRefresher interface {
	RefreshCart(ctx context.Context, sessionID string) error
}

type CartClearer interface {
	ClearCart(ctx context.Context, sessionID string) error
}

type CartViewer interface {
	CartItems(ctx context.Context, sessionID string) ([]domain.LineItem, error)
}

type CustomerBinder interface {
	BindCustomer(ctx context.Context, sessionID, customerID string) error
}

type WishlistToggler interface {
	ToggleWishlist(ctx context.Context, sessionID string, p domain.Product) (bool, error)
}

type WishlistViewer interface {
	WishlistItems(ctx context.Context, sessionID string) ([]domain.WishlistItem, error)
}

// Outbound ports, implemented by adapters.

// A CartSyncer mirrors local cart mutations to the remote cart
// service. SyncItemAdded and SyncItemRemoved fire immediately,
// SyncQuantity is debounced per key. None of the Sync methods
// block or report errors: failures surface through the Notifier
// and local state stays untouched.
type CartSyncer interface {
	SyncItemAdded(sessionID, customerID string, item domain.LineItem)
	SyncQuantity(sessionID, customerID string, k domain.Key, quantity int)
	SyncItemRemoved(sessionID, customerID string, k domain.Key)
	FetchCart(ctx context.Context, sessionID, customerID string) ([]domain.LineItem, error)
}

type WishlistSyncer interface {
	SyncWishlistAdded(sessionID, customerID, productID string)
	SyncWishlistRemoved(sessionID, customerID, productID string)
}

// A RemoteItemBinder accepts the server-assigned item id once the
// remote service acknowledges a creation.
type RemoteItemBinder interface {
	BindRemoteItem(sessionID string, k domain.Key, remoteItemID string)
}

type CartPersistence interface {
	SaveCart(sessionID string, items []domain.LineItem) error
	LoadCart(sessionID string) ([]domain.LineItem, error)
	DeleteCart(sessionID string) error
}

type WishlistPersistence interface {
	SaveWishlist(sessionID string, items []domain.WishlistItem) error
	LoadWishlist(sessionID string) ([]domain.WishlistItem, error)
	DeleteWishlist(sessionID string) error
}

type CartEventsProducer interface {
	ProduceCartEvent(ctx context.Context, evt domain.CartEvent) error
}

// A Notifier delivers transient user-facing notices, e.g. a failed
// background sync.
type Notifier interface {
	Notify(sessionID, message string)
}

type ActivityCounter interface {
	ActivityCount(customerID string) (int64, error)
}

type CartActivityProcessor interface {
	runnerContextWg
	closer
}
