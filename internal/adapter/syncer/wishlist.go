package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.WishlistSyncer = (*WishlistSyncer)(nil)

type wishlistAPI interface {
	AddWishlistItem(ctx context.Context, customerID, productID string) error
	RemoveWishlistItem(ctx context.Context, customerID, productID string) error
}

// A WishlistSyncer mirrors wishlist toggles, immediately and
// fire-and-forget.
type WishlistSyncer struct {
	api         wishlistAPI
	notifier    port.Notifier
	callTimeout time.Duration
}

func NewWishlistSyncer(api wishlistAPI, notifier port.Notifier) *WishlistSyncer {
	return &WishlistSyncer{
		api:         api,
		notifier:    notifier,
		callTimeout: defaultCallTimeout,
	}
}

func (s *WishlistSyncer) SyncWishlistAdded(
	sessionID, customerID, productID string,
) {
	go s.push(sessionID, productID, func(ctx context.Context) error {
		return s.api.AddWishlistItem(ctx, customerID, productID)
	})
}

func (s *WishlistSyncer) SyncWishlistRemoved(
	sessionID, customerID, productID string,
) {
	go s.push(sessionID, productID, func(ctx context.Context) error {
		return s.api.RemoveWishlistItem(ctx, customerID, productID)
	})
}

func (s *WishlistSyncer) push(
	sessionID, productID string, fn func(context.Context) error,
) {
	const op = "WishlistSyncer.push"

	ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		slog.With("op", op, "product", productID).
			Warn("remote wishlist call failed", "err", err)
		s.notifier.Notify(sessionID, syncFailedNotice)
	}
}
