// Package syncer mirrors local cart and wishlist mutations to the
// remote platform services, off the caller's critical path.
//
// Add and remove calls change which entries exist remotely and fire
// immediately. Quantity updates are debounced per key: rapid repeated
// clicks collapse into one call carrying the final quantity. Failures
// surface as a transient user notice and are otherwise swallowed;
// the local store is never rolled back.
package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/debounce"
)

const (
	DefaultWindow      = 400 * time.Millisecond
	defaultCallTimeout = 10 * time.Second

	syncFailedNotice = "saving your cart failed, changes are kept locally"
)

var _ port.CartSyncer = (*CartSyncer)(nil)

type cartAPI interface {
	FetchCart(ctx context.Context, customerID string) ([]domain.LineItem, error)
	AddItem(ctx context.Context, customerID string, item domain.LineItem) (string, error)
	UpdateQuantity(ctx context.Context, customerID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, customerID, productID string) error
}

type CartSyncer struct {
	api         cartAPI
	deb         *debounce.Debouncer
	notifier    port.Notifier
	callTimeout time.Duration

	mu     sync.Mutex
	binder port.RemoteItemBinder
	ids    map[string]string
}

func NewCartSyncer(
	api cartAPI, notifier port.Notifier, window time.Duration,
) *CartSyncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &CartSyncer{
		api:         api,
		deb:         debounce.New(window),
		notifier:    notifier,
		callTimeout: defaultCallTimeout,
		ids:         make(map[string]string),
	}
}

// SetItemBinder attaches the receiver of server-assigned item ids.
// Called once during wiring, after the core service exists.
func (s *CartSyncer) SetItemBinder(b port.RemoteItemBinder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.binder = b
}

func (s *CartSyncer) Close() {
	s.deb.Close()
}

// SyncItemAdded creates the line remotely, immediately. The ack
// carries the item id that later quantity updates must target.
func (s *CartSyncer) SyncItemAdded(
	sessionID, customerID string, item domain.LineItem,
) {
	go s.pushAdd(sessionID, customerID, item)
}

// SyncQuantity schedules a debounced quantity update. A newer update
// for the same key replaces the pending one, so only the final
// quantity within the window is transmitted.
func (s *CartSyncer) SyncQuantity(
	sessionID, customerID string, k domain.Key, quantity int,
) {
	key := syncKey(sessionID, k)
	s.deb.Schedule(key, func() {
		s.pushQuantity(sessionID, customerID, k, quantity, true)
	})
}

// SyncItemRemoved drops any pending quantity update for the key and
// deletes the line remotely, immediately.
func (s *CartSyncer) SyncItemRemoved(
	sessionID, customerID string, k domain.Key,
) {
	key := syncKey(sessionID, k)
	s.deb.Cancel(key)

	s.mu.Lock()
	delete(s.ids, key)
	s.mu.Unlock()

	go s.pushRemove(sessionID, customerID, k)
}

// FetchCart pulls the remote snapshot and refreshes the id table for
// the session, so subsequent updates can target lines created on
// other devices.
func (s *CartSyncer) FetchCart(
	ctx context.Context, sessionID, customerID string,
) ([]domain.LineItem, error) {
	items, err := s.api.FetchCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, li := range items {
		if li.RemoteItemID != "" {
			s.ids[syncKey(sessionID, li.Key())] = li.RemoteItemID
		}
	}
	s.mu.Unlock()

	return items, nil
}

func (s *CartSyncer) pushAdd(
	sessionID, customerID string, item domain.LineItem,
) {
	const op = "CartSyncer.pushAdd"
	log := slog.With("op", op, "product", item.ProductID)

	ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
	defer cancel()

	remoteID, err := s.api.AddItem(ctx, customerID, item)
	if err != nil {
		log.Warn("remote add failed", "err", err)
		s.notifier.Notify(sessionID, syncFailedNotice)
		return
	}

	s.mu.Lock()
	s.ids[syncKey(sessionID, item.Key())] = remoteID
	binder := s.binder
	s.mu.Unlock()

	if binder != nil {
		binder.BindRemoteItem(sessionID, item.Key(), remoteID)
	}
}

// pushQuantity runs when the debounce window closes. When the add
// ack has not arrived yet there is no id to target: the update is
// rescheduled for one more window, then dropped. The next full
// fetch reconciles.
func (s *CartSyncer) pushQuantity(
	sessionID, customerID string, k domain.Key, quantity int,
	mayReschedule bool,
) {
	const op = "CartSyncer.pushQuantity"
	log := slog.With("op", op, "product", k.ProductID)

	key := syncKey(sessionID, k)

	s.mu.Lock()
	remoteID, ok := s.ids[key]
	s.mu.Unlock()

	if !ok {
		if mayReschedule {
			s.deb.Schedule(key, func() {
				s.pushQuantity(sessionID, customerID, k, quantity, false)
			})
			return
		}
		log.Warn("no remote item id, dropping quantity update")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
	defer cancel()

	err := s.api.UpdateQuantity(ctx, customerID, remoteID, quantity)
	if err != nil {
		log.Warn("remote quantity update failed", "err", err)
		s.notifier.Notify(sessionID, syncFailedNotice)
	}
}

func (s *CartSyncer) pushRemove(sessionID, customerID string, k domain.Key) {
	const op = "CartSyncer.pushRemove"
	log := slog.With("op", op, "product", k.ProductID)

	ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout)
	defer cancel()

	err := s.api.RemoveItem(ctx, customerID, k.ProductID)
	if err != nil {
		log.Warn("remote remove failed", "err", err)
		s.notifier.Notify(sessionID, syncFailedNotice)
	}
}

func syncKey(sessionID string, k domain.Key) string {
	return sessionID + "|" + k.ProductID + "|" + k.Variant
}
