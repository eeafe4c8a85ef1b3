// Package service implements the cart/wishlist orchestrator: every
// operation updates the local store and the persisted mirror
// synchronously, then hands the mutation to the remote sync layer.
// No operation blocks on the network.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/store"
)

const emitTimeout = 5 * time.Second

var _ port.CartAdder = (*Service)(nil)
var _ port.CartDecrementer = (*Service)(nil)
var _ port.CartRemover = (*Service)(nil)
var _ port.CartRefresher = (*Service)(nil)
var _ port.CartClearer = (*Service)(nil)
var _ port.CartViewer = (*Service)(nil)
var _ port.CustomerBinder = (*Service)(nil)
var _ port.WishlistToggler = (*Service)(nil)
var _ port.WishlistViewer = (*Service)(nil)
var _ port.RemoteItemBinder = (*Service)(nil)

type Service struct {
	rounding   domain.Rounding
	cartSyncer port.CartSyncer
	wishSyncer port.WishlistSyncer
	cartRepo   port.CartPersistence
	wishRepo   port.WishlistPersistence
	events     port.CartEventsProducer
	notifier   port.Notifier

	mu       sync.Mutex
	sessions map[string]*session
}

// A session is the per-client unit of state: one cart, one wishlist
// and an optional remote customer identity. Guests have an empty
// customerID and never reach the network.
type session struct {
	mu         sync.Mutex
	cart       *store.Cart
	wishlist   *store.Wishlist
	customerID string
}

func New(
	rounding domain.Rounding,
	cartSyncer port.CartSyncer,
	wishSyncer port.WishlistSyncer,
	cartRepo port.CartPersistence,
	wishRepo port.WishlistPersistence,
	events port.CartEventsProducer,
	notifier port.Notifier,
) *Service {
	return &Service{
		rounding:   rounding,
		cartSyncer: cartSyncer,
		wishSyncer: wishSyncer,
		cartRepo:   cartRepo,
		wishRepo:   wishRepo,
		events:     events,
		notifier:   notifier,
		sessions:   make(map[string]*session),
	}
}

// session returns the state for sessionID, restoring it from the
// persisted mirror on first touch.
func (svc *Service) session(sessionID string) *session {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if s, ok := svc.sessions[sessionID]; ok {
		return s
	}

	s := &session{cart: store.NewCart(), wishlist: store.NewWishlist()}
	svc.restore(sessionID, s)
	svc.sessions[sessionID] = s
	return s
}

func (svc *Service) restore(sessionID string, s *session) {
	const op = "Service.restore"
	log := slog.With("op", op, "session", sessionID)

	items, err := svc.cartRepo.LoadCart(sessionID)
	if err != nil {
		log.Warn("failed to load cart, starting empty", "err", err)
	}
	s.cart.ReplaceAll(items)

	wishItems, err := svc.wishRepo.LoadWishlist(sessionID)
	if err != nil {
		log.Warn("failed to load wishlist, starting empty", "err", err)
	}
	s.wishlist.ReplaceAll(wishItems)
}

func (svc *Service) persistCart(sessionID string, s *session) {
	const op = "Service.persistCart"

	if err := svc.cartRepo.SaveCart(sessionID, s.cart.Items()); err != nil {
		slog.With("op", op, "session", sessionID).
			Error("failed to persist cart", "err", err)
	}
}

func (svc *Service) persistWishlist(sessionID string, s *session) {
	const op = "Service.persistWishlist"

	if err := svc.wishRepo.SaveWishlist(sessionID, s.wishlist.Items()); err != nil {
		slog.With("op", op, "session", sessionID).
			Error("failed to persist wishlist", "err", err)
	}
}

// emit publishes the activity event in the background, best-effort.
func (svc *Service) emit(evt domain.CartEvent) {
	const op = "Service.emit"

	evt.EventID = uuid.NewString()
	evt.OccurredAt = time.Now()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()

		if err := svc.events.ProduceCartEvent(ctx, evt); err != nil {
			slog.With("op", op).Warn("failed to produce event",
				"kind", string(evt.Kind), "err", err)
		}
	}()
}

// BindRemoteItem records the server-assigned identifier on the local
// line, if the line still exists.
func (svc *Service) BindRemoteItem(
	sessionID string, k domain.Key, remoteItemID string,
) {
	s := svc.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.SetRemoteItemID(k, remoteItemID) {
		svc.persistCart(sessionID, s)
	}
}

// BindCustomer attaches a remote identity to the session on sign-in
// and pulls the authoritative remote cart. A failed initial fetch
// keeps the local state and notifies the user.
func (svc *Service) BindCustomer(
	ctx context.Context, sessionID, customerID string,
) error {
	const op = "Service.BindCustomer"
	log := slog.With("op", op, "session", sessionID)

	if err := ctx.Err(); err != nil {
		return opErr(op, err)
	}
	if customerID == "" {
		return opErr(op, domain.ErrInvalidArgument)
	}

	s := svc.session(sessionID)
	s.mu.Lock()
	s.customerID = customerID
	s.mu.Unlock()

	if err := svc.RefreshCart(ctx, sessionID); err != nil {
		log.Warn("initial cart fetch failed", "err", err)
		svc.notifier.Notify(sessionID, "cart could not be refreshed")
	}
	return nil
}
