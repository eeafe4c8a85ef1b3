package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
)

// AddToCart adds one unit of the product. A new line is priced with
// the discount in effect right now; an existing line keeps its
// original unit price and only the quantity grows. The local change
// is committed and persisted before any remote call is scheduled.
func (svc *Service) AddToCart(
	ctx context.Context, sessionID string, p domain.Product,
) (domain.LineItem, error) {
	const op = "Service.AddToCart"

	if err := ctx.Err(); err != nil {
		return domain.LineItem{}, opErr(op, err)
	}

	s := svc.session(sessionID)
	s.mu.Lock()

	k := domain.Key{ProductID: p.ProductID, Variant: p.Variant}
	li, ok := s.cart.Get(k)
	if !ok {
		q, err := domain.ComputeDiscount(p.Price, p.Discount, svc.rounding)
		if err != nil {
			s.mu.Unlock()
			return domain.LineItem{}, opErr(op, err)
		}
		li = domain.LineItem{
			ProductID:   p.ProductID,
			Variant:     p.Variant,
			DisplayName: p.DisplayName,
			ImageRef:    p.ImageRef,
			Rating:      p.Rating,
			UnitPrice:   q.DiscountedPrice,
			Quantity:    1,
		}
	}

	updated, existed := s.cart.Increase(li)
	svc.persistCart(sessionID, s)
	customerID := s.customerID
	s.mu.Unlock()

	if customerID != "" {
		if existed {
			svc.cartSyncer.SyncQuantity(
				sessionID, customerID, k, updated.Quantity,
			)
		} else {
			svc.cartSyncer.SyncItemAdded(sessionID, customerID, updated)
		}
	}

	kind := domain.EventItemAdded
	if existed {
		kind = domain.EventQuantityChanged
	}
	svc.emit(lineEvent(sessionID, customerID, kind, updated))

	return updated, nil
}

// DecrementCartItem lowers the quantity by one; a line reaching zero
// is removed entirely. The returned line reflects the state after
// the mutation.
func (svc *Service) DecrementCartItem(
	ctx context.Context, sessionID string, k domain.Key,
) (domain.LineItem, error) {
	const op = "Service.DecrementCartItem"

	if err := ctx.Err(); err != nil {
		return domain.LineItem{}, opErr(op, err)
	}

	s := svc.session(sessionID)
	s.mu.Lock()

	li, removed, err := s.cart.Decrease(k)
	if err != nil {
		s.mu.Unlock()
		return domain.LineItem{}, opErr(op, err)
	}
	svc.persistCart(sessionID, s)
	customerID := s.customerID
	s.mu.Unlock()

	if customerID != "" {
		if removed {
			svc.cartSyncer.SyncItemRemoved(sessionID, customerID, k)
		} else {
			svc.cartSyncer.SyncQuantity(sessionID, customerID, k, li.Quantity)
		}
	}

	kind := domain.EventQuantityChanged
	if removed {
		kind = domain.EventItemRemoved
	}
	svc.emit(lineEvent(sessionID, customerID, kind, li))

	return li, nil
}

// RemoveCartItem deletes the line regardless of quantity.
func (svc *Service) RemoveCartItem(
	ctx context.Context, sessionID string, k domain.Key,
) error {
	const op = "Service.RemoveCartItem"

	if err := ctx.Err(); err != nil {
		return opErr(op, err)
	}

	s := svc.session(sessionID)
	s.mu.Lock()

	li, err := s.cart.Remove(k)
	if err != nil {
		s.mu.Unlock()
		return opErr(op, err)
	}
	svc.persistCart(sessionID, s)
	customerID := s.customerID
	s.mu.Unlock()

	if customerID != "" {
		svc.cartSyncer.SyncItemRemoved(sessionID, customerID, k)
	}

	li.Quantity = 0
	li.TotalPrice = 0
	svc.emit(lineEvent(sessionID, customerID, domain.EventItemRemoved, li))

	return nil
}

// RefreshCart replaces the local cart with the remote snapshot.
// This is the only path that overwrites local state wholesale and
// the only cart operation that blocks on the network.
func (svc *Service) RefreshCart(ctx context.Context, sessionID string) error {
	const op = "Service.RefreshCart"

	if err := ctx.Err(); err != nil {
		return opErr(op, err)
	}

	s := svc.session(sessionID)
	s.mu.Lock()
	customerID := s.customerID
	s.mu.Unlock()

	if customerID == "" {
		return opErr(op, domain.ErrGuestSession)
	}

	items, err := svc.cartSyncer.FetchCart(ctx, sessionID, customerID)
	if err != nil {
		return opErr(op, err)
	}

	s.mu.Lock()
	s.cart.ReplaceAll(items)
	svc.persistCart(sessionID, s)
	s.mu.Unlock()

	svc.emit(domain.CartEvent{
		SessionID:  sessionID,
		CustomerID: customerID,
		Kind:       domain.EventCartRefreshed,
	})
	return nil
}

// ClearCart empties the local cart and drops the persisted mirror.
func (svc *Service) ClearCart(ctx context.Context, sessionID string) error {
	const op = "Service.ClearCart"

	if err := ctx.Err(); err != nil {
		return opErr(op, err)
	}

	s := svc.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.ReplaceAll(nil)
	if err := svc.cartRepo.DeleteCart(sessionID); err != nil {
		return opErr(op, err)
	}
	return nil
}

func (svc *Service) CartItems(
	ctx context.Context, sessionID string,
) ([]domain.LineItem, error) {
	const op = "Service.CartItems"

	if err := ctx.Err(); err != nil {
		return nil, opErr(op, err)
	}

	s := svc.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items(), nil
}

func lineEvent(
	sessionID, customerID string, kind domain.CartEventKind, li domain.LineItem,
) domain.CartEvent {
	return domain.CartEvent{
		SessionID:  sessionID,
		CustomerID: customerID,
		Kind:       kind,
		ProductID:  li.ProductID,
		Variant:    li.Variant,
		Quantity:   li.Quantity,
		UnitPrice:  li.UnitPrice,
		TotalPrice: li.TotalPrice,
	}
}

func opErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
