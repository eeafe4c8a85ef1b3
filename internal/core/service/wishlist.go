package service

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ToggleWishlist adds the product when absent and removes it when
// present, reporting whether it is present afterwards. The remote
// call is immediate and fire-and-forget.
func (svc *Service) ToggleWishlist(
	ctx context.Context, sessionID string, p domain.Product,
) (bool, error) {
	const op = "Service.ToggleWishlist"

	if err := ctx.Err(); err != nil {
		return false, opErr(op, err)
	}

	s := svc.session(sessionID)
	s.mu.Lock()

	item := domain.WishlistItem{
		ProductID:   p.ProductID,
		DisplayName: p.DisplayName,
		ImageRef:    p.ImageRef,
		Rating:      p.Rating,
	}
	if !s.wishlist.Has(p.ProductID) {
		q, err := domain.ComputeDiscount(p.Price, p.Discount, svc.rounding)
		if err != nil {
			s.mu.Unlock()
			return false, opErr(op, err)
		}
		item.UnitPrice = q.DiscountedPrice
	}

	present := s.wishlist.Toggle(item)
	svc.persistWishlist(sessionID, s)
	customerID := s.customerID
	s.mu.Unlock()

	if customerID != "" {
		if present {
			svc.wishSyncer.SyncWishlistAdded(sessionID, customerID, p.ProductID)
		} else {
			svc.wishSyncer.SyncWishlistRemoved(sessionID, customerID, p.ProductID)
		}
	}

	kind := domain.EventWishlistAdded
	if !present {
		kind = domain.EventWishlistRemoved
	}
	svc.emit(domain.CartEvent{
		SessionID:  sessionID,
		CustomerID: customerID,
		Kind:       kind,
		ProductID:  p.ProductID,
		UnitPrice:  item.UnitPrice,
	})

	return present, nil
}

func (svc *Service) WishlistItems(
	ctx context.Context, sessionID string,
) ([]domain.WishlistItem, error) {
	const op = "Service.WishlistItems"

	if err := ctx.Err(); err != nil {
		return nil, opErr(op, err)
	}

	s := svc.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Items(), nil
}
