package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
)

type (
	wishlistSnapshot struct {
		Items []wishlistItem `json:"items"`
	}

	wishlistItem struct {
		ProductID   string  `json:"product_id"`
		DisplayName string  `json:"display_name"`
		ImageRef    string  `json:"image_ref"`
		Rating      float64 `json:"rating"`
		UnitPrice   float64 `json:"unit_price"`
	}
)

var _ port.WishlistPersistence = WishlistRepository{}

type WishlistRepository struct {
	kv KV
}

func NewWishlistRepository(kv KV) WishlistRepository {
	return WishlistRepository{kv}
}

func (r WishlistRepository) SaveWishlist(
	sessionID string, items []domain.WishlistItem,
) error {
	const op = "WishlistRepository.SaveWishlist"

	snap := wishlistSnapshot{Items: make([]wishlistItem, 0, len(items))}
	for _, v := range items {
		snap.Items = append(snap.Items, wishlistItem{
			ProductID:   v.ProductID,
			DisplayName: v.DisplayName,
			ImageRef:    v.ImageRef,
			Rating:      v.Rating,
			UnitPrice:   v.UnitPrice,
		})
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.kv.db.Put(wishlistKey(sessionID), b, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r WishlistRepository) LoadWishlist(
	sessionID string,
) ([]domain.WishlistItem, error) {
	const op = "WishlistRepository.LoadWishlist"
	log := slog.With("op", op, "session", sessionID)

	b, err := r.kv.db.Get(wishlistKey(sessionID), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var snap wishlistSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		log.Warn("corrupt wishlist blob, falling back to empty", "err", err)
		return nil, nil
	}

	items := make([]domain.WishlistItem, 0, len(snap.Items))
	for _, v := range snap.Items {
		items = append(items, domain.WishlistItem{
			ProductID:   v.ProductID,
			DisplayName: v.DisplayName,
			ImageRef:    v.ImageRef,
			Rating:      v.Rating,
			UnitPrice:   v.UnitPrice,
		})
	}
	return items, nil
}

func (r WishlistRepository) DeleteWishlist(sessionID string) error {
	const op = "WishlistRepository.DeleteWishlist"

	if err := r.kv.db.Delete(wishlistKey(sessionID), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func wishlistKey(sessionID string) []byte {
	return []byte(wishlistKeyPrefix + sessionID)
}
