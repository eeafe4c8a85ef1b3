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

const (
	cartKeyPrefix     = "cart/v1/"
	wishlistKeyPrefix = "wishlist/v1/"
)

type (
	cartSnapshot struct {
		Items []lineItem `json:"items"`
	}

	lineItem struct {
		ProductID    string  `json:"product_id"`
		Variant      string  `json:"variant,omitempty"`
		DisplayName  string  `json:"display_name"`
		ImageRef     string  `json:"image_ref"`
		Rating       float64 `json:"rating"`
		UnitPrice    float64 `json:"unit_price"`
		Quantity     int     `json:"quantity"`
		TotalPrice   float64 `json:"total_price"`
		RemoteItemID string  `json:"remote_item_id,omitempty"`
	}
)

var _ port.CartPersistence = CartRepository{}

type CartRepository struct {
	kv KV
}

func NewCartRepository(kv KV) CartRepository {
	return CartRepository{kv}
}

func (r CartRepository) SaveCart(
	sessionID string, items []domain.LineItem,
) error {
	const op = "CartRepository.SaveCart"

	snap := cartSnapshot{Items: make([]lineItem, 0, len(items))}
	for _, v := range items {
		snap.Items = append(snap.Items, lineItem{
			ProductID:    v.ProductID,
			Variant:      v.Variant,
			DisplayName:  v.DisplayName,
			ImageRef:     v.ImageRef,
			Rating:       v.Rating,
			UnitPrice:    v.UnitPrice,
			Quantity:     v.Quantity,
			TotalPrice:   v.TotalPrice,
			RemoteItemID: v.RemoteItemID,
		})
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.kv.db.Put(cartKey(sessionID), b, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LoadCart restores the persisted snapshot. Restoration is
// best-effort: a missing or corrupt blob yields an empty cart and no
// error.
func (r CartRepository) LoadCart(sessionID string) ([]domain.LineItem, error) {
	const op = "CartRepository.LoadCart"
	log := slog.With("op", op, "session", sessionID)

	b, err := r.kv.db.Get(cartKey(sessionID), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var snap cartSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		log.Warn("corrupt cart blob, falling back to empty", "err", err)
		return nil, nil
	}

	items := make([]domain.LineItem, 0, len(snap.Items))
	for _, v := range snap.Items {
		items = append(items, domain.LineItem{
			ProductID:    v.ProductID,
			Variant:      v.Variant,
			DisplayName:  v.DisplayName,
			ImageRef:     v.ImageRef,
			Rating:       v.Rating,
			UnitPrice:    v.UnitPrice,
			Quantity:     v.Quantity,
			TotalPrice:   v.TotalPrice,
			RemoteItemID: v.RemoteItemID,
		})
	}
	return items, nil
}

func (r CartRepository) DeleteCart(sessionID string) error {
	const op = "CartRepository.DeleteCart"

	if err := r.kv.db.Delete(cartKey(sessionID), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func cartKey(sessionID string) []byte {
	return []byte(cartKeyPrefix + sessionID)
}
