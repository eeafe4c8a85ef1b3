// Package httphandler is the rendering-layer surface of the
// storefront edge. Every route is session-scoped through the
// X-Session-Id header; customer identity never appears in cart
// routes, it is bound once through the session endpoint.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const sessionHeader = "X-Session-Id"

type CartService interface {
	port.CartAdder
	port.CartDecrementer
	port.CartRemover
	port.CartRefresher
	port.CartClearer
	port.CartViewer
}

type CartHandler struct {
	cart CartService
}

func RegisterCart(mux *http.ServeMux, cart CartService) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("POST /v1/cart/items/decrease", h.DecreaseItem)
	mux.HandleFunc("DELETE /v1/cart/items", h.DeleteItem)
	mux.HandleFunc("POST /v1/cart/refresh", h.Refresh)
	mux.HandleFunc("DELETE /v1/cart", h.Clear)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	sessionID, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	items, err := h.cart.CartItems(r.Context(), sessionID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	view := CartView{Items: make([]LineItem, 0, len(items))}
	for _, v := range items {
		view.Items = append(view.Items, toLineItem(v))
	}
	writeJSON(w, log, http.StatusOK, view)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	sessionID, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	dp, err := toDomainProduct(p)
	if err != nil {
		writeError(w, log, err)
		return
	}

	item, err := h.cart.AddToCart(r.Context(), sessionID, dp)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toLineItem(item))
}

func (h CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DecreaseItem"
	log := slog.With("op", op)

	sessionID, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	k, ok := keyFrom(w, log, r)
	if !ok {
		return
	}

	item, err := h.cart.DecrementCartItem(r.Context(), sessionID, k)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toLineItem(item))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	sessionID, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	k, ok := keyFrom(w, log, r)
	if !ok {
		return
	}

	if err := h.cart.RemoveCartItem(r.Context(), sessionID, k); err != nil {
		writeError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.Refresh"
	log := slog.With("op", op)

	sessionID, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	if err := h.cart.RefreshCart(r.Context(), sessionID); err != nil {
		writeError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.Clear"
	log := slog.With("op", op)

	sessionID, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	if err := h.cart.ClearCart(r.Context(), sessionID); err != nil {
		writeError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func sessionFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		http.Error(w, "missing "+sessionHeader, http.StatusBadRequest)
		return "", false
	}
	return sessionID, true
}

func keyFrom(
	w http.ResponseWriter, log *slog.Logger, r *http.Request,
) (domain.Key, bool) {
	var ik ItemKey
	if err := json.NewDecoder(r.Body).Decode(&ik); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return domain.Key{}, false
	}
	if ik.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return domain.Key{}, false
	}
	return domain.Key{ProductID: ik.ProductID, Variant: ik.Variant}, true
}

func toDomainProduct(p Product) (domain.Product, error) {
	kind, err := domain.ParseDiscountKind(p.Discount.Kind)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		ProductID:   p.ProductID,
		Variant:     p.Variant,
		DisplayName: p.DisplayName,
		ImageRef:    p.ImageRef,
		Rating:      p.Rating,
		Price:       p.Price,
		Discount:    domain.Discount{Kind: kind, Amount: p.Discount.Amount},
	}, nil
}

func toLineItem(v domain.LineItem) LineItem {
	return LineItem{
		ProductID:   v.ProductID,
		Variant:     v.Variant,
		DisplayName: v.DisplayName,
		ImageRef:    v.ImageRef,
		Rating:      v.Rating,
		UnitPrice:   v.UnitPrice,
		Quantity:    v.Quantity,
		TotalPrice:  v.TotalPrice,
	}
}

func writeJSON(
	w http.ResponseWriter, log *slog.Logger, code int, v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrGuestSession):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("unexpected failure", "err", err)
		return
	}
	log.Warn("request rejected", "err", err)
}
