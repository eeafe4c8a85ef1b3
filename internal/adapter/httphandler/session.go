package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/adapter/notify"
	"github.com/niksmo/storefront/internal/core/port"
)

type WishlistService interface {
	port.WishlistToggler
	port.WishlistViewer
}

type WishlistHandler struct {
	wishlist WishlistService
}

func RegisterWishlist(mux *http.ServeMux, wishlist WishlistService) {
	h := WishlistHandler{wishlist}
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /v1/wishlist/toggle", h.Toggle)
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.GetWishlist"
	log := slog.With("op", op)

	sessionID, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	items, err := h.wishlist.WishlistItems(r.Context(), sessionID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	view := WishlistView{Items: make([]WishlistItem, 0, len(items))}
	for _, v := range items {
		view.Items = append(view.Items, WishlistItem{
			ProductID:   v.ProductID,
			DisplayName: v.DisplayName,
			ImageRef:    v.ImageRef,
			Rating:      v.Rating,
			UnitPrice:   v.UnitPrice,
		})
	}
	writeJSON(w, log, http.StatusOK, view)
}

func (h WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.Toggle"
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

	present, err := h.wishlist.ToggleWishlist(r.Context(), sessionID, dp)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, ToggleResult{Present: present})
}

type SessionHandler struct {
	binder port.CustomerBinder
}

func RegisterSession(mux *http.ServeMux, binder port.CustomerBinder) {
	h := SessionHandler{binder}
	mux.HandleFunc("POST /v1/session/customer", h.PostCustomer)
}

func (h SessionHandler) PostCustomer(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostCustomer"
	log := slog.With("op", op)

	sessionID, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req BindCustomer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.binder.BindCustomer(r.Context(), sessionID, req.CustomerID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type NoticesHandler struct {
	feed *notify.Feed
}

func RegisterNotices(mux *http.ServeMux, feed *notify.Feed) {
	h := NoticesHandler{feed}
	mux.HandleFunc("GET /v1/notifications", h.GetNotices)
}

func (h NoticesHandler) GetNotices(w http.ResponseWriter, r *http.Request) {
	const op = "NoticesHandler.GetNotices"
	log := slog.With("op", op)

	sessionID, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	drained := h.feed.Drain(sessionID)
	view := NoticesView{Notices: make([]Notice, 0, len(drained))}
	for _, n := range drained {
		view.Notices = append(view.Notices, Notice{
			Message:    n.Message,
			OccurredAt: n.OccurredAt.Unix(),
		})
	}
	writeJSON(w, log, http.StatusOK, view)
}

type ActivityHandler struct {
	counter port.ActivityCounter
}

func RegisterActivity(mux *http.ServeMux, counter port.ActivityCounter) {
	h := ActivityHandler{counter}
	mux.HandleFunc("GET /v1/activity", h.GetActivity)
}

func (h ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	const op = "ActivityHandler.GetActivity"
	log := slog.With("op", op)

	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		http.Error(w, "customer_id is required", http.StatusBadRequest)
		return
	}

	count, err := h.counter.ActivityCount(customerID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, ActivityView{
		CustomerID: customerID,
		Count:      count,
	})
}
