// Package notify keeps transient user-facing notices in memory.
// Notices pile up per session until the rendering layer drains them,
// capped so an abandoned session cannot grow without bound.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/port"
)

const maxPerSession = 32

var _ port.Notifier = (*Feed)(nil)

type Notice struct {
	Message    string
	OccurredAt time.Time
}

type Feed struct {
	mu      sync.Mutex
	notices map[string][]Notice
}

func NewFeed() *Feed {
	return &Feed{notices: make(map[string][]Notice)}
}

func (f *Feed) Notify(sessionID, message string) {
	const op = "Feed.Notify"
	log := slog.With("op", op, "session", sessionID)

	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.notices[sessionID]
	if len(n) >= maxPerSession {
		n = n[1:]
	}
	f.notices[sessionID] = append(n, Notice{
		Message:    message,
		OccurredAt: time.Now(),
	})

	log.Info("notice queued", "message", message)
}

// Drain returns the pending notices for the session and clears them.
func (f *Feed) Drain(sessionID string) []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.notices[sessionID]
	delete(f.notices, sessionID)
	return n
}
