// Package debounce coalesces rapid repeated triggers for a key into
// a single callback after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// A Debouncer keeps one pending timer per key. Scheduling a key that
// already has a pending timer cancels and replaces it, so only the
// last scheduled callback within the window ever fires.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timers map[string]*time.Timer
	closed bool
}

func New(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arranges fn to run after the quiet window elapses.
// A pending callback for the same key is dropped. fn runs on a
// timer goroutine.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	d.timers[key] = time.AfterFunc(d.window, func() {
		d.forget(key)
		fn()
	})
}

// Cancel drops the pending callback for the key, reporting whether
// one was pending.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.timers[key]
	if !ok {
		return false
	}
	delete(d.timers, key)
	return t.Stop()
}

// Close cancels every pending callback. The debouncer accepts no
// further scheduling afterwards.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	for k, t := range d.timers {
		t.Stop()
		delete(d.timers, k)
	}
}

func (d *Debouncer) forget(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.timers, key)
}
