// Package events implements the process-wide disk-update notifier: a
// small pub/sub bus shared by every component that needs to react to
// disk inventory changes.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Bus fans out disk-update notifications to registered subscribers.
// Subscribers are identified by opaque ids so removal is deterministic
// even when the same callback is registered twice.
type Bus struct {
	mu    sync.Mutex
	subs  map[string]func()
	fired bool
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]func())}
}

// Subscribe registers fn and returns its subscription id. When
// replayLatest is true and a notification has already been published,
// fn fires once immediately so late subscribers see current state.
func (b *Bus) Subscribe(fn func(), replayLatest bool) string {
	b.mu.Lock()
	id := uuid.New().String()
	b.subs[id] = fn
	replay := replayLatest && b.fired
	b.mu.Unlock()

	if replay {
		fn()
	}
	return id
}

// Unsubscribe removes the subscription with the given id. Unknown or
// empty ids are a no-op.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Publish notifies every current subscriber once.
func (b *Bus) Publish() {
	b.mu.Lock()
	b.fired = true
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	// Callbacks run outside the lock so a subscriber may unsubscribe
	// from within its own callback.
	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
