package engine

import (
	"sync"
	"time"
)

// Status is the engine's synchronization state
type Status string

const (
	StatusIdle          Status = "IDLE"
	StatusSyncing       Status = "SYNCING"
	StatusError         Status = "ERROR"
	StatusNotConfigured Status = "NOT_CONFIGURED"
)

// Listener receives the status and last successful sync time on subscribe
// and again on every transition.
type Listener func(status Status, lastSync *time.Time)

// State is a point-in-time view of the broadcaster
type State struct {
	Status   Status
	LastSync *time.Time
}

// broadcaster holds the current sync status and delivers transitions to
// subscribers in strict order. Listeners run synchronously under the
// broadcaster lock, so a listener never observes transitions out of order;
// it also must not call back into the broadcaster or the engine.
type broadcaster struct {
	mu        sync.Mutex
	status    Status
	lastSync  *time.Time
	listeners map[int]Listener
	nextID    int
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		status:    StatusIdle,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn and immediately invokes it with the current state,
// so there is no missed-notification window. The returned func unsubscribes.
func (b *broadcaster) Subscribe(fn Listener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	fn(b.status, b.lastSync)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// State returns the current status and last sync time.
func (b *broadcaster) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{Status: b.status, LastSync: b.lastSync}
}

// set transitions to status and notifies every listener before returning.
func (b *broadcaster) set(status Status) {
	b.mu.Lock()
	b.status = status
	b.notifyLocked()
	b.mu.Unlock()
}

// complete transitions to IDLE with a new last-sync time.
func (b *broadcaster) complete(lastSync time.Time) {
	b.mu.Lock()
	b.status = StatusIdle
	b.lastSync = &lastSync
	b.notifyLocked()
	b.mu.Unlock()
}

// beginSync transitions to SYNCING unless a sync is already in flight.
// The SYNCING state itself is the refresh mutual exclusion.
func (b *broadcaster) beginSync() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == StatusSyncing {
		return false
	}
	b.status = StatusSyncing
	b.notifyLocked()
	return true
}

func (b *broadcaster) notifyLocked() {
	for _, fn := range b.listeners {
		fn(b.status, b.lastSync)
	}
}

// setLastSync restores a persisted last-sync time without a transition
// notification; used once at construction.
func (b *broadcaster) setLastSync(t *time.Time) {
	b.mu.Lock()
	b.lastSync = t
	b.mu.Unlock()
}
