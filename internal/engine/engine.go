// Package engine is the offline-first core of homeroom. It owns the local
// snapshot of every remote collection, serves all reads from it, applies
// writes optimistically before dispatching them to the remote backend, and
// reconciles the snapshot with the backend through Refresh.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"homeroom/internal/gateway"
	"homeroom/internal/models"
	"homeroom/internal/store"
)

// ErrNotFound means an operation referenced a record absent from the local
// snapshot. Unlike remote dispatch failures this is reported to the caller:
// there is no record to operate on.
var ErrNotFound = errors.New("not found")

// Engine ties the snapshot, store, gateway, dispatcher, and status
// broadcaster together. All exported methods are safe for concurrent use.
type Engine struct {
	store  *store.Store
	gw     gateway.Caller
	tasks  *dispatcher
	status *broadcaster

	mu   sync.Mutex
	snap *models.Snapshot

	// overridable in tests
	now   func() time.Time
	newID func() string
}

// New restores the last snapshot from st and returns a ready engine.
// The caller should call Init once before use and Close on shutdown.
func New(st *store.Store, gw gateway.Caller) *Engine {
	snap := st.LoadSnapshot()
	e := &Engine{
		store:  st,
		gw:     gw,
		tasks:  newDispatcher(gw),
		status: newBroadcaster(),
		snap:   snap,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	e.status.setLastSync(snap.LastSync)
	return e
}

// Init publishes the initial status: NOT_CONFIGURED when the gateway is
// missing required settings, IDLE otherwise. No network traffic.
func (e *Engine) Init() {
	if e.gw.Configured() {
		e.status.set(StatusIdle)
	} else {
		e.status.set(StatusNotConfigured)
	}
}

// Close drains the best-effort dispatch queue and stops the worker.
func (e *Engine) Close() {
	e.tasks.Close()
}

// Subscribe registers a status listener; it fires immediately with the
// current state and again on every transition.
func (e *Engine) Subscribe(fn Listener) func() {
	return e.status.Subscribe(fn)
}

// SyncState returns the current status and last successful sync time.
func (e *Engine) SyncState() State {
	return e.status.State()
}

// Refresh performs a full snapshot refresh: one bulk fetch, falling back to
// sequential per-collection fetches when the backend has no bulk endpoint.
// A Refresh while another is in flight is a no-op. Failures set ERROR and
// leave the existing snapshot untouched; stale data beats no data.
func (e *Engine) Refresh(ctx context.Context) {
	if !e.gw.Configured() {
		e.status.set(StatusNotConfigured)
		return
	}
	if !e.status.beginSync() {
		return
	}

	snap, err := e.fetchAll(ctx)
	if err != nil {
		slog.Error("sync failed", "err", err)
		e.status.set(StatusError)
		return
	}

	now := e.now()
	snap.LastSync = &now

	// A write landing while this refresh was in flight is overwritten by
	// the replacement snapshot; accepted single-writer trade-off.
	e.mu.Lock()
	if err := e.store.SaveSnapshot(snap); err != nil {
		e.mu.Unlock()
		slog.Error("persist snapshot", "err", err)
		e.status.set(StatusError)
		return
	}
	e.snap = snap
	e.mu.Unlock()

	e.status.complete(now)
}

func (e *Engine) fetchAll(ctx context.Context) (*models.Snapshot, error) {
	raw, err := e.gw.Call(ctx, "data.syncAll", nil)
	switch {
	case err == nil:
		snap := &models.Snapshot{}
		if err := json.Unmarshal(raw, snap); err != nil {
			return nil, fmt.Errorf("parse bulk sync: %w", err)
		}
		normalizeSnapshot(snap)
		return snap, nil
	case gateway.IsUnsupportedAction(err):
		slog.Warn("bulk sync unsupported, falling back to per-collection fetch")
		return e.fetchSequential(ctx)
	default:
		return nil, err
	}
}

// fetchSequential issues one list request per collection, in a fixed order
// and one at a time to bound load on the relay.
func (e *Engine) fetchSequential(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	steps := []struct {
		action string
		dest   any
	}{
		{"users.list", &snap.Users},
		{"classes.list", &snap.Classes},
		{"students.list", &snap.Students},
		{"parents.list", &snap.Parents},
		{"attendance.list", &snap.Attendance},
		{"behavior.list", &snap.Behaviors},
		{"announcements.list", &snap.Announcements},
		{"documents.list", &snap.Documents},
		{"tasks.list", &snap.Tasks},
		{"taskReplies.list", &snap.TaskReplies},
		{"messageThreads.list", &snap.Threads},
		{"messages.list", &snap.Messages},
		{"questions.list", &snap.Questions},
	}
	for _, step := range steps {
		raw, err := e.gw.Call(ctx, step.action, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.action, err)
		}
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, step.dest); err != nil {
			return nil, fmt.Errorf("parse %s: %w", step.action, err)
		}
	}
	normalizeSnapshot(snap)
	return snap, nil
}

// normalizeSnapshot scrubs remote data quirks: missing collections become
// empty, attendance/behavior dates lose any time component, and students
// get the 0/1 xp/level defaults.
func normalizeSnapshot(snap *models.Snapshot) {
	snap.Normalize()
	for i := range snap.Attendance {
		snap.Attendance[i].Date = dateOnly(snap.Attendance[i].Date)
	}
	for i := range snap.Behaviors {
		snap.Behaviors[i].Date = dateOnly(snap.Behaviors[i].Date)
	}
	for i := range snap.Students {
		if snap.Students[i].Level == 0 {
			snap.Students[i].Level = 1
		}
	}
}

func dateOnly(d string) string {
	if i := strings.Index(d, "T"); i >= 0 {
		return d[:i]
	}
	return d
}

// update runs mutate on the snapshot and durably saves the result, as one
// indivisible step with respect to other engine calls. Callers dispatch
// their remote mutation after update returns, off the lock.
func (e *Engine) update(mutate func(snap *models.Snapshot)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	mutate(e.snap)
	return e.store.SaveSnapshot(e.snap)
}

// read runs fn against the snapshot under the engine lock. fn must copy
// anything it wants to keep.
func (e *Engine) read(fn func(snap *models.Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.snap)
}

func (e *Engine) nowStamp() string {
	return e.now().UTC().Format(time.RFC3339)
}
