package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"homeroom/internal/gateway"
)

const dispatchTimeout = 30 * time.Second

// dispatcher delivers fire-and-forget remote mutations. Submitted calls are
// queued unbounded and sent one at a time in submission order; failures are
// logged and never reach the caller whose local write already succeeded.
type dispatcher struct {
	gw gateway.Caller

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []remoteCall
	closed bool
	done   chan struct{}
}

type remoteCall struct {
	action string
	data   any
}

func newDispatcher(gw gateway.Caller) *dispatcher {
	d := &dispatcher{
		gw:   gw,
		done: make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.run()
	return d
}

// Submit queues a remote mutation. It never blocks and never reports the
// outcome; the mutation is best-effort by contract.
func (d *dispatcher) Submit(action string, data any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		slog.Warn("dispatch after close dropped", "action", action)
		return
	}
	d.queue = append(d.queue, remoteCall{action: action, data: data})
	d.cond.Signal()
}

// Close stops accepting work, drains the queue, and waits for the worker.
func (d *dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	d.cond.Signal()
	d.mu.Unlock()
	<-d.done
}

func (d *dispatcher) run() {
	defer close(d.done)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		call := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		if _, err := d.gw.Call(ctx, call.action, call.data); err != nil {
			slog.Warn("remote dispatch failed", "action", call.action, "err", err)
		}
		cancel()
	}
}
