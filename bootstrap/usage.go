package bootstrap

import (
	"context"
	"sync"

	"github.com/artpar/thermogate/domain/usage"
	"github.com/artpar/thermogate/ports"
)

// DefaultQueueSize bounds the number of increments waiting for the worker.
const DefaultQueueSize = 4096

// UsageRecorder applies counter increments on a background goroutine so that
// request handlers never wait on them. Increments are never dropped: when the
// queue is full, or after Close, Record applies the increment inline.
type UsageRecorder struct {
	counters  ports.UsageCounters
	queueSize int

	mu      sync.Mutex
	queue   []pendingIncrement
	pending int
	closed  bool

	notify chan struct{}
	done   chan struct{}
}

// pendingIncrement is either an increment or, when barrier is set, a marker
// closed once every item queued before it has been applied.
type pendingIncrement struct {
	op      usage.Operation
	barrier chan struct{}
}

// NewUsageRecorder starts a recorder applying increments to counters.
func NewUsageRecorder(counters ports.UsageCounters, queueSize int) *UsageRecorder {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	r := &UsageRecorder{
		counters:  counters,
		queueSize: queueSize,
		notify:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go r.run()
	return r
}

// Record queues an increment of op and returns immediately.
func (r *UsageRecorder) Record(op usage.Operation) {
	r.mu.Lock()
	if r.closed || r.pending >= r.queueSize {
		r.mu.Unlock()
		r.counters.Increment(op)
		return
	}
	r.queue = append(r.queue, pendingIncrement{op: op})
	r.pending++
	r.mu.Unlock()
	r.wake()
}

// Flush blocks until every increment recorded before the call is applied,
// or ctx is done.
func (r *UsageRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		select {
		case <-r.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	barrier := make(chan struct{})
	r.queue = append(r.queue, pendingIncrement{barrier: barrier})
	r.mu.Unlock()
	r.wake()

	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting queued work, applies everything pending and waits
// for the worker to exit. It is safe to call more than once.
func (r *UsageRecorder) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wake()
	<-r.done
	return nil
}

func (r *UsageRecorder) wake() {
	select {
	case r.notify <- struct{}{}:
	default:
	}
}

func (r *UsageRecorder) run() {
	defer close(r.done)

	for {
		r.mu.Lock()
		batch := r.queue
		r.queue = nil
		r.pending = 0
		closed := r.closed
		r.mu.Unlock()

		for _, p := range batch {
			if p.barrier != nil {
				close(p.barrier)
				continue
			}
			r.counters.Increment(p.op)
		}

		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-r.notify
	}
}

// Ensure interface compliance.
var _ ports.UsageRecorder = (*UsageRecorder)(nil)
