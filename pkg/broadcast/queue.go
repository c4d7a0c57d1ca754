package broadcast

import (
	"log/slog"
	"sync"

	"github.com/dmitrymomot/eventkit/pkg/eventlog"
)

// Queue is a synchronized broadcast queue that fans emitted events out to
// three kinds of consumers: cursor listeners that batch-read at their own
// pace, notifiers that coalesce emissions into wake-up tokens, and streams
// that carry every event over a buffered channel.
//
// Events are buffered only for cursor listeners, and only until the slowest
// of them catches up. An emission is delivered when at least one cursor
// listener or one open stream exists; notifiers alone do not count, they
// only wake consumers that read through some other handle.
type Queue[T any] struct {
	mu        sync.RWMutex
	log       eventlog.Log[T]
	notifiers []*Notifier
	streams   []*Stream[T]
	closed    bool

	logger    *slog.Logger
	streamBuf int
}

// New creates an empty queue with no consumers.
func New[T any](opts ...Option) *Queue[T] {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Queue[T]{
		logger:    cfg.logger,
		streamBuf: cfg.streamBuffer,
	}
}

// Emit delivers event to every consumer and reports whether anybody
// received it. Undelivered events are dropped, not buffered. Emit always
// returns false after Close.
func (q *Queue[T]) Emit(event T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	delivered := q.fanOut(event)
	if q.log.Emit(event) {
		delivered = true
	}
	if delivered {
		q.notifyAll()
	}
	return delivered
}

// EmitBatch delivers all events in order as one emission: streams receive
// every event, cursor listeners observe the batch contiguously, and each
// notifier gets at most one wake-up token for the whole batch.
func (q *Queue[T]) EmitBatch(events ...T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	delivered := q.fanOut(events...)
	if q.log.EmitBatch(events...) {
		delivered = true
	}
	if delivered {
		q.notifyAll()
	}
	return delivered
}

// IsEmpty reports whether no events are waiting anywhere in the queue,
// counting both the cursor listeners' backlog and events sitting unread in
// stream buffers.
func (q *Queue[T]) IsEmpty() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if !q.log.IsEmpty() {
		return false
	}
	for _, s := range q.streams {
		if s.buffered() > 0 {
			return false
		}
	}
	return true
}

// Len returns the number of events buffered for cursor listeners.
func (q *Queue[T]) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.log.Len()
}

// Close marks the queue exhausted: subsequent emissions are refused and
// every notifier and stream channel is closed, which consumers observe as
// end of input once they have read what was already buffered. Cursor
// listeners keep draining their backlog. Closing twice is harmless.
func (q *Queue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	for _, n := range q.notifiers {
		n.Close()
	}
	for _, s := range q.streams {
		s.Close()
	}
	q.notifiers = nil
	q.streams = nil
	return nil
}

// fanOut copies events to every open stream, pruning closed ones, and
// reports whether at least one stream was still open to receive them.
func (q *Queue[T]) fanOut(events ...T) bool {
	if len(q.streams) == 0 {
		return false
	}
	delivered := false
	live := q.streams[:0]
	for _, s := range q.streams {
		if s.send(q.logger, events...) {
			delivered = true
			live = append(live, s)
		}
	}
	for i := len(live); i < len(q.streams); i++ {
		q.streams[i] = nil
	}
	q.streams = live
	return delivered
}

// notifyAll queues a wake-up token on every notifier, pruning closed ones.
func (q *Queue[T]) notifyAll() {
	if len(q.notifiers) == 0 {
		return
	}
	live := q.notifiers[:0]
	for _, n := range q.notifiers {
		if n.notify() {
			live = append(live, n)
		}
	}
	for i := len(live); i < len(q.notifiers); i++ {
		q.notifiers[i] = nil
	}
	q.notifiers = live
}
