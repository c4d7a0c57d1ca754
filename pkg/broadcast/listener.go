package broadcast

import "github.com/dmitrymomot/eventkit/pkg/eventlog"

// Listener is a cursor-based consumer of a queue. It observes every event
// emitted after it was created, in order, exactly once, reading in batches
// whenever it chooses to. Pair it with a Notifier to block until there is
// something to read.
type Listener[T any] struct {
	q   *Queue[T]
	key eventlog.ListenerKey
}

// Listen registers a cursor listener positioned at the current end of the
// queue.
func (q *Queue[T]) Listen() *Listener[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return &Listener[T]{q: q, key: q.log.Register()}
}

// Subscribe registers a notifier that receives a wake-up token for every
// delivered emission. On a closed queue it returns an already-closed
// notifier.
func (q *Queue[T]) Subscribe() *Notifier {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.subscribeLocked()
}

// ListenSubscribe registers a cursor listener and a notifier in one atomic
// step, so no emission can slip between the two registrations: every event
// the listener will observe has a token, and vice versa.
func (q *Queue[T]) ListenSubscribe() (*Listener[T], *Notifier) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return &Listener[T]{q: q, key: q.log.Register()}, q.subscribeLocked()
}

func (q *Queue[T]) subscribeLocked() *Notifier {
	n := newNotifier()
	if q.closed {
		n.Close()
		return n
	}
	q.notifiers = append(q.notifiers, n)
	return n
}

// With applies fn to the listener's unconsumed events and marks them
// consumed. fn runs under the queue's lock, so it must not call back into
// the queue and should return quickly. The slice passed to fn is only valid
// for the duration of the call.
func (ln *Listener[T]) With(fn func([]T)) {
	ln.q.mu.Lock()
	defer ln.q.mu.Unlock()
	_ = ln.q.log.Pull(ln.key, fn)
}

// Drain returns a copy of the listener's unconsumed events and marks them
// consumed. It returns nil when the listener is caught up.
func (ln *Listener[T]) Drain() []T {
	var out []T
	ln.With(func(events []T) {
		out = append(out, events...)
	})
	return out
}

// Peek returns the oldest unconsumed event without consuming it.
func (ln *Listener[T]) Peek() (T, bool) {
	ln.q.mu.RLock()
	defer ln.q.mu.RUnlock()
	return ln.q.log.Peek(ln.key)
}

// Advance consumes the event a prior Peek returned.
func (ln *Listener[T]) Advance() {
	ln.q.mu.Lock()
	defer ln.q.mu.Unlock()
	ln.q.log.Advance(ln.key)
}

// Close unregisters the listener, releasing any events only it was holding
// back. Closing twice is harmless.
func (ln *Listener[T]) Close() {
	ln.q.mu.Lock()
	defer ln.q.mu.Unlock()
	ln.q.log.Unregister(ln.key)
}
