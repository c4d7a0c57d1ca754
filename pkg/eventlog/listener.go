package eventlog

// Listener is a consuming handle bound to one registered cursor. It exists
// so callers can hold a single value instead of carrying the log and key
// around separately.
type Listener[T any] struct {
	log *Log[T]
	key ListenerKey
}

// Listen registers a new listener and returns its handle.
func (l *Log[T]) Listen() *Listener[T] {
	return &Listener[T]{log: l, key: l.Register()}
}

// Key returns the underlying listener key.
func (ln *Listener[T]) Key() ListenerKey {
	return ln.key
}

// With applies fn to the listener's unconsumed events and marks them
// consumed. After Close it is a no-op. The slice passed to fn is only valid
// for the duration of the call.
func (ln *Listener[T]) With(fn func([]T)) {
	_ = ln.log.Pull(ln.key, fn)
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
	return ln.log.Peek(ln.key)
}

// Advance consumes the event a prior Peek returned.
func (ln *Listener[T]) Advance() {
	ln.log.Advance(ln.key)
}

// Close unregisters the listener, releasing any events only it was holding
// back. Closing twice is harmless.
func (ln *Listener[T]) Close() {
	ln.log.Unregister(ln.key)
}
