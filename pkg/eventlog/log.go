package eventlog

// Log is an in-memory broadcast event log. Emitted events are appended to a
// shared buffer and every registered listener consumes them independently
// through its own cursor. An event is released as soon as the slowest cursor
// has moved past it, so memory usage tracks the least caught-up listener
// rather than total emission volume.
//
// Log is not safe for concurrent use; wrap it in a SyncLog to share it
// between goroutines.
type Log[T any] struct {
	events []T
	reg    registry
}

// New returns an empty log with no listeners.
func New[T any]() *Log[T] {
	return &Log[T]{}
}

// Emit appends event to the log and reports whether it was retained.
// With no listeners registered there is nobody to consume the event, so it
// is dropped and Emit returns false.
func (l *Log[T]) Emit(event T) bool {
	if l.reg.len() == 0 {
		return false
	}
	l.events = append(l.events, event)
	return true
}

// EmitBatch appends all events in order as one batch. Like Emit, the whole
// batch is dropped when no listeners are registered.
func (l *Log[T]) EmitBatch(events ...T) bool {
	if l.reg.len() == 0 {
		return false
	}
	l.events = append(l.events, events...)
	return true
}

// Register adds a listener cursor positioned at the end of the log, so it
// observes only events emitted after this call. The returned key stays valid
// until passed to Unregister.
func (l *Log[T]) Register() ListenerKey {
	return l.reg.insert(len(l.events))
}

// Unregister removes a listener. Events it had not consumed yet may be
// released if no other listener still needs them. Unknown and stale keys
// are ignored, so unregistering twice is harmless.
func (l *Log[T]) Unregister(key ListenerKey) {
	cursor, ok := l.reg.remove(key)
	if ok && cursor == 0 {
		l.collect()
	}
}

// Pull applies fn to every event the listener has not consumed yet, oldest
// first, and advances its cursor past them. The slice passed to fn aliases
// the log's buffer and is only valid for the duration of the call; fn must
// not call back into the log.
func (l *Log[T]) Pull(key ListenerKey, fn func([]T)) error {
	s, ok := l.reg.get(key)
	if !ok {
		return ErrUnknownListener
	}
	start := s.cursor
	s.cursor = len(l.events)
	if start == 0 {
		// Collect after fn returns, and also when fn panics, so a failing
		// consumer cannot wedge the log with an already-advanced cursor.
		defer l.collect()
	}
	fn(l.events[start:])
	return nil
}

// Peek returns the oldest unconsumed event for the listener without
// advancing its cursor. ok is false when the listener is fully caught up
// or the key is unknown.
func (l *Log[T]) Peek(key ListenerKey) (T, bool) {
	s, ok := l.reg.get(key)
	if !ok || s.cursor >= len(l.events) {
		var zero T
		return zero, false
	}
	return l.events[s.cursor], true
}

// Advance moves the listener's cursor past the event a prior Peek returned.
// It does nothing when the listener is already caught up or the key is
// unknown.
func (l *Log[T]) Advance(key ListenerKey) {
	s, ok := l.reg.get(key)
	if !ok || s.cursor >= len(l.events) {
		return
	}
	s.cursor++
	if s.cursor == 1 {
		l.collect()
	}
}

// IsEmpty reports whether the log currently buffers no events.
func (l *Log[T]) IsEmpty() bool {
	return len(l.events) == 0
}

// Len returns the number of buffered events, i.e. those not yet consumed by
// the slowest listener.
func (l *Log[T]) Len() int {
	return len(l.events)
}

// Listeners returns the number of registered listener cursors.
func (l *Log[T]) Listeners() int {
	return l.reg.len()
}

// collect trims the fully-consumed prefix. With no listeners left the whole
// buffer is fully consumed by definition, so it is dropped outright.
func (l *Log[T]) collect() {
	min, ok := l.reg.minCursor()
	if !ok {
		min = len(l.events)
	}
	if min == 0 {
		return
	}
	l.trim(min)
	l.reg.rebase(min)
}

// trim drops the first n events in place, zeroing vacated slots so the
// garbage collector can reclaim what they referenced.
func (l *Log[T]) trim(n int) {
	copy(l.events, l.events[n:])
	tail := len(l.events) - n
	var zero T
	for i := tail; i < len(l.events); i++ {
		l.events[i] = zero
	}
	l.events = l.events[:tail]
}
