package eventlog

import "sync"

// SyncLog wraps a Log with a read-write mutex so producers and consumers on
// different goroutines can share it. Consuming operations take the write
// lock because they advance cursors; only pure reads run under the read
// lock.
type SyncLog[T any] struct {
	mu  sync.RWMutex
	log Log[T]
}

// NewSync returns an empty synchronized log with no listeners.
func NewSync[T any]() *SyncLog[T] {
	return &SyncLog[T]{}
}

// Emit appends event to the log and reports whether it was retained.
// Events emitted while no listeners are registered are dropped.
func (s *SyncLog[T]) Emit(event T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Emit(event)
}

// EmitBatch appends all events in order as one batch, or drops the whole
// batch when no listeners are registered.
func (s *SyncLog[T]) EmitBatch(events ...T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.EmitBatch(events...)
}

// Register adds a listener cursor positioned at the end of the log.
func (s *SyncLog[T]) Register() ListenerKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Register()
}

// Unregister removes a listener, releasing events only it was holding back.
func (s *SyncLog[T]) Unregister(key ListenerKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Unregister(key)
}

// Pull applies fn to the listener's unconsumed events and advances its
// cursor. fn runs under the log's write lock, so it must not call back into
// the log and should return quickly.
func (s *SyncLog[T]) Pull(key ListenerKey, fn func([]T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Pull(key, fn)
}

// Peek returns the oldest unconsumed event for the listener without
// consuming it.
func (s *SyncLog[T]) Peek(key ListenerKey) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Peek(key)
}

// Advance consumes the event a prior Peek returned.
func (s *SyncLog[T]) Advance(key ListenerKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Advance(key)
}

// IsEmpty reports whether the log currently buffers no events.
func (s *SyncLog[T]) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.IsEmpty()
}

// Len returns the number of buffered events.
func (s *SyncLog[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Len()
}

// Listeners returns the number of registered listener cursors.
func (s *SyncLog[T]) Listeners() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Listeners()
}

// SyncListener is a consuming handle bound to one cursor of a SyncLog.
type SyncListener[T any] struct {
	log *SyncLog[T]
	key ListenerKey
}

// Listen registers a new listener and returns its handle.
func (s *SyncLog[T]) Listen() *SyncListener[T] {
	return &SyncListener[T]{log: s, key: s.Register()}
}

// Key returns the underlying listener key.
func (ln *SyncListener[T]) Key() ListenerKey {
	return ln.key
}

// With applies fn to the listener's unconsumed events and marks them
// consumed. fn runs under the log's write lock.
func (ln *SyncListener[T]) With(fn func([]T)) {
	_ = ln.log.Pull(ln.key, fn)
}

// Drain returns a copy of the listener's unconsumed events and marks them
// consumed.
func (ln *SyncListener[T]) Drain() []T {
	var out []T
	ln.With(func(events []T) {
		out = append(out, events...)
	})
	return out
}

// Peek returns the oldest unconsumed event without consuming it.
func (ln *SyncListener[T]) Peek() (T, bool) {
	return ln.log.Peek(ln.key)
}

// Advance consumes the event a prior Peek returned.
func (ln *SyncListener[T]) Advance() {
	ln.log.Advance(ln.key)
}

// Close unregisters the listener. Closing twice is harmless.
func (ln *SyncListener[T]) Close() {
	ln.log.Unregister(ln.key)
}
