package broadcast

import (
	"log/slog"
	"sync"
)

// Stream is a value-carrying subscription: every event emitted while it is
// open is copied into its buffered channel C. When the buffer is full the
// event is dropped for this stream rather than blocking the emitter, so a
// stalled consumer only loses its own events.
type Stream[T any] struct {
	C <-chan T

	ch     chan T
	mu     sync.RWMutex
	closed bool
}

// NewStream opens a stream subscription. The channel capacity comes from
// WithStreamBuffer. On a closed queue it returns an already-closed stream.
func (q *Queue[T]) NewStream() *Stream[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	ch := make(chan T, q.streamBuf)
	s := &Stream[T]{C: ch, ch: ch}
	if q.closed {
		s.Close()
		return s
	}
	q.streams = append(q.streams, s)
	return s
}

// send copies events into the stream's buffer, dropping what does not fit.
// It reports false when the stream is closed so the queue can prune it.
func (s *Stream[T]) send(logger *slog.Logger, events ...T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	for _, ev := range events {
		select {
		case s.ch <- ev:
		default:
			logger.Debug("stream buffer full, event dropped")
		}
	}
	return true
}

// buffered returns how many delivered events the consumer has not read yet,
// or zero once the stream is closed and its backlog abandoned.
func (s *Stream[T]) buffered() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0
	}
	return len(s.ch)
}

// Close cancels the subscription. Events already buffered in C remain
// readable; after that, receives on C report a closed channel. Closing
// twice is harmless.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
