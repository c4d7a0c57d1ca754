package broadcast

import "sync"

// Notifier is a wake-up subscription. Its channel C holds at most one
// pending token: the first delivered emission after the consumer last read
// queues a token, and further emissions coalesce into it. A consumer that
// drains its listener after every token therefore never misses events and
// never wakes more than once per burst.
type Notifier struct {
	C <-chan struct{}

	ch     chan struct{}
	mu     sync.RWMutex
	closed bool
}

func newNotifier() *Notifier {
	ch := make(chan struct{}, 1)
	return &Notifier{C: ch, ch: ch}
}

// notify queues a wake-up token unless one is already pending. It reports
// false when the notifier is closed so the queue can prune it.
func (n *Notifier) notify() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return false
	}
	select {
	case n.ch <- struct{}{}:
	default:
		// A token is already pending.
	}
	return true
}

// Close cancels the subscription and closes C. A pending token stays
// readable; after that, receives on C report a closed channel. Closing
// twice is harmless.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	close(n.ch)
}
