// Package cascade routes events from broadcast queues and channels onward
// to further emitters, under rules attached per route. A cascade is a chain
// of routes tried in attachment order; the first route whose rule matches
// an event forwards it to that route's destination, and events nothing
// matches can be handed to a finalizer.
//
// Basic usage:
//
//	source := broadcast.New[int]()
//	evens := broadcast.New[int]()
//
//	inlet := make(chan cascade.Cascade)
//	go cascade.RunWorker(inlet)
//
//	c := cascade.FromQueue(source).
//		Push(evens, false, func(n int) bool { return n%2 == 0 })
//	inlet <- c
//
//	source.Emit(2)
//
// Two cascade kinds differ in their input and batching:
//   - Batch: fed by a queue's listener, it routes whole pending batches at
//     a time. Each route filters the batch in order, so output arrives
//     grouped per destination rather than interleaved.
//   - Direct: fed by a plain receive channel, it routes one event per
//     arrival and preserves interleaving across destinations.
//
// When a destination refuses an event, the route's fate flag decides what
// happens: a persistent route is blackholed and keeps matching events only
// to discard them, while a non-persistent route is removed. A cascade whose
// last route and finalizer are gone retires; so does one whose input closes
// after the backlog is drained. Retirement runs an optional OnRetire hook,
// the place to close downstream queues when exhaustion should propagate.
//
// Worker wraps the routing loop with lifecycle management: Start and Stop,
// context cancellation, panic isolation per cascade, and counters. Any
// number of cascades share one worker goroutine, so route rules must not
// block. Destinations may feed other cascades on the same worker; routing
// a queue into itself is legal but leaves the cycle's events permanently
// in flight, which is the caller's to avoid.
package cascade
