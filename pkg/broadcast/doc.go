// Package broadcast provides a synchronized broadcast queue with pull-based
// consumers. It layers wake-up notification and channel streaming on top of
// the cursor semantics of package eventlog, so goroutines can block until
// events arrive instead of polling.
//
// The package uses Go generics to keep event payloads strongly typed
// throughout the fan-out path.
//
// Basic usage:
//
//	q := broadcast.New[string]()
//	defer q.Close()
//
//	listener, notifier := q.ListenSubscribe()
//	defer listener.Close()
//
//	go func() {
//		for range notifier.C {
//			for _, ev := range listener.Drain() {
//				fmt.Println(ev)
//			}
//		}
//	}()
//
//	q.Emit("hello")
//
// Three consumer kinds cover the usual patterns:
//   - Listener: batch-reads at its own pace through a cursor; never loses
//     events, and holds undelivered ones in the queue until it catches up.
//   - Notifier: receives at most one pending wake-up token however many
//     emissions occur, pairing with a Listener for an efficient wait loop.
//   - Stream: receives every event on a buffered channel, dropping events
//     for itself when its consumer falls behind.
//
// An emission counts as delivered when at least one listener or open stream
// received it; Emit reports that, and events nobody wants are dropped
// immediately. Close marks the end of input: consumers see their notifier
// and stream channels close once drained, while listeners can still pull
// whatever was buffered.
package broadcast
