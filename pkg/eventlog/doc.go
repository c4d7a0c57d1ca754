// Package eventlog provides an in-memory broadcast event log with
// independent per-listener cursors. Every listener observes every event
// emitted after it registered, in emission order, exactly once.
//
// The package uses Go generics to keep event payloads strongly typed
// throughout, with no interface boxing on the hot path.
//
// Basic usage:
//
//	log := eventlog.New[string]()
//
//	listener := log.Listen()
//	defer listener.Close()
//
//	// Emit reports whether anybody was around to receive.
//	log.Emit("hello")
//
//	// Consume everything emitted since the last call.
//	listener.With(func(events []string) {
//		for _, ev := range events {
//			fmt.Println(ev)
//		}
//	})
//
// Buffered events are released as soon as the slowest listener has consumed
// them, so memory usage is bounded by the least caught-up listener rather
// than by emission volume. Events emitted while no listeners are registered
// are dropped outright.
//
// Log is single-goroutine; SyncLog wraps the same behavior in a read-write
// mutex for concurrent producers and consumers.
package eventlog
