// Package duplex provides bidirectional event queues for 1:1 communication
// between two peers, with a distinct payload type per direction. Each end
// emits into the other end's inbox and drains its own, so a pair carries a
// full request/reply conversation without multicasting.
//
// Basic usage:
//
//	primary := duplex.New[string, int]()
//	secondary := primary.Secondary()
//
//	primary.Emit("ping")
//	secondary.Bounce(func(s string) (int, bool) {
//		return len(s), true
//	})
//
//	n, ok := primary.Newest() // 4, true
//
// Two variants differ in buffering: New keeps every undelivered event in
// order, while NewSingle holds at most one event per direction, each emit
// replacing the last. The single-slot form suits state-snapshot exchanges
// where only the latest value matters.
//
// Unlike package broadcast, duplex types are NOT synchronized: both ends
// must be used from the same goroutine, or the caller must provide its own
// locking. This mirrors the pair's intended role as a cheap in-goroutine
// conversation, not a cross-goroutine channel.
package duplex
