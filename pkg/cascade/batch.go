package cascade

import (
	"reflect"

	"github.com/dmitrymomot/eventkit/pkg/broadcast"
)

// batchRoute consumes the events it matches out of a running batch and
// returns the remainder. broken reports that the destination refused an
// event; the route's matched events are dropped either way.
type batchRoute[T any] func(events []T, blackholed bool) (kept []T, broken bool)

// Batch routes events drained from a broadcast queue. Each wake-up token
// pulls the whole backlog and pushes it through the routes in attachment
// order: every route takes the events it matches out of the running batch,
// so the first matching route wins and later routes only see the rest.
// Delivery order is therefore grouped per route, preserving emission order
// within each route.
//
// The queue closing is the end-of-input signal: the remaining backlog is
// routed as a final batch and the node retires.
type Batch[T any] struct {
	listener *broadcast.Listener[T]
	notifier *broadcast.Notifier
	routes   []route[batchRoute[T]]
	finalize func(unmatched *T) bool
	onRetire func()
	retired  bool
}

// FromQueue creates a batch cascade fed by q. The listener and notifier
// are registered atomically, so no emission can predate the subscription.
func FromQueue[T any](q *broadcast.Queue[T]) *Batch[T] {
	listener, notifier := q.ListenSubscribe()
	return &Batch[T]{listener: listener, notifier: notifier}
}

// Push appends a route forwarding events matched by match to dst. The
// first matching route consumes an event; processing continues with the
// next route only for unmatched events.
//
// persist selects the route's fate once dst refuses an event: true leaves
// the route in place as a blackhole that keeps matching but discards,
// false removes it, as if it matched nothing from then on.
func (c *Batch[T]) Push(dst Emitter[T], persist bool, match func(T) bool) *Batch[T] {
	c.routes = append(c.routes, route[batchRoute[T]]{
		apply: func(events []T, blackholed bool) ([]T, bool) {
			kept := events[:0]
			var forward []T
			for _, ev := range events {
				if match(ev) {
					forward = append(forward, ev)
				} else {
					kept = append(kept, ev)
				}
			}
			if blackholed {
				return kept, false
			}
			for _, ev := range forward {
				if !dst.Emit(ev) {
					return kept, true
				}
			}
			return kept, false
		},
		persist: persist,
	})
	return c
}

// PushMap appends a route that forwards transformed events to a
// destination of a different type. transform returns the mapped value and
// true to forward, or false to keep the event in the chain for the next
// route. Fate handling matches Push.
//
// It is a free function because the destination type R is independent of
// the cascade's event type.
func PushMap[T, R any](c *Batch[T], dst Emitter[R], persist bool, transform func(T) (R, bool)) *Batch[T] {
	c.routes = append(c.routes, route[batchRoute[T]]{
		apply: func(events []T, blackholed bool) ([]T, bool) {
			kept := events[:0]
			var forward []R
			for _, ev := range events {
				if mapped, ok := transform(ev); ok {
					forward = append(forward, mapped)
				} else {
					kept = append(kept, ev)
				}
			}
			if blackholed {
				return kept, false
			}
			for _, mapped := range forward {
				if !dst.Emit(mapped) {
					return kept, true
				}
			}
			return kept, false
		},
		persist: persist,
	})
	return c
}

// Tap appends a route that copies every event reaching it to dst and
// matches nothing, so events continue down the chain. Refusals by dst are
// ignored.
func (c *Batch[T]) Tap(dst Emitter[T]) *Batch[T] {
	return c.Push(dst, false, func(ev T) bool {
		dst.Emit(ev)
		return false
	})
}

// TapToken behaves like Tap but pushes an empty token per event instead of
// the event itself, waking consumers that do not read the actual values.
// The event that triggered a token is not necessarily observable yet when
// the token is consumed.
func (c *Batch[T]) TapToken(dst Emitter[struct{}]) *Batch[T] {
	return PushMap(c, dst, false, func(T) (struct{}, bool) {
		dst.Emit(struct{}{})
		return struct{}{}, false
	})
}

// SetFinalize registers fn to run once per routed event, after the batch
// went through all routes: with nil for events that were forwarded or
// dropped, and with the event for those no route matched. Unmatched events
// are reported first. Returning false removes the finalizer.
func (c *Batch[T]) SetFinalize(fn func(unmatched *T) bool) *Batch[T] {
	c.finalize = fn
	return c
}

// OnRetire registers fn to run when the node retires, typically to close a
// downstream queue or channel this cascade fed, propagating exhaustion.
func (c *Batch[T]) OnRetire(fn func()) *Batch[T] {
	c.onRetire = fn
	return c
}

// InputCase returns the receive case for the wake-up token channel.
func (c *Batch[T]) InputCase() reflect.SelectCase {
	return reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(c.notifier.C)}
}

// TryProcess drains the backlog and routes it as one batch. A closed token
// channel means the queue was closed, so the backlog just routed was the
// final one and the node is done.
func (c *Batch[T]) TryProcess(_ reflect.Value, ok bool) (Dispositions, bool) {
	d := c.process(c.listener.Drain())
	if !ok {
		return nil, true
	}
	return d, false
}

func (c *Batch[T]) process(events []T) Dispositions {
	if len(events) == 0 {
		return nil
	}
	var d Dispositions
	total := len(events)
	rest := events
	for i := range c.routes {
		if len(rest) == 0 {
			break
		}
		r := &c.routes[i]
		kept, broken := r.apply(rest, r.blackholed)
		if broken {
			if d == nil {
				d = make(Dispositions)
			}
			d[i] = r.persist
		}
		rest = kept
	}
	return c.runFinalize(rest, total, d)
}

// runFinalize reports unmatched events first, then one call per matched
// event. The first false return marks the finalizer for removal and stops
// further calls for this batch.
func (c *Batch[T]) runFinalize(unmatched []T, total int, d Dispositions) Dispositions {
	if c.finalize == nil {
		return d
	}
	removed := false
	for i := range unmatched {
		if !c.finalize(&unmatched[i]) {
			removed = true
			break
		}
	}
	if !removed {
		for i := len(unmatched); i < total; i++ {
			if !c.finalize(nil) {
				removed = true
				break
			}
		}
	}
	if removed {
		if d == nil {
			d = make(Dispositions)
		}
		d[len(c.routes)] = false
	}
	return d
}

// Cleanup applies dispositions and reports whether a route or finalizer
// remains.
func (c *Batch[T]) Cleanup(d Dispositions) bool {
	var dropFin bool
	c.routes, dropFin = applyDispositions(c.routes, d)
	if dropFin {
		c.finalize = nil
	}
	return len(c.routes) > 0 || c.finalize != nil
}

// HasRoutes reports whether at least one route is attached.
func (c *Batch[T]) HasRoutes() bool {
	return len(c.routes) > 0
}

// Retire closes the node's listener and notifier, releasing buffered
// events held for it, and runs the retire hook.
func (c *Batch[T]) Retire() {
	if c.retired {
		return
	}
	c.retired = true
	c.listener.Close()
	c.notifier.Close()
	if c.onRetire != nil {
		c.onRetire()
	}
}
