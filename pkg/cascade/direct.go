package cascade

import "reflect"

// directResult is the outcome of offering one event to one route.
type directResult int

const (
	directKept directResult = iota
	directForwarded
	directBroken
)

// directRoute offers one event to a route and returns it back when the
// route did not consume it.
type directRoute[T any] func(ev T, blackholed bool) (T, directResult)

// Direct routes events received one at a time from a channel. Each event
// walks the routes in attachment order until one matches, so unlike Batch
// the original interleaving across routes is preserved.
//
// The input channel closing is the end-of-input signal; Go delivers
// buffered values before reporting closure, so nothing in flight is lost.
type Direct[T any] struct {
	input    <-chan T
	routes   []route[directRoute[T]]
	finalize func(unmatched *T) bool
	onRetire func()
	retired  bool
}

// FromChannel creates a per-event cascade fed by ch.
func FromChannel[T any](ch <-chan T) *Direct[T] {
	return &Direct[T]{input: ch}
}

// Push appends a route forwarding events matched by match to dst. Fate
// handling on refusal follows the persist flag, as in Batch.Push.
func (c *Direct[T]) Push(dst Emitter[T], persist bool, match func(T) bool) *Direct[T] {
	c.routes = append(c.routes, route[directRoute[T]]{
		apply: func(ev T, blackholed bool) (T, directResult) {
			if !match(ev) {
				return ev, directKept
			}
			if blackholed || dst.Emit(ev) {
				return ev, directForwarded
			}
			return ev, directBroken
		},
		persist: persist,
	})
	return c
}

// PushMapDirect appends a transforming route to a per-event cascade; it is
// the Direct counterpart of PushMap.
func PushMapDirect[T, R any](c *Direct[T], dst Emitter[R], persist bool, transform func(T) (R, bool)) *Direct[T] {
	c.routes = append(c.routes, route[directRoute[T]]{
		apply: func(ev T, blackholed bool) (T, directResult) {
			mapped, ok := transform(ev)
			if !ok {
				return ev, directKept
			}
			if blackholed || dst.Emit(mapped) {
				return ev, directForwarded
			}
			return ev, directBroken
		},
		persist: persist,
	})
	return c
}

// Tap appends a route that copies every event reaching it to dst and
// matches nothing. Refusals by dst are ignored.
func (c *Direct[T]) Tap(dst Emitter[T]) *Direct[T] {
	return c.Push(dst, false, func(ev T) bool {
		dst.Emit(ev)
		return false
	})
}

// TapToken behaves like Tap but pushes an empty token per event instead of
// the event itself.
func (c *Direct[T]) TapToken(dst Emitter[struct{}]) *Direct[T] {
	return PushMapDirect(c, dst, false, func(T) (struct{}, bool) {
		dst.Emit(struct{}{})
		return struct{}{}, false
	})
}

// SetFinalize registers fn to run once per event after routing: with nil
// when the event was forwarded or dropped, with the event when no route
// matched. Returning false removes the finalizer.
func (c *Direct[T]) SetFinalize(fn func(unmatched *T) bool) *Direct[T] {
	c.finalize = fn
	return c
}

// OnRetire registers fn to run when the node retires.
func (c *Direct[T]) OnRetire(fn func()) *Direct[T] {
	c.onRetire = fn
	return c
}

// InputCase returns the receive case for the input channel.
func (c *Direct[T]) InputCase() reflect.SelectCase {
	return reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(c.input)}
}

// TryProcess routes a single received event, or reports the node done when
// the input channel is closed and drained.
func (c *Direct[T]) TryProcess(recv reflect.Value, ok bool) (Dispositions, bool) {
	if !ok {
		return nil, true
	}
	event, _ := recv.Interface().(T)
	return c.process(event), false
}

func (c *Direct[T]) process(event T) Dispositions {
	var d Dispositions
	ev := event
	unmatched := true
	for i := range c.routes {
		r := &c.routes[i]
		next, res := r.apply(ev, r.blackholed)
		if res == directKept {
			ev = next
			continue
		}
		unmatched = false
		if res == directBroken {
			d = Dispositions{i: r.persist}
		}
		break
	}
	if c.finalize != nil {
		var arg *T
		if unmatched {
			arg = &ev
		}
		if !c.finalize(arg) {
			if d == nil {
				d = make(Dispositions)
			}
			d[len(c.routes)] = false
		}
	}
	return d
}

// Cleanup applies dispositions and reports whether a route or finalizer
// remains.
func (c *Direct[T]) Cleanup(d Dispositions) bool {
	var dropFin bool
	c.routes, dropFin = applyDispositions(c.routes, d)
	if dropFin {
		c.finalize = nil
	}
	return len(c.routes) > 0 || c.finalize != nil
}

// HasRoutes reports whether at least one route is attached.
func (c *Direct[T]) HasRoutes() bool {
	return len(c.routes) > 0
}

// Retire runs the retire hook. The input channel belongs to the producer
// and is left alone.
func (c *Direct[T]) Retire() {
	if c.retired {
		return
	}
	c.retired = true
	if c.onRetire != nil {
		c.onRetire()
	}
}
