package cascade

// Emitter is the destination side of a route: anything events can be pushed
// into. Emit reports whether the event was accepted; refusal marks the
// destination as defunct for routing purposes.
//
// Both broadcast.Queue and eventlog.SyncLog satisfy Emitter, so queues can
// be chained directly.
type Emitter[T any] interface {
	Emit(event T) bool
}

// BlackHole is an Emitter that refuses everything, behaving like a
// destination that is already closed. Routing an event at a BlackHole
// triggers the route's disconnect fate on first match.
type BlackHole[T any] struct{}

// Emit refuses the event.
func (BlackHole[T]) Emit(T) bool { return false }

// SendTo adapts a plain channel into an Emitter. The send is non-blocking:
// an event is refused when the channel is full or nil, so a stalled
// receiver severs the route rather than stalling the worker.
func SendTo[T any](ch chan<- T) Emitter[T] {
	return chanEmitter[T](ch)
}

type chanEmitter[T any] chan<- T

func (c chanEmitter[T]) Emit(event T) bool {
	if c == nil {
		return false
	}
	select {
	case c <- event:
		return true
	default:
		return false
	}
}
