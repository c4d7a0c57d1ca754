package duplex

import "github.com/dmitrymomot/eventkit/pkg/eventlog"

// side is one direction of a pair: it emits Out values to the peer's inbox
// and drains In values from its own.
type side[Out, In any] struct {
	out   *eventlog.Log[Out]
	in    *eventlog.Log[In]
	inKey eventlog.ListenerKey
}

// Primary is one end of a bidirectional 1:1 queue pair. It sends P values
// to the secondary peer and receives S values from it.
type Primary[P, S any] struct {
	side[P, S]
	peer *Secondary[P, S]
}

// Secondary is the other end of the pair, sending S and receiving P.
type Secondary[P, S any] struct {
	side[S, P]
}

// New creates a connected pair and returns its primary end. The secondary
// end is reached through Secondary.
func New[P, S any]() *Primary[P, S] {
	toSecondary := new(eventlog.Log[P])
	toPrimary := new(eventlog.Log[S])
	p := &Primary[P, S]{side: side[P, S]{
		out:   toSecondary,
		in:    toPrimary,
		inKey: toPrimary.Register(),
	}}
	p.peer = &Secondary[P, S]{side: side[S, P]{
		out:   toPrimary,
		in:    toSecondary,
		inKey: toSecondary.Register(),
	}}
	return p
}

// Secondary returns the other end of the pair. Every call returns the same
// end, backed by the same two inboxes.
func (p *Primary[P, S]) Secondary() *Secondary[P, S] {
	return p.peer
}

// Emit places an event in the peer's inbox. Since the peer is always there
// to receive it, delivery never fails.
func (s *side[Out, In]) Emit(event Out) bool {
	return s.out.Emit(event)
}

// With applies fn to all pending incoming events and consumes them. The
// slice passed to fn is only valid for the duration of the call.
func (s *side[Out, In]) With(fn func([]In)) {
	_ = s.in.Pull(s.inKey, fn)
}

// Drain returns a copy of all pending incoming events and consumes them.
func (s *side[Out, In]) Drain() []In {
	var out []In
	s.With(func(events []In) {
		out = append(out, events...)
	})
	return out
}

// Newest consumes all pending incoming events and returns only the most
// recent one.
func (s *side[Out, In]) Newest() (In, bool) {
	var (
		last In
		ok   bool
	)
	s.With(func(events []In) {
		if len(events) > 0 {
			last = events[len(events)-1]
			ok = true
		}
	})
	return last, ok
}

// Bounce consumes all pending incoming events and sends each reply fn
// produces back to the peer, preserving order.
func (s *side[Out, In]) Bounce(fn func(In) (Out, bool)) {
	s.With(func(events []In) {
		for _, ev := range events {
			if reply, ok := fn(ev); ok {
				s.out.Emit(reply)
			}
		}
	})
}

// IsEmpty reports whether the peer has consumed everything this side sent.
func (s *side[Out, In]) IsEmpty() bool {
	return s.out.IsEmpty()
}
