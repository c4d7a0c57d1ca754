package duplex

// slot is a one-event mailbox where each put replaces the previous value.
type slot[T any] struct {
	v   T
	set bool
}

func (s *slot[T]) put(v T) {
	s.v, s.set = v, true
}

func (s *slot[T]) take() (T, bool) {
	v, ok := s.v, s.set
	var zero T
	s.v, s.set = zero, false
	return v, ok
}

// singleSide is one direction of a single-slot pair.
type singleSide[Out, In any] struct {
	out *slot[Out]
	in  *slot[In]
}

// SinglePrimary is one end of a bidirectional pair that holds at most one
// event per direction: each emit replaces whatever the peer has not taken
// yet. It sends P values and receives S values.
type SinglePrimary[P, S any] struct {
	singleSide[P, S]
	peer *SingleSecondary[P, S]
}

// SingleSecondary is the other end of the single-slot pair.
type SingleSecondary[P, S any] struct {
	singleSide[S, P]
}

// NewSingle creates a connected single-slot pair and returns its primary
// end.
func NewSingle[P, S any]() *SinglePrimary[P, S] {
	toSecondary := new(slot[P])
	toPrimary := new(slot[S])
	p := &SinglePrimary[P, S]{singleSide: singleSide[P, S]{
		out: toSecondary,
		in:  toPrimary,
	}}
	p.peer = &SingleSecondary[P, S]{singleSide: singleSide[S, P]{
		out: toPrimary,
		in:  toSecondary,
	}}
	return p
}

// Secondary returns the other end of the pair. Every call returns the same
// end, backed by the same two slots.
func (p *SinglePrimary[P, S]) Secondary() *SingleSecondary[P, S] {
	return p.peer
}

// Emit places the event in the peer's slot, replacing any event the peer
// has not taken yet. Delivery never fails.
func (s *singleSide[Out, In]) Emit(event Out) bool {
	s.out.put(event)
	return true
}

// Newest takes the pending incoming event, if any.
func (s *singleSide[Out, In]) Newest() (In, bool) {
	return s.in.take()
}

// Bounce takes the pending incoming event and sends the reply fn produces,
// if any, back to the peer.
func (s *singleSide[Out, In]) Bounce(fn func(In) (Out, bool)) {
	ev, ok := s.in.take()
	if !ok {
		return
	}
	if reply, ok := fn(ev); ok {
		s.out.put(reply)
	}
}

// IsEmpty reports whether the peer has taken the last event this side sent.
func (s *singleSide[Out, In]) IsEmpty() bool {
	return !s.out.set
}
