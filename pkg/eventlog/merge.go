package eventlog

// Source is the read side shared by every listener handle in this module:
// anything that can hand a batch of unconsumed events to a callback.
type Source[T any] interface {
	With(fn func([]T))
}

// Merge reads several sources as one. With concatenates the unconsumed
// events of every source in slice order, so relative order within a source
// is preserved while ordering across sources is by position in the merge.
type Merge[T any] []Source[T]

// With drains every source and applies fn once to the concatenated events.
func (m Merge[T]) With(fn func([]T)) {
	var events []T
	for _, src := range m {
		src.With(func(batch []T) {
			events = append(events, batch...)
		})
	}
	fn(events)
}

// WithN behaves like With but drains only the first n sources.
// It drains all of them when n exceeds the merge's length.
func (m Merge[T]) WithN(n int, fn func([]T)) {
	n = max(0, min(n, len(m)))
	m[:n].With(fn)
}

// Drain returns the concatenated unconsumed events of every source and
// marks them consumed.
func (m Merge[T]) Drain() []T {
	var out []T
	for _, src := range m {
		src.With(func(batch []T) {
			out = append(out, batch...)
		})
	}
	return out
}
