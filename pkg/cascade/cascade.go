package cascade

import "reflect"

// Dispositions records fate changes for a cascade's routes, discovered
// while processing and applied afterwards in one Cleanup pass. The key is
// the route index; true turns the route into a blackhole that keeps
// matching but discards, false removes it. The key one past the last route
// index addresses the finalizer, whose presence always removes it.
type Dispositions map[int]bool

// Cascade is the capability a worker needs from one routing node: a single
// input to wait on, a processing step, and deferred route cleanup. Batch
// and Direct provide the two built-in implementations.
//
// Processing is split from cleanup so that one wake-up can be handled
// without mutating the route set mid-flight; the worker applies the
// returned dispositions afterwards.
type Cascade interface {
	// InputCase returns the receive case the worker multiplexes on.
	// It must describe the same channel for the lifetime of the node.
	InputCase() reflect.SelectCase

	// TryProcess handles one wake-up on the input. recv and ok carry the
	// received value exactly as reflect.Select reported them. It returns
	// the dispositions to apply, and done=true when the input is closed
	// and fully drained, which retires the node.
	TryProcess(recv reflect.Value, ok bool) (d Dispositions, done bool)

	// Cleanup applies dispositions and reports whether the node is still
	// worth keeping: at least one route or a finalizer remains.
	Cleanup(d Dispositions) bool

	// HasRoutes reports whether at least one route is attached.
	HasRoutes() bool

	// Retire releases the node's input subscription and runs its retire
	// hook. The worker calls it exactly once, when the node is removed or
	// the worker exits; calling it again is harmless.
	Retire()
}

// route pairs a routing closure with its bookkeeping flags. The closure
// type differs between the batch and per-event flavors, so it stays
// generic here.
type route[F any] struct {
	apply      F
	persist    bool // on disconnect: blackhole instead of remove
	blackholed bool
}

// applyDispositions drops and blackholes routes as recorded in d, and
// reports whether the finalizer was invalidated.
func applyDispositions[F any](routes []route[F], d Dispositions) (remaining []route[F], dropFinalizer bool) {
	n := len(routes)
	_, dropFinalizer = d[n]

	out := routes[:0]
	for i := range routes {
		fate, found := d[i]
		if found && !fate {
			continue
		}
		if found {
			routes[i].blackholed = true
		}
		out = append(out, routes[i])
	}
	for i := len(out); i < n; i++ {
		routes[i] = route[F]{}
	}
	return out, dropFinalizer
}
