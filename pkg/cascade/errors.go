package cascade

import "errors"

var (
	// ErrNoRoutes is returned when a cascade without any route is attached
	// to a worker. A routeless cascade would consume its input and do
	// nothing, which is never intended.
	ErrNoRoutes = errors.New("cascade: no routes attached")

	// ErrWorkerStopped is returned by Attach after the worker began
	// shutting down.
	ErrWorkerStopped = errors.New("cascade: worker stopped")

	// ErrShutdownTimeout is returned by Stop when the worker loop did not
	// drain within the configured shutdown timeout.
	ErrShutdownTimeout = errors.New("cascade: shutdown timeout exceeded")
)
