package cascade

import (
	"log/slog"
	"time"
)

// WorkerOption is a functional option for configuring a worker
type WorkerOption func(*workerOptions)

type workerOptions struct {
	inletBuffer     int
	shutdownTimeout time.Duration
	logger          *slog.Logger
	cascades        []Cascade
}

// WithInletBuffer sets the capacity of the attach channel. With the default
// of zero, Attach blocks until the routing loop takes the cascade.
func WithInletBuffer(n int) WorkerOption {
	return func(o *workerOptions) {
		if n > 0 {
			o.inletBuffer = n
		}
	}
}

// WithShutdownTimeout bounds how long Stop waits for the routing loop to
// retire its cascades.
func WithShutdownTimeout(d time.Duration) WorkerOption {
	return func(o *workerOptions) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithLogger sets the logger for the worker
func WithLogger(logger *slog.Logger) WorkerOption {
	return func(o *workerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCascades supplies cascades that are active from the moment the worker
// starts, without going through Attach.
func WithCascades(cascades ...Cascade) WorkerOption {
	return func(o *workerOptions) {
		o.cascades = append(o.cascades, cascades...)
	}
}

// WithConfig applies environment-driven settings
func WithConfig(cfg Config) WorkerOption {
	return func(o *workerOptions) {
		if cfg.InletBuffer > 0 {
			o.inletBuffer = cfg.InletBuffer
		}
		if cfg.ShutdownTimeout > 0 {
			o.shutdownTimeout = cfg.ShutdownTimeout
		}
	}
}
