package broadcast

import "log/slog"

const defaultStreamBuffer = 16

type options struct {
	logger       *slog.Logger
	streamBuffer int
}

// Option configures a Queue.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:       slog.Default(),
		streamBuffer: defaultStreamBuffer,
	}
}

// WithLogger sets the logger used to report dropped stream events.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStreamBuffer sets the channel capacity of streams opened with
// NewStream. Values below one are ignored.
func WithStreamBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.streamBuffer = size
		}
	}
}
