package cascade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gopkg.in/tomb.v2"
)

// Stats is a snapshot of worker counters.
type Stats struct {
	// Attached counts cascades the routing loop has taken on, including
	// the ones the worker started with.
	Attached int64
	// Retired counts cascades the routing loop has retired.
	Retired int64
	// Wakeups counts input polls, including attaches and spurious wakes.
	Wakeups int64
}

// Worker drives a set of cascades on a background goroutine. Cascades are
// handed over with Attach and run until their input closes or their last
// route is removed; the worker retires whatever is still active when it
// stops.
type Worker struct {
	workerID uuid.UUID
	inlet    chan Cascade
	initial  []Cascade
	logger   *slog.Logger

	shutdownTimeout time.Duration

	mu      sync.RWMutex
	started bool
	stopped bool

	tomb tomb.Tomb

	attached atomic.Int64
	retired  atomic.Int64
	wakeups  atomic.Int64
}

// NewWorker creates a cascade worker. Cascades supplied via WithCascades
// must have at least one route, same as Attach requires.
func NewWorker(opts ...WorkerOption) (*Worker, error) {
	options := &workerOptions{
		shutdownTimeout: 30 * time.Second,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	for _, c := range options.cascades {
		if c == nil || !c.HasRoutes() {
			return nil, ErrNoRoutes
		}
	}

	return &Worker{
		workerID:        uuid.New(),
		inlet:           make(chan Cascade, options.inletBuffer),
		initial:         options.cascades,
		logger:          options.logger,
		shutdownTimeout: options.shutdownTimeout,
	}, nil
}

// Start launches the routing loop in the background. The worker stops when
// ctx is canceled or Stop is called, whichever comes first.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return fmt.Errorf("cascade worker already started")
	}
	w.started = true
	w.mu.Unlock()

	w.tomb.Go(func() error {
		runLoop(w.inlet, w.initial, w)
		w.logger.Info("cascade worker stopped",
			slog.String("worker_id", w.workerID.String()),
			slog.Int64("retired", w.retired.Load()))
		return nil
	})
	w.tomb.Go(func() error {
		select {
		case <-ctx.Done():
			w.closeInlet()
		case <-w.tomb.Dying():
		}
		return nil
	})

	w.logger.Info("cascade worker started",
		slog.String("worker_id", w.workerID.String()),
		slog.Int("cascades", len(w.initial)),
		slog.Int("inlet_buffer", cap(w.inlet)))

	return nil
}

// Attach hands a cascade to the routing loop. The cascade must have at
// least one route; it may gain a finalizer and lose routes later. Attach
// blocks while the inlet is full, which only lasts until the loop's next
// poll.
func (w *Worker) Attach(c Cascade) error {
	if c == nil || !c.HasRoutes() {
		return ErrNoRoutes
	}

	// The read lock excludes Stop's close of the inlet for the duration of
	// the send, so the send can never hit a closed channel.
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.started {
		return fmt.Errorf("cascade worker not started")
	}
	if w.stopped {
		return ErrWorkerStopped
	}

	w.inlet <- c
	return nil
}

// Stop closes the inlet and waits for the routing loop to retire all active
// cascades. It returns ErrShutdownTimeout when the loop does not drain in
// time. Stopping twice is harmless.
func (w *Worker) Stop() error {
	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()
	if !started {
		return fmt.Errorf("cascade worker not started")
	}

	w.closeInlet()

	select {
	case <-w.tomb.Dead():
		return w.Err()
	case <-time.After(w.shutdownTimeout):
		return ErrShutdownTimeout
	}
}

// Run starts the worker and returns a function suitable for errgroup.
func (w *Worker) Run(ctx context.Context) func() error {
	return func() error {
		if err := w.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()

		return w.Stop()
	}
}

// Done returns a channel closed once the routing loop has fully stopped.
func (w *Worker) Done() <-chan struct{} {
	return w.tomb.Dead()
}

// Err returns the reason the worker stopped, or nil while it is running or
// after a clean stop.
func (w *Worker) Err() error {
	err := w.tomb.Err()
	if errors.Is(err, tomb.ErrStillAlive) {
		return nil
	}
	return err
}

// Stats returns a snapshot of the worker's counters.
func (w *Worker) Stats() Stats {
	return Stats{
		Attached: w.attached.Load(),
		Retired:  w.retired.Load(),
		Wakeups:  w.wakeups.Load(),
	}
}

func (w *Worker) closeInlet() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.inlet)
}

func (w *Worker) noteAttached(n int64) {
	if w != nil {
		w.attached.Add(n)
	}
}

func (w *Worker) noteRetired() {
	if w != nil {
		w.retired.Add(1)
	}
}

func (w *Worker) noteWakeup() {
	if w != nil {
		w.wakeups.Add(1)
	}
}

// RunWorker drives cascades on the calling goroutine until inlet is closed.
// It is the bare routing loop behind Worker for callers that manage their
// own goroutines: new cascades arrive on inlet, and closing inlet stops the
// loop after its buffered sends are drained. Remaining cascades are retired
// on the way out. Unlike Worker, panics in route closures propagate.
func RunWorker(inlet <-chan Cascade, initial ...Cascade) {
	runLoop(inlet, initial, nil)
}

// runLoop polls the inlet and every active cascade input with a single
// select. The case set is rebuilt whenever the set of active cascades or
// anyone's routes change; everything else stays inside the inner poll loop.
func runLoop(inlet <-chan Cascade, initial []Cascade, w *Worker) {
	active := append([]Cascade(nil), initial...)
	w.noteAttached(int64(len(active)))

	for {
		cases := make([]reflect.SelectCase, 0, len(active)+1)
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(inlet)})
		for _, c := range active {
			cases = append(cases, c.InputCase())
		}

		rebuild := false
		for !rebuild {
			chosen, recv, ok := reflect.Select(cases)
			w.noteWakeup()

			if chosen == 0 {
				if !ok {
					for _, c := range active {
						retireNode(w, c)
					}
					return
				}
				if c, _ := recv.Interface().(Cascade); c != nil {
					active = append(active, c)
					w.noteAttached(1)
				}
				rebuild = true
				continue
			}

			idx := chosen - 1
			c := active[idx]
			d, done, failed := tryProcess(w, c, recv, ok)
			switch {
			case failed || done:
				retireNode(w, c)
				active = removeAt(active, idx)
				rebuild = true
			case len(d) == 0:
				// Nothing to reroute; keep polling the same set.
			default:
				if c.Cleanup(d) {
					rebuild = true
				} else {
					retireNode(w, c)
					active = removeAt(active, idx)
					rebuild = true
				}
			}
		}
	}
}

// tryProcess invokes the cascade's routing step. When a recovering worker
// drives the loop, a panic in route code is converted into a failure that
// retires just the offending cascade.
func tryProcess(w *Worker, c Cascade, recv reflect.Value, ok bool) (d Dispositions, done, failed bool) {
	if w != nil {
		defer func() {
			if r := recover(); r != nil {
				failed = true
				w.logger.Error("cascade panicked",
					slog.String("worker_id", w.workerID.String()),
					slog.Any("panic", r))
			}
		}()
	}
	d, done = c.TryProcess(recv, ok)
	return d, done, false
}

func retireNode(w *Worker, c Cascade) {
	w.noteRetired()
	if w != nil {
		defer func() {
			if r := recover(); r != nil {
				w.logger.Error("cascade retire hook panicked",
					slog.String("worker_id", w.workerID.String()),
					slog.Any("panic", r))
			}
		}()
	}
	c.Retire()
}

func removeAt(nodes []Cascade, i int) []Cascade {
	copy(nodes[i:], nodes[i+1:])
	nodes[len(nodes)-1] = nil
	return nodes[:len(nodes)-1]
}
