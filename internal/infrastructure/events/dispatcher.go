package events

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/platform/logging"
)

// Sink receives dispatched events. Handlers must tolerate redelivery-free
// best-effort semantics: a dropped event is logged, never retried.
type Sink interface {
	Name() string
	Handle(ctx context.Context, evt event.Event) error
}

// Dispatcher fans events out to sinks on a bounded worker pool, decoupled
// from the publishing request. Publish never blocks the caller.
type Dispatcher struct {
	pool     *ants.Pool
	sinks    []Sink
	logger   *logging.Logger
	timeout  time.Duration
	inflight sync.WaitGroup
}

func NewDispatcher(workers int, timeout time.Duration, logger *logging.Logger, sinks ...Sink) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 4
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		pool:    pool,
		sinks:   sinks,
		logger:  logger,
		timeout: timeout,
	}, nil
}

func (d *Dispatcher) Publish(ctx context.Context, evt event.Event) {
	if len(d.sinks) == 0 {
		return
	}

	d.inflight.Add(1)
	err := d.pool.Submit(func() {
		defer d.inflight.Done()
		d.dispatch(evt)
	})
	if err != nil {
		d.inflight.Done()
		d.logger.WarnContext(ctx, "event dropped, worker pool saturated",
			"event_type", string(evt.Type),
			"night_id", evt.NightID,
		)
	}
}

// Close drains in-flight events and releases the pool.
func (d *Dispatcher) Close() {
	d.inflight.Wait()
	d.pool.Release()
}

func (d *Dispatcher) dispatch(evt event.Event) {
	// The publishing request may already be finished; handlers get their
	// own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	var wg conc.WaitGroup
	for _, sink := range d.sinks {
		sink := sink
		wg.Go(func() {
			if err := sink.Handle(ctx, evt); err != nil {
				d.logger.WarnContext(ctx, "event sink failed",
					"sink", sink.Name(),
					"event_type", string(evt.Type),
					"night_id", evt.NightID,
					"error", err,
				)
			}
		})
	}

	if recovered := wg.WaitAndRecover(); recovered != nil {
		d.logger.ErrorContext(ctx, "event sink panicked",
			"event_type", string(evt.Type),
			"panic", recovered.String(),
		)
	}
}
