package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/staynest/booking-api/internal/api/metrics"
	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

const (
	defaultWorkers = 2
	defaultBuffer  = 256
	deliverTimeout = 5 * time.Second
)

var (
	// ErrQueueFull is returned by Report when the buffer has no room left.
	ErrQueueFull = errors.New("report queue full")
	// ErrQueueClosed is returned by Report after Shutdown.
	ErrQueueClosed = errors.New("report queue closed")
)

// Dispatcher hands error reports to a fixed set of workers so the request path
// never waits on a telemetry sink. Reports arriving while the buffer is full
// are dropped and counted.
type Dispatcher struct {
	jobs    chan domain.ErrorReport
	workers int
	sink    ports.ErrorReporter
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Non-positive sizes fall back to defaults.
func NewDispatcher(workers, buffer int, sink ports.ErrorReporter, log zerolog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Dispatcher{
		jobs:    make(chan domain.ErrorReport, buffer),
		workers: workers,
		sink:    sink,
		log:     log,
	}
}

// Start launches the workers. They exit once Shutdown drains the queue.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.runWorker(i)
	}
}

// Report enqueues without blocking and implements ports.ErrorReporter.
func (d *Dispatcher) Report(_ context.Context, report domain.ErrorReport) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.ReportQueueDroppedTotal.Inc()
		return ErrQueueClosed
	}

	select {
	case d.jobs <- report:
		metrics.ReportQueueDepth.Set(float64(len(d.jobs)))
		return nil
	default:
		metrics.ReportQueueDroppedTotal.Inc()
		d.log.Warn().Str("report_id", report.ID).Msg("report queue full, dropping report")
		return ErrQueueFull
	}
}

// Shutdown stops intake and waits for queued reports to be delivered or ctx to end.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) runWorker(id int) {
	defer d.wg.Done()
	for report := range d.jobs {
		metrics.ReportQueueDepth.Set(float64(len(d.jobs)))

		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		if err := d.sink.Report(ctx, report); err != nil {
			d.log.Error().Err(err).
				Str("report_id", report.ID).
				Int("worker_id", id).
				Msg("error report delivery failed")
		}
		cancel()
	}
}
