package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// Submitter pushes a single order to the provider.
type Submitter interface {
	Submit(ctx context.Context, order model.Order) model.APIStatus
}

// SubmissionDispatcher feeds freshly created orders to a fixed pool of
// submission workers through a bounded queue.
type SubmissionDispatcher struct {
	submitter Submitter
	workers   int
	logger    *slog.Logger

	jobs    chan model.Order
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	stopped bool
}

// NewSubmissionDispatcher constructs the dispatcher worker pool.
func NewSubmissionDispatcher(submitter Submitter, workers, queueSize int, logger *slog.Logger) *SubmissionDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionDispatcher{
		submitter: submitter,
		workers:   workers,
		logger:    logger.With("component", "submission_dispatcher"),
		jobs:      make(chan model.Order, queueSize),
	}
}

// Enqueue hands the order to the pool without blocking. It reports false when
// the queue is full or the dispatcher has been stopped.
func (d *SubmissionDispatcher) Enqueue(order model.Order) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return false
	}
	select {
	case d.jobs <- order:
		return true
	default:
		return false
	}
}

// Pending returns the number of queued orders.
func (d *SubmissionDispatcher) Pending() int {
	return len(d.jobs)
}

// Start launches background processing.
func (d *SubmissionDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil || d.stopped {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop refuses new orders and waits for in-flight submissions to finish.
// Orders still queued are left for the admin retry endpoint.
func (d *SubmissionDispatcher) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
	if left := len(d.jobs); left > 0 {
		d.logger.Warn("dispatcher stopped with queued orders", slog.Int("pending", left))
	}
}

func (d *SubmissionDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order := <-d.jobs:
			// an accepted submission runs to completion so its outcome is recorded
			status := d.submitter.Submit(context.WithoutCancel(ctx), order)
			d.logger.Debug("order processed", slog.Int64("order_id", order.ID), slog.String("api_status", string(status)))
		}
	}
}
