package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// Reconciler runs one reconciliation sweep.
type Reconciler interface {
	ReconcileAll(ctx context.Context) (model.ReconcileReport, error)
}

// Locker guards a sweep against overlapping runs.
type Locker interface {
	TryLock(ctx context.Context) (unlock func(context.Context) error, acquired bool, err error)
}

// ReconcileScheduler triggers reconciliation sweeps on a fixed interval.
type ReconcileScheduler struct {
	reconciler Reconciler
	lock       Locker
	interval   time.Duration
	logger     *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconcileScheduler constructs the scheduler.
func NewReconcileScheduler(reconciler Reconciler, lock Locker, interval time.Duration, logger *slog.Logger) *ReconcileScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileScheduler{
		reconciler: reconciler,
		lock:       lock,
		interval:   interval,
		logger:     logger.With("component", "reconcile_scheduler"),
	}
}

// Start launches the ticker loop.
func (s *ReconcileScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop cancels a running sweep and waits for the loop to exit.
func (s *ReconcileScheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ReconcileScheduler) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ReconcileScheduler) sweep(ctx context.Context) {
	if s.lock != nil {
		unlock, acquired, err := s.lock.TryLock(ctx)
		if err != nil {
			s.logger.Error("acquire sweep lock", slog.String("error", err.Error()))
			return
		}
		if !acquired {
			s.logger.Debug("sweep already running elsewhere")
			return
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("release sweep lock", slog.String("error", err.Error()))
			}
		}()
	}

	started := time.Now()
	report, err := s.reconciler.ReconcileAll(ctx)
	if err != nil {
		s.logger.Error("reconciliation sweep failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("reconciliation sweep done",
		slog.Int("scanned", report.Scanned),
		slog.Duration("took", time.Since(started)),
	)
}
