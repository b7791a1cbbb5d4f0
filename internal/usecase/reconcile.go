package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

const defaultReconcileBatch = 100

// ReconcileUseCase pulls provider statuses for open orders and applies them.
type ReconcileUseCase struct {
	orders   repository.OrderRepository
	provider ProviderGateway
	notify   *OrderNotifications
	batch    int
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewReconcileUseCase constructs ReconcileUseCase. batch bounds the page size of one scan.
func NewReconcileUseCase(
	orders repository.OrderRepository,
	provider ProviderGateway,
	notify *OrderNotifications,
	batch int,
	logger *slog.Logger,
	m *metrics.Metrics,
) *ReconcileUseCase {
	if batch <= 0 {
		batch = defaultReconcileBatch
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileUseCase{
		orders:   orders,
		provider: provider,
		notify:   notify,
		batch:    batch,
		logger:   logger.With("component", "reconcile"),
		metrics:  m,
	}
}

// ReconcileAll scans every non-terminal order once. Repeated runs against
// unchanged provider state change nothing.
func (u *ReconcileUseCase) ReconcileAll(ctx context.Context) (model.ReconcileReport, error) {
	var report model.ReconcileReport
	var afterID int64

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		orders, err := u.orders.ListForReconciliation(ctx, afterID, u.batch)
		if err != nil {
			return report, fmt.Errorf("list orders for reconciliation: %w", err)
		}
		if len(orders) == 0 {
			break
		}
		for _, order := range orders {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.Scanned++
			u.reconcileOne(ctx, order, &report)
			afterID = order.ID
		}
		if len(orders) < u.batch {
			break
		}
	}

	u.logger.Info("reconciliation finished",
		slog.Int("scanned", report.Scanned),
		slog.Int("completed", report.Completed),
		slog.Int("cancelled", report.Cancelled),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func (u *ReconcileUseCase) reconcileOne(ctx context.Context, order model.Order, report *model.ReconcileReport) {
	log := u.logger.With(slog.Int64("order_id", order.ID))

	if !order.HasProviderReference() {
		log.Debug("order has no provider reference, skipping")
		report.Skipped++
		return
	}

	raw, err := u.provider.FetchStatus(ctx, *order.ProviderReference)
	if err != nil {
		log.Warn("fetch provider status", slog.Any("error", err))
		report.Failed++
		return
	}

	next, ok := model.MapExternalStatus(raw)
	if !ok {
		log.Info("unmapped provider status", slog.String("status", raw))
		report.Unmapped++
		return
	}
	if next == order.Status {
		report.Unchanged++
		return
	}

	from := order.Status
	result, err := u.orders.Transition(ctx, model.StatusTransition{
		OrderID: order.ID,
		From:    &from,
		To:      next,
	})
	if err != nil {
		log.Error("apply transition", slog.String("to", string(next)), slog.Any("error", err))
		u.metrics.Error("storage")
		report.Failed++
		return
	}
	if !result.Applied {
		report.Unchanged++
		return
	}

	u.metrics.Transition("reconcile", string(next), result.Refund != nil)
	log.Info("order status changed", slog.String("from", string(from)), slog.String("to", string(next)))

	switch next {
	case model.OrderStatusCompleted:
		report.Completed++
		u.notify.Delivered(ctx, result.Order)
	case model.OrderStatusCancelled:
		report.Cancelled++
		if result.Refund != nil {
			u.notify.Refunded(ctx, result.Order)
		}
	default:
		report.Advanced++
	}
}
