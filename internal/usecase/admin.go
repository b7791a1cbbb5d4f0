package usecase

import (
	"context"
	"log/slog"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

// AdminUseCase holds the operator actions.
type AdminUseCase struct {
	orders     repository.OrderRepository
	submission *SubmissionUseCase
	reconciler *ReconcileUseCase
	settings   *SettingsUseCase
	notify     *OrderNotifications
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(
	orders repository.OrderRepository,
	submission *SubmissionUseCase,
	reconciler *ReconcileUseCase,
	settings *SettingsUseCase,
	notify *OrderNotifications,
	logger *slog.Logger,
	m *metrics.Metrics,
) *AdminUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminUseCase{
		orders:     orders,
		submission: submission,
		reconciler: reconciler,
		settings:   settings,
		notify:     notify,
		logger:     logger.With("component", "admin"),
		metrics:    m,
	}
}

// OverrideStatus forces an order into status. Entering cancelled refunds the
// order unless it was refunded before.
func (u *AdminUseCase) OverrideStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	result, err := u.orders.Transition(ctx, model.StatusTransition{OrderID: orderID, To: status})
	if err != nil {
		return nil, err
	}
	if !result.Applied {
		return &result.Order, nil
	}

	u.metrics.Transition("admin", string(status), result.Refund != nil)
	u.logger.Info("order status overridden", slog.Int64("order_id", orderID), slog.String("status", string(status)))

	switch {
	case status == model.OrderStatusCompleted:
		u.notify.Delivered(ctx, result.Order)
	case status == model.OrderStatusCancelled && result.Refund != nil:
		u.notify.Refunded(ctx, result.Order)
	}
	return &result.Order, nil
}

// Resubmit runs submission again for an open order. Orders that already carry
// a provider reference are left as they are.
func (u *AdminUseCase) Resubmit(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, domainErrors.ErrInvalidStatus
	}

	u.submission.Submit(ctx, *order)
	return u.orders.GetByID(ctx, orderID)
}

// Reconcile runs one sweep immediately.
func (u *AdminUseCase) Reconcile(ctx context.Context) (model.ReconcileReport, error) {
	return u.reconciler.ReconcileAll(ctx)
}

// PushEnabled reads the push toggle.
func (u *AdminUseCase) PushEnabled(ctx context.Context) (bool, error) {
	return u.settings.PushEnabled(ctx)
}

// SetPushEnabled writes the push toggle.
func (u *AdminUseCase) SetPushEnabled(ctx context.Context, enabled bool) error {
	u.logger.Info("push toggle changed", slog.Bool("enabled", enabled))
	return u.settings.SetPushEnabled(ctx, enabled)
}
