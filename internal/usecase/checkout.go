package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

// CheckoutUseCase converts a cart into paid orders.
type CheckoutUseCase struct {
	orders  repository.OrderRepository
	policy  model.FulfillmentPolicy
	queue   SubmissionQueue
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	orders repository.OrderRepository,
	policy model.FulfillmentPolicy,
	queue SubmissionQueue,
	logger *slog.Logger,
	m *metrics.Metrics,
) *CheckoutUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutUseCase{
		orders:  orders,
		policy:  policy,
		queue:   queue,
		logger:  logger.With("component", "checkout"),
		metrics: m,
	}
}

// Checkout debits the wallet once for the whole cart and creates one order per line.
// Created orders are queued for submission after the debit is committed; a
// submission problem never undoes the checkout.
func (u *CheckoutUseCase) Checkout(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := u.orders.Checkout(ctx, userID, u.policy)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			u.metrics.Checkout("empty_cart")
			return nil, domainErrors.ErrEmptyCart
		case errors.Is(err, domainErrors.ErrInsufficientFunds):
			u.metrics.Checkout("insufficient_funds")
			return nil, domainErrors.ErrInsufficientFunds
		case errors.Is(err, domainErrors.ErrNotFound):
			u.metrics.Checkout("failed")
			return nil, domainErrors.ErrNotFound
		}
		u.metrics.Checkout("failed")
		u.logger.Error("checkout failed", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrCheckoutFailed, err)
	}

	u.metrics.Checkout("success")
	u.logger.Info("checkout committed",
		slog.Int64("user_id", userID),
		slog.Int("orders", len(orders)),
		slog.String("total", orderTotal(orders)),
	)

	for _, order := range orders {
		if u.queue == nil {
			break
		}
		if !u.queue.Enqueue(order) {
			u.logger.Warn("submission queue full, order left for retry", slog.Int64("order_id", order.ID))
		}
	}

	return orders, nil
}

func orderTotal(orders []model.Order) string {
	if len(orders) == 0 {
		return "0.00"
	}
	total := orders[0].Total
	for _, order := range orders[1:] {
		total = total.Add(order.Total)
	}
	return total.StringFixed(2)
}
