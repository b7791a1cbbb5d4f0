package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

// OrderNotifications tells customers about delivered and refunded orders.
// Delivery is best effort: failures are logged and never propagate.
type OrderNotifications struct {
	notifier Notifier
	users    repository.UserRepository
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewOrderNotifications constructs OrderNotifications.
func NewOrderNotifications(notifier Notifier, users repository.UserRepository, logger *slog.Logger, m *metrics.Metrics) *OrderNotifications {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderNotifications{
		notifier: notifier,
		users:    users,
		logger:   logger.With("component", "notifications"),
		metrics:  m,
	}
}

// DeliveredMessage is sent when an order completes.
func DeliveredMessage(order model.Order) string {
	return fmt.Sprintf("Your %s %s data bundle for %s has been delivered.",
		order.BundleSize, order.Network, order.BeneficiaryNumber)
}

// RefundedMessage is sent when a cancelled order is refunded.
func RefundedMessage(order model.Order) string {
	return fmt.Sprintf("Your %s order #%d was cancelled. %s has been refunded to your wallet.",
		order.Network, order.ID, order.Total.StringFixed(2))
}

// Delivered notifies the owner of a completed order.
func (n *OrderNotifications) Delivered(ctx context.Context, order model.Order) {
	n.send(ctx, "delivered", order, DeliveredMessage(order))
}

// Refunded notifies the owner of a refunded order.
func (n *OrderNotifications) Refunded(ctx context.Context, order model.Order) {
	n.send(ctx, "refunded", order, RefundedMessage(order))
}

func (n *OrderNotifications) send(ctx context.Context, kind string, order model.Order, message string) {
	if n == nil || n.notifier == nil {
		return
	}
	log := n.logger.With(slog.Int64("order_id", order.ID), slog.String("kind", kind))

	user, err := n.users.GetByID(ctx, order.UserID)
	if err != nil {
		n.metrics.Notification(kind, false)
		log.Warn("notification recipient lookup failed", slog.Any("error", err))
		return
	}

	delivered := n.notifier.Send(ctx, user.Phone, message)
	n.metrics.Notification(kind, delivered)
	if !delivered {
		log.Warn("notification not delivered")
	}
}
