package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

// submissionLease bounds how long an in-flight claim blocks other submitters.
// It must outlast a provider call including its timeout.
const submissionLease = 5 * time.Minute

// SubmissionUseCase pushes orders to the provider and records the outcome.
type SubmissionUseCase struct {
	orders   repository.OrderRepository
	provider ProviderGateway
	toggle   PushToggle
	logger   *slog.Logger
	metrics  *metrics.Metrics
	lease    time.Duration
}

// NewSubmissionUseCase constructs SubmissionUseCase.
func NewSubmissionUseCase(
	orders repository.OrderRepository,
	provider ProviderGateway,
	toggle PushToggle,
	logger *slog.Logger,
	m *metrics.Metrics,
) *SubmissionUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionUseCase{
		orders:   orders,
		provider: provider,
		toggle:   toggle,
		logger:   logger.With("component", "submission"),
		metrics:  m,
		lease:    submissionLease,
	}
}

// Submit pushes the order at most once. Only the order id of the argument is
// trusted: the stored order is claimed first, so concurrent or repeated calls
// reach the provider once. It never fails: every outcome is recorded in the
// order's api status and the business status is left alone.
func (u *SubmissionUseCase) Submit(ctx context.Context, order model.Order) model.APIStatus {
	log := u.logger.With(slog.Int64("order_id", order.ID))

	stored, claimed, err := u.orders.ClaimSubmission(ctx, order.ID, u.lease)
	if err != nil {
		u.metrics.Error("storage")
		log.Error("claim submission", slog.Any("error", err))
		return model.APIStatusFailed
	}
	if !claimed {
		log.Debug("order already submitted or in flight", slog.String("api_status", string(stored.APIStatus)))
		return stored.APIStatus
	}
	order = *stored

	enabled, err := u.toggle.PushEnabled(ctx)
	if err != nil {
		log.Error("read push toggle", slog.Any("error", err))
		return u.record(ctx, log, order.ID, model.APIStatusFailed, nil)
	}
	if !enabled {
		log.Info("push disabled, order not submitted")
		return u.record(ctx, log, order.ID, model.APIStatusDisabled, nil)
	}

	reference, err := u.provider.Submit(ctx, order)
	if err != nil {
		log.Warn("provider rejected order", slog.Any("error", err))
		return u.record(ctx, log, order.ID, model.APIStatusFailed, nil)
	}

	log.Info("order submitted", slog.String("reference", reference))
	return u.record(ctx, log, order.ID, model.APIStatusSuccess, &reference)
}

func (u *SubmissionUseCase) record(ctx context.Context, log *slog.Logger, orderID int64, status model.APIStatus, reference *string) model.APIStatus {
	u.metrics.Submission(string(status))
	if err := u.orders.RecordSubmission(ctx, orderID, status, reference); err != nil {
		u.metrics.Error("storage")
		log.Error("record submission", slog.String("api_status", string(status)), slog.Any("error", err))
	}
	return status
}
