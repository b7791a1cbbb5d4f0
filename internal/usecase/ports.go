package usecase

import (
	"context"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// ProviderGateway submits orders to the aggregator and reads back their status.
type ProviderGateway interface {
	Submit(ctx context.Context, order model.Order) (reference string, err error)
	FetchStatus(ctx context.Context, reference string) (string, error)
}

// SubmissionQueue accepts orders for asynchronous submission without blocking.
type SubmissionQueue interface {
	Enqueue(order model.Order) bool
}

// Notifier sends a best-effort text message.
type Notifier interface {
	Send(ctx context.Context, phone, message string) bool
}

// PaymentVerifier confirms wallet top-up payments.
type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (*model.PaymentVerification, error)
}

// PushToggle reports whether orders should be pushed to the provider.
type PushToggle interface {
	PushEnabled(ctx context.Context) (bool, error)
}
