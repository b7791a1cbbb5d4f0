package repository

import (
	"context"
	"time"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Checkout converts the user's cart into orders in one atomic unit: the
	// wallet is debited once, every line becomes an order with its own ledger
	// entry and the cart is cleared. Returns ErrEmptyCart or
	// ErrInsufficientFunds without mutating anything.
	Checkout(ctx context.Context, userID int64, policy model.FulfillmentPolicy) ([]model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// ListForReconciliation returns non-terminal orders with id greater than afterID.
	ListForReconciliation(ctx context.Context, afterID int64, limit int) ([]model.Order, error)
	// ClaimSubmission marks an order without a provider reference as in
	// flight and returns the stored order. The bool is false when the order is
	// already referenced or another caller holds a claim younger than staleAfter.
	ClaimSubmission(ctx context.Context, orderID int64, staleAfter time.Duration) (*model.Order, bool, error)
	// RecordSubmission stores the push outcome. Once an order carries a
	// provider reference neither the reference nor its api status change.
	RecordSubmission(ctx context.Context, orderID int64, status model.APIStatus, reference *string) error
	// Transition changes the order status, posting the refund when the order
	// enters cancelled for the first time.
	Transition(ctx context.Context, t model.StatusTransition) (*model.TransitionResult, error)
}
