package repository

import (
	"context"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// LedgerRepository provides read access to ledger entries.
type LedgerRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Transaction, error)
}
