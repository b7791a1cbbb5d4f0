package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// WalletRepository mutates wallet balances together with their ledger entries.
type WalletRepository interface {
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	// Credit adds a credit-direction entry and raises the balance. A reused
	// reference yields ErrAlreadyProcessed.
	Credit(ctx context.Context, entry model.Transaction) (*model.Transaction, error)
}
