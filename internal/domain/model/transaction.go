package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies ledger entries.
type TransactionType string

const (
	TransactionTypeTopUp    TransactionType = "topup"
	TransactionTypeOrder    TransactionType = "order"
	TransactionTypeRefund   TransactionType = "refund"
	TransactionTypeAgentFee TransactionType = "agent_fee"
	TransactionTypeCredit   TransactionType = "credit"
	TransactionTypeDebit    TransactionType = "debit"
)

// Credit reports whether entries of this type increase the wallet balance.
func (t TransactionType) Credit() bool {
	switch t {
	case TransactionTypeTopUp, TransactionTypeRefund, TransactionTypeCredit:
		return true
	}
	return false
}

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an immutable ledger entry. Amount is always positive; the
// direction comes from Type.
type Transaction struct {
	ID          int64
	UserID      int64
	OrderID     *int64
	Amount      decimal.Decimal
	Type        TransactionType
	Status      TransactionStatus
	Reference   string
	Description string
	CreatedAt   time.Time
}

// Signed returns the amount with the sign of its effect on the wallet.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type.Credit() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// NewReference generates a unique ledger reference prefixed by the entry type.
func NewReference(t TransactionType) string {
	return strings.ToUpper(string(t)) + "-" + uuid.NewString()
}

// LedgerBalance sums completed entries into the balance they imply.
func LedgerBalance(entries []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, entry := range entries {
		if entry.Status != TransactionStatusCompleted {
			continue
		}
		balance = balance.Add(entry.Signed())
	}
	return balance
}
