package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a customer holding a wallet.
type User struct {
	ID            int64
	Login         string
	PasswordHash  string
	Phone         string
	WalletBalance decimal.Decimal
	CreatedAt     time.Time
}
