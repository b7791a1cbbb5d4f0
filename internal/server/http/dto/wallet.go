package dto

import "time"

// BalanceResponse represents the wallet balance.
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// TopUpRequest carries the payment reference to credit.
type TopUpRequest struct {
	Reference string `json:"reference"`
}

// TransactionResponse describes a ledger entry.
type TransactionResponse struct {
	ID          int64     `json:"id"`
	OrderID     *int64    `json:"order_id,omitempty"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Reference   string    `json:"reference"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
