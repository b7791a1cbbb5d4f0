package model

import "github.com/shopspring/decimal"

// PaymentVerification is the gateway's verdict on a top-up reference.
type PaymentVerification struct {
	Reference string
	Success   bool
	Amount    decimal.Decimal
}
