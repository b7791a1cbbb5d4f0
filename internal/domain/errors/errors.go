package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrCheckoutFailed     = errors.New("checkout failed")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidCartLine    = errors.New("invalid cart line")
	ErrPaymentNotVerified = errors.New("payment not verified")
	ErrAlreadyProcessed   = errors.New("already processed")
)
