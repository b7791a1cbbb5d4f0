package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the business lifecycle visible to the customer.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether orders in this status are excluded from reconciliation.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// APIStatus records the outcome of pushing an order to the provider.
type APIStatus string

const (
	// APIStatusNone means no submission has been attempted yet.
	APIStatusNone     APIStatus = ""
	APIStatusDisabled APIStatus = "disabled"
	APIStatusSuccess  APIStatus = "success"
	APIStatusFailed   APIStatus = "failed"
	// APIStatusInFlight marks an order claimed by a submitter that has not
	// recorded its outcome yet.
	APIStatusInFlight APIStatus = "in_flight"
)

// Order is a single fulfillable unit: one beneficiary, one bundle.
type Order struct {
	ID                int64
	UserID            int64
	BeneficiaryNumber string
	Network           string
	BundleSize        string
	Total             decimal.Decimal
	Status            OrderStatus
	APIStatus         APIStatus
	ProviderReference *string
	Refunded          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasProviderReference reports whether the provider already accepted the order.
func (o Order) HasProviderReference() bool {
	return o.ProviderReference != nil && *o.ProviderReference != ""
}

// StatusTransition is a request to move an order into another status.
// When From is set the transition only applies if the order is still in that status.
type StatusTransition struct {
	OrderID           int64
	From              *OrderStatus
	To                OrderStatus
	RefundDescription string
}

// TransitionResult describes what a status transition actually changed.
type TransitionResult struct {
	Order   Order
	Applied bool
	Refund  *Transaction
}

// RefundDescription labels the refund entry posted when an order is cancelled.
func RefundDescription(orderID int64) string {
	return fmt.Sprintf("Refund for order #%d", orderID)
}
