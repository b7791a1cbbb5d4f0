package model

import "strings"

// ExternalStatusMap translates provider status vocabulary into order statuses.
// Values missing from the table leave the order untouched.
var ExternalStatusMap = map[string]OrderStatus{
	"successful": OrderStatusCompleted,
	"completed":  OrderStatusCompleted,
	"delivered":  OrderStatusCompleted,
	"processing": OrderStatusProcessing,
	"pending":    OrderStatusProcessing,
	"failed":     OrderStatusCancelled,
	"cancelled":  OrderStatusCancelled,
}

// MapExternalStatus looks up a raw provider status, ignoring case and surrounding space.
func MapExternalStatus(raw string) (OrderStatus, bool) {
	status, ok := ExternalStatusMap[strings.ToLower(strings.TrimSpace(raw))]
	return status, ok
}
