package model

import "strings"

// FulfillmentPolicy decides the initial status of freshly created orders.
type FulfillmentPolicy struct {
	instant map[string]struct{}
}

// NewFulfillmentPolicy marks the listed networks as fulfilled instantly.
func NewFulfillmentPolicy(instantNetworks []string) FulfillmentPolicy {
	instant := make(map[string]struct{}, len(instantNetworks))
	for _, network := range instantNetworks {
		if key := NormalizeNetwork(network); key != "" {
			instant[key] = struct{}{}
		}
	}
	return FulfillmentPolicy{instant: instant}
}

// InitialStatus returns completed for instant networks and pending otherwise.
func (p FulfillmentPolicy) InitialStatus(network string) OrderStatus {
	if _, ok := p.instant[NormalizeNetwork(network)]; ok {
		return OrderStatusCompleted
	}
	return OrderStatusPending
}

// NormalizeNetwork canonicalizes a network name for lookups.
func NormalizeNetwork(network string) string {
	return strings.ToUpper(strings.TrimSpace(network))
}
