package dto

import "time"

// OrderResponse describes an order as shown to its owner.
type OrderResponse struct {
	ID                int64     `json:"id"`
	BeneficiaryNumber string    `json:"beneficiary_number"`
	Network           string    `json:"network"`
	BundleSize        string    `json:"bundle_size"`
	Total             string    `json:"total"`
	Status            string    `json:"status"`
	APIStatus         string    `json:"api_status,omitempty"`
	ProviderReference string    `json:"provider_reference,omitempty"`
	Refunded          bool      `json:"refunded"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
