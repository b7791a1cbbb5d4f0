package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineRequest adds one bundle purchase to the cart.
type CartLineRequest struct {
	ProductRef        string          `json:"product_ref"`
	VariantRef        string          `json:"variant_ref"`
	BeneficiaryNumber string          `json:"beneficiary_number"`
	Network           string          `json:"network"`
	BundleSize        string          `json:"bundle_size"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

// CartLineResponse describes a stored cart line.
type CartLineResponse struct {
	ID                int64     `json:"id"`
	ProductRef        string    `json:"product_ref,omitempty"`
	VariantRef        string    `json:"variant_ref,omitempty"`
	BeneficiaryNumber string    `json:"beneficiary_number"`
	Network           string    `json:"network"`
	BundleSize        string    `json:"bundle_size"`
	UnitPrice         string    `json:"unit_price"`
	AddedAt           time.Time `json:"added_at"`
}

// CartResponse lists the cart with its total.
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total string             `json:"total"`
}
