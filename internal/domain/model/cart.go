package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a pending purchase intent with the price captured when it was added.
type CartLine struct {
	ID                int64
	UserID            int64
	ProductRef        string
	VariantRef        string
	BeneficiaryNumber string
	Network           string
	BundleSize        string
	UnitPrice         decimal.Decimal
	CreatedAt         time.Time
}

// CartTotal returns the exact sum of line prices.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice)
	}
	return total
}

// Description is the human readable label used for the order ledger entry.
func (l CartLine) Description() string {
	return fmt.Sprintf("%s %s data bundle for %s", l.BundleSize, l.Network, l.BeneficiaryNumber)
}
