package model

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name     string
		got      OrderStatus
		value    string
		terminal bool
	}{
		{"pending", OrderStatusPending, "pending", false},
		{"processing", OrderStatusProcessing, "processing", false},
		{"completed", OrderStatusCompleted, "completed", true},
		{"cancelled", OrderStatusCancelled, "cancelled", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
			if tc.got.Terminal() != tc.terminal {
				t.Fatalf("unexpected terminal flag for %s", tc.got)
			}
		})
	}

	if OrderStatus("shipped").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestMapExternalStatus(t *testing.T) {
	cases := []struct {
		raw    string
		want   OrderStatus
		mapped bool
	}{
		{"successful", OrderStatusCompleted, true},
		{"Completed", OrderStatusCompleted, true},
		{" delivered ", OrderStatusCompleted, true},
		{"processing", OrderStatusProcessing, true},
		{"PENDING", OrderStatusProcessing, true},
		{"failed", OrderStatusCancelled, true},
		{"cancelled", OrderStatusCancelled, true},
		{"refunded", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := MapExternalStatus(tc.raw)
		if ok != tc.mapped || got != tc.want {
			t.Fatalf("MapExternalStatus(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.mapped)
		}
	}
}

func TestFulfillmentPolicy(t *testing.T) {
	policy := NewFulfillmentPolicy([]string{" airteltigo ", ""})
	if got := policy.InitialStatus("AirtelTigo"); got != OrderStatusCompleted {
		t.Fatalf("expected instant network to complete, got %s", got)
	}
	if got := policy.InitialStatus("MTN"); got != OrderStatusPending {
		t.Fatalf("expected pending, got %s", got)
	}

	var empty FulfillmentPolicy
	if got := empty.InitialStatus("MTN"); got != OrderStatusPending {
		t.Fatalf("expected zero policy to keep orders pending, got %s", got)
	}
}

func TestTransactionDirection(t *testing.T) {
	credits := []TransactionType{TransactionTypeTopUp, TransactionTypeRefund, TransactionTypeCredit}
	debits := []TransactionType{TransactionTypeOrder, TransactionTypeAgentFee, TransactionTypeDebit}
	for _, typ := range credits {
		if !typ.Credit() {
			t.Fatalf("expected %s to credit", typ)
		}
	}
	for _, typ := range debits {
		if typ.Credit() {
			t.Fatalf("expected %s to debit", typ)
		}
	}
}

func TestLedgerBalance(t *testing.T) {
	entries := []Transaction{
		{Type: TransactionTypeTopUp, Status: TransactionStatusCompleted, Amount: decimal.RequireFromString("20.00")},
		{Type: TransactionTypeOrder, Status: TransactionStatusCompleted, Amount: decimal.RequireFromString("9.00")},
		{Type: TransactionTypeRefund, Status: TransactionStatusCompleted, Amount: decimal.RequireFromString("9.00")},
		{Type: TransactionTypeDebit, Status: TransactionStatusFailed, Amount: decimal.RequireFromString("5.00")},
	}
	if got := LedgerBalance(entries); !got.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("unexpected ledger balance: %s", got)
	}
}

func TestCartTotalIsExact(t *testing.T) {
	lines := []CartLine{
		{UnitPrice: decimal.RequireFromString("0.10")},
		{UnitPrice: decimal.RequireFromString("0.20")},
	}
	if got := CartTotal(lines); !got.Equal(decimal.RequireFromString("0.30")) {
		t.Fatalf("expected 0.30, got %s", got)
	}
	if got := CartTotal(nil); !got.IsZero() {
		t.Fatalf("expected zero total, got %s", got)
	}
}

func TestNewReference(t *testing.T) {
	ref := NewReference(TransactionTypeRefund)
	if !strings.HasPrefix(ref, "REFUND-") {
		t.Fatalf("unexpected reference prefix: %s", ref)
	}
	if ref == NewReference(TransactionTypeRefund) {
		t.Fatal("expected unique references")
	}
}

func TestOrderHasProviderReference(t *testing.T) {
	empty := ""
	ref := "TX-1"
	if (Order{}).HasProviderReference() {
		t.Fatal("expected nil reference to be absent")
	}
	if (Order{ProviderReference: &empty}).HasProviderReference() {
		t.Fatal("expected empty reference to be absent")
	}
	if !(Order{ProviderReference: &ref}).HasProviderReference() {
		t.Fatal("expected reference to be present")
	}
}
