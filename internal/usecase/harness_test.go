package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/metrics"
	"github.com/polkiloo/bundlemart/internal/storage/memory"
	testhelpers "github.com/polkiloo/bundlemart/internal/test"
)

type harness struct {
	store    *memory.Store
	provider *testhelpers.ProviderStub
	notifier *testhelpers.NotifierStub
	queue    *testhelpers.QueueStub
	metrics  *metrics.Metrics

	cart       *CartUseCase
	checkout   *CheckoutUseCase
	settings   *SettingsUseCase
	submission *SubmissionUseCase
	notify     *OrderNotifications
	reconcile  *ReconcileUseCase
	wallet     *WalletUseCase
	orders     *OrderUseCase
	admin      *AdminUseCase
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newHarness(t *testing.T, instant ...string) *harness {
	t.Helper()
	h := &harness{
		store:    memory.New(),
		provider: &testhelpers.ProviderStub{},
		notifier: &testhelpers.NotifierStub{},
		queue:    &testhelpers.QueueStub{},
		metrics:  metrics.New("test"),
	}
	logger := discardLogger()

	h.cart = NewCartUseCase(h.store.Carts())
	h.checkout = NewCheckoutUseCase(h.store.Orders(), model.NewFulfillmentPolicy(instant), h.queue, logger, h.metrics)
	h.settings = NewSettingsUseCase(h.store.Settings(), true)
	h.submission = NewSubmissionUseCase(h.store.Orders(), h.provider, h.settings, logger, h.metrics)
	h.notify = NewOrderNotifications(h.notifier, h.store.Users(), logger, h.metrics)
	h.reconcile = NewReconcileUseCase(h.store.Orders(), h.provider, h.notify, 2, logger, h.metrics)
	h.wallet = NewWalletUseCase(h.store.Wallets(), h.store.Ledger(), testhelpers.PaymentVerifierStub{})
	h.orders = NewOrderUseCase(h.store.Orders())
	h.admin = NewAdminUseCase(h.store.Orders(), h.submission, h.reconcile, h.settings, h.notify, logger, h.metrics)
	return h
}

// seedUser registers a customer and funds the wallet through a credit entry.
func (h *harness) seedUser(t *testing.T, login, phone, balance string) int64 {
	t.Helper()
	ctx := context.Background()
	user, err := h.store.Users().Create(ctx, login, "hash", phone)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if amount := money(balance); amount.IsPositive() {
		if _, err := h.store.Wallets().Credit(ctx, model.Transaction{
			UserID:      user.ID,
			Amount:      amount,
			Type:        model.TransactionTypeCredit,
			Description: "Opening balance",
		}); err != nil {
			t.Fatalf("fund wallet: %v", err)
		}
	}
	return user.ID
}

func (h *harness) addLine(t *testing.T, userID int64, network, size, price string) {
	t.Helper()
	_, err := h.cart.AddLine(context.Background(), userID, model.CartLine{
		ProductRef:        "data-" + network,
		VariantRef:        size,
		BeneficiaryNumber: "0241234567",
		Network:           network,
		BundleSize:        size,
		UnitPrice:         money(price),
	})
	if err != nil {
		t.Fatalf("add cart line: %v", err)
	}
}

func (h *harness) balance(t *testing.T, userID int64) decimal.Decimal {
	t.Helper()
	b, err := h.wallet.Balance(context.Background(), userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return b
}

func (h *harness) order(t *testing.T, orderID int64) model.Order {
	t.Helper()
	o, err := h.store.Orders().GetByID(context.Background(), orderID)
	if err != nil {
		t.Fatalf("get order %d: %v", orderID, err)
	}
	return *o
}

func (h *harness) entries(t *testing.T, userID int64, typ model.TransactionType) []model.Transaction {
	t.Helper()
	all, err := h.wallet.Transactions(context.Background(), userID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	var out []model.Transaction
	for _, e := range all {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// assertLedgerMatchesBalance checks that the wallet balance equals the sum of its ledger.
func (h *harness) assertLedgerMatchesBalance(t *testing.T, userID int64) {
	t.Helper()
	entries, err := h.wallet.Transactions(context.Background(), userID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if got, want := model.LedgerBalance(entries), h.balance(t, userID); !got.Equal(want) {
		t.Fatalf("ledger sums to %s but balance is %s", got, want)
	}
}
