package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	AddFn    func(context.Context, int64, model.CartLine) (*model.CartLine, error)
	LinesFn  func(context.Context, int64) ([]model.CartLine, error)
	RemoveFn func(context.Context, int64, int64) error
}

// AddCartLine delegates to provided function or echoes the line back with an ID.
func (s CartFacadeStub) AddCartLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, line)
	}
	line.ID = 1
	line.UserID = userID
	return &line, nil
}

// CartLines returns predefined cart lines.
func (s CartFacadeStub) CartLines(ctx context.Context, userID int64) ([]model.CartLine, error) {
	if s.LinesFn != nil {
		return s.LinesFn(ctx, userID)
	}
	return []model.CartLine{{ID: 1, UserID: userID, Network: "MTN", BundleSize: "1GB", BeneficiaryNumber: "0241234567", UnitPrice: decimal.RequireFromString("5")}}, nil
}

// RemoveCartLine executes configured removal handler.
func (s CartFacadeStub) RemoveCartLine(ctx context.Context, userID, lineID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, lineID)
	}
	return nil
}

// OrderFacadeStub provides controllable behaviour for checkout and order endpoints.
type OrderFacadeStub struct {
	CheckoutFn func(context.Context, int64) ([]model.Order, error)
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
	OrderFn    func(context.Context, int64, int64) (*model.Order, error)
}

// Checkout returns a single pending order by default.
func (s OrderFacadeStub) Checkout(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, Status: model.OrderStatusPending, Total: decimal.RequireFromString("5")}}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
}

// Order returns a single order.
func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

// WalletFacadeStub simulates wallet operations.
type WalletFacadeStub struct {
	BalanceFn      func(context.Context, int64) (decimal.Decimal, error)
	TransactionsFn func(context.Context, int64) ([]model.Transaction, error)
	TopUpFn        func(context.Context, int64, string) (*model.Transaction, error)
}

// Balance returns stored balance or a default one.
func (s WalletFacadeStub) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return decimal.RequireFromString("10"), nil
}

// Transactions returns preconfigured history.
func (s WalletFacadeStub) Transactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, userID)
	}
	return []model.Transaction{{ID: 1, UserID: userID, Amount: decimal.RequireFromString("10"), Type: model.TransactionTypeTopUp, Status: model.TransactionStatusCompleted}}, nil
}

// TopUp executes configured top-up handler.
func (s WalletFacadeStub) TopUp(ctx context.Context, userID int64, reference string) (*model.Transaction, error) {
	if s.TopUpFn != nil {
		return s.TopUpFn(ctx, userID, reference)
	}
	return &model.Transaction{ID: 1, UserID: userID, Reference: reference, Amount: decimal.RequireFromString("10"), Type: model.TransactionTypeTopUp, Status: model.TransactionStatusCompleted}, nil
}

// AdminFacadeStub simulates operator actions.
type AdminFacadeStub struct {
	PushEnabledFn    func(context.Context) (bool, error)
	SetPushEnabledFn func(context.Context, bool) error
	OverrideFn       func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	ResubmitFn       func(context.Context, int64) (*model.Order, error)
	ReconcileFn      func(context.Context) (model.ReconcileReport, error)
	PingFn           func(context.Context) error
}

// PushEnabled returns configured toggle state.
func (s AdminFacadeStub) PushEnabled(ctx context.Context) (bool, error) {
	if s.PushEnabledFn != nil {
		return s.PushEnabledFn(ctx)
	}
	return true, nil
}

// SetPushEnabled executes configured toggle handler.
func (s AdminFacadeStub) SetPushEnabled(ctx context.Context, enabled bool) error {
	if s.SetPushEnabledFn != nil {
		return s.SetPushEnabledFn(ctx, enabled)
	}
	return nil
}

// OverrideStatus returns an order in the requested status.
func (s AdminFacadeStub) OverrideStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.OverrideFn != nil {
		return s.OverrideFn(ctx, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// Resubmit returns a submitted order.
func (s AdminFacadeStub) Resubmit(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.ResubmitFn != nil {
		return s.ResubmitFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPending, APIStatus: model.APIStatusSuccess}, nil
}

// Reconcile returns an empty report.
func (s AdminFacadeStub) Reconcile(ctx context.Context) (model.ReconcileReport, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx)
	}
	return model.ReconcileReport{}, nil
}

// Ping reports storage health.
func (s AdminFacadeStub) Ping(ctx context.Context) error {
	if s.PingFn != nil {
		return s.PingFn(ctx)
	}
	return nil
}

// MartFacadeStub aggregates facade dependencies for HTTP layer tests.
type MartFacadeStub struct {
	AuthFacadeStub
	CartFacadeStub
	OrderFacadeStub
	WalletFacadeStub
	AdminFacadeStub
}

// SubmitterStub records orders handed to the submission worker.
type SubmitterStub struct {
	SubmitFn  func(context.Context, model.Order) model.APIStatus
	Submitted []model.Order
	mu        sync.Mutex
}

// Submit records the order and reports success.
func (s *SubmitterStub) Submit(ctx context.Context, order model.Order) model.APIStatus {
	s.mu.Lock()
	s.Submitted = append(s.Submitted, order)
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, order)
	}
	return model.APIStatusSuccess
}

// Count returns the number of recorded submissions.
func (s *SubmitterStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Submitted)
}

// ReconcilerStub counts sweeps.
type ReconcilerStub struct {
	ReconcileFn func(context.Context) (model.ReconcileReport, error)
	calls       int
	mu          sync.Mutex
}

// ReconcileAll records the sweep.
func (s *ReconcilerStub) ReconcileAll(ctx context.Context) (model.ReconcileReport, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx)
	}
	return model.ReconcileReport{}, nil
}

// Calls returns the number of sweeps run.
func (s *ReconcilerStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
