package app

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
	"github.com/polkiloo/bundlemart/internal/usecase"
)

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MartFacade is the single entry point the HTTP layer and the workers use.
type MartFacade struct {
	auth       *usecase.AuthUseCase
	cart       *usecase.CartUseCase
	checkout   *usecase.CheckoutUseCase
	orders     *usecase.OrderUseCase
	wallet     *usecase.WalletUseCase
	reconciler *usecase.ReconcileUseCase
	admin      *usecase.AdminUseCase
	storage    Pinger
}

// FacadeParams groups the use cases behind the facade.
type FacadeParams struct {
	fx.In

	Auth       *usecase.AuthUseCase
	Cart       *usecase.CartUseCase
	Checkout   *usecase.CheckoutUseCase
	Orders     *usecase.OrderUseCase
	Wallet     *usecase.WalletUseCase
	Reconciler *usecase.ReconcileUseCase
	Admin      *usecase.AdminUseCase
	Storage    repository.Factory
}

func NewMartFacade(p FacadeParams) *MartFacade {
	return &MartFacade{
		auth:       p.Auth,
		cart:       p.Cart,
		checkout:   p.Checkout,
		orders:     p.Orders,
		wallet:     p.Wallet,
		reconciler: p.Reconciler,
		admin:      p.Admin,
		storage:    p.Storage,
	}
}

func (f *MartFacade) Register(ctx context.Context, login, password, phone string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, phone)
	return token, err
}

func (f *MartFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MartFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MartFacade) AddCartLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
	return f.cart.AddLine(ctx, userID, line)
}

func (f *MartFacade) CartLines(ctx context.Context, userID int64) ([]model.CartLine, error) {
	return f.cart.Lines(ctx, userID)
}

func (f *MartFacade) RemoveCartLine(ctx context.Context, userID, lineID int64) error {
	return f.cart.RemoveLine(ctx, userID, lineID)
}

func (f *MartFacade) Checkout(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.checkout.Checkout(ctx, userID)
}

func (f *MartFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *MartFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *MartFacade) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	balance, err := f.wallet.Balance(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return balance, nil
}

func (f *MartFacade) Transactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return f.wallet.Transactions(ctx, userID)
}

func (f *MartFacade) TopUp(ctx context.Context, userID int64, reference string) (*model.Transaction, error) {
	return f.wallet.TopUp(ctx, userID, reference)
}

func (f *MartFacade) ReconcileAll(ctx context.Context) (model.ReconcileReport, error) {
	return f.reconciler.ReconcileAll(ctx)
}

func (f *MartFacade) PushEnabled(ctx context.Context) (bool, error) {
	return f.admin.PushEnabled(ctx)
}

func (f *MartFacade) SetPushEnabled(ctx context.Context, enabled bool) error {
	return f.admin.SetPushEnabled(ctx, enabled)
}

func (f *MartFacade) OverrideStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	return f.admin.OverrideStatus(ctx, orderID, status)
}

func (f *MartFacade) Resubmit(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.admin.Resubmit(ctx, orderID)
}

func (f *MartFacade) Reconcile(ctx context.Context) (model.ReconcileReport, error) {
	return f.admin.Reconcile(ctx)
}

func (f *MartFacade) Ping(ctx context.Context) error {
	if f.storage == nil {
		return nil
	}
	return f.storage.Ping(ctx)
}
