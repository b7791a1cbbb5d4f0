package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, phone string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CartFacade manages the customer's cart.
type CartFacade interface {
	AddCartLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error)
	CartLines(ctx context.Context, userID int64) ([]model.CartLine, error)
	RemoveCartLine(ctx context.Context, userID, lineID int64) error
}

// OrderFacade encapsulates checkout and order reads exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64) ([]model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
}

// WalletFacade provides wallet related operations.
type WalletFacade interface {
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	Transactions(ctx context.Context, userID int64) ([]model.Transaction, error)
	TopUp(ctx context.Context, userID int64, reference string) (*model.Transaction, error)
}

// AdminFacade holds operator actions.
type AdminFacade interface {
	PushEnabled(ctx context.Context) (bool, error)
	SetPushEnabled(ctx context.Context, enabled bool) error
	OverrideStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
	Resubmit(ctx context.Context, orderID int64) (*model.Order, error)
	Reconcile(ctx context.Context) (model.ReconcileReport, error)
}

// HealthFacade reports whether dependencies are reachable.
type HealthFacade interface {
	Ping(ctx context.Context) error
}

// MartFacade aggregates the full set of operations used across handlers.
type MartFacade interface {
	AuthFacade
	CartFacade
	OrderFacade
	WalletFacade
	AdminFacade
	HealthFacade
}
