package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/config"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
	"github.com/polkiloo/bundlemart/internal/storage/memory"
	"github.com/polkiloo/bundlemart/internal/storage/postgres"
)

// Module wires the configured storage driver and its repository adapters.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.CartRepository { return f.Carts() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.WalletRepository { return f.Wallets() },
		func(f repository.Factory) repository.LedgerRepository { return f.Ledger() },
		func(f repository.Factory) repository.SettingsRepository { return f.Settings() },
	),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.StorageDriver == config.StorageDriverMemory {
		p.Logger.Warn("using in-memory storage, data will not survive a restart")
		return memory.New(), nil
	}
	storage, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger.With("component", "postgres"))
	if err != nil {
		return nil, err
	}
	return storage, nil
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			factory.Close()
			return nil
		},
	})
}
