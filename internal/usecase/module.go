package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/config"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCartUseCase,
	NewOrderUseCase,
	NewWalletUseCase,
	NewCheckoutUseCase,
	NewSubmissionUseCase,
	NewOrderNotifications,
	NewAdminUseCase,
	newFulfillmentPolicy,
	newSettingsUseCase,
	newReconcileUseCase,
	func(s *SettingsUseCase) PushToggle { return s },
)

func newFulfillmentPolicy(cfg *config.Config) model.FulfillmentPolicy {
	return model.NewFulfillmentPolicy(cfg.InstantNetworks)
}

func newSettingsUseCase(cfg *config.Config, repo repository.SettingsRepository) *SettingsUseCase {
	return NewSettingsUseCase(repo, cfg.PushEnabledDefault)
}

func newReconcileUseCase(
	cfg *config.Config,
	orders repository.OrderRepository,
	provider ProviderGateway,
	notify *OrderNotifications,
	logger *slog.Logger,
	m *metrics.Metrics,
) *ReconcileUseCase {
	return NewReconcileUseCase(orders, provider, notify, cfg.ReconcileBatch, logger, m)
}
