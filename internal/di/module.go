package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/adapter/notifier"
	"github.com/polkiloo/bundlemart/internal/adapter/payment"
	"github.com/polkiloo/bundlemart/internal/adapter/provider"
	"github.com/polkiloo/bundlemart/internal/app"
	"github.com/polkiloo/bundlemart/internal/cache"
	"github.com/polkiloo/bundlemart/internal/config"
	"github.com/polkiloo/bundlemart/internal/logger"
	"github.com/polkiloo/bundlemart/internal/metrics"
	"github.com/polkiloo/bundlemart/internal/pkg/auth"
	"github.com/polkiloo/bundlemart/internal/server/http/handlers"
	"github.com/polkiloo/bundlemart/internal/server/http/middleware"
	"github.com/polkiloo/bundlemart/internal/server/http/router"
	"github.com/polkiloo/bundlemart/internal/storage"
	"github.com/polkiloo/bundlemart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		cache.Module,
		storage.Module,
		provider.Module,
		payment.Module,
		notifier.Module,
		usecase.Module,
		fx.Provide(
			func(c *provider.HTTPClient) usecase.ProviderGateway { return c },
			func(n notifier.Notifier) usecase.Notifier { return n },
			func(v payment.Verifier) usecase.PaymentVerifier { return v },
			func(f *app.MartFacade) handlers.MartFacade { return f },
			func(v *auth.AdminKeyVerifier) middleware.AdminKeyChecker { return v },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
