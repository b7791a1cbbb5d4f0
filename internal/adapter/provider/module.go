package provider

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/config"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

// Module exposes the provider gateway client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func newClient(p clientParams) (*HTTPClient, error) {
	catalog, err := LoadCatalog(p.Config.ProviderCatalogFile)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("provider catalog loaded", slog.Int("version", catalog.Version), slog.Int("networks", len(catalog.Networks)))
	return NewHTTPClient(Config{
		BaseURL: p.Config.ProviderBaseURL,
		APIKey:  p.Config.ProviderAPIKey,
		Timeout: p.Config.ProviderTimeout,
	}, catalog, p.Logger, p.Metrics)
}
