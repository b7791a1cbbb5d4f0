package metrics

import (
	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/config"
)

// Module provides the service metrics.
var Module = fx.Provide(newMetrics)

func newMetrics(cfg *config.Config) *Metrics {
	return New(cfg.MetricsNamespace)
}
