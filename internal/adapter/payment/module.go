package payment

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/config"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

// Verifier is satisfied by HTTPVerifier and DisabledVerifier.
type Verifier interface {
	Verify(ctx context.Context, reference string) (*model.PaymentVerification, error)
}

// Module exposes the payment verifier to the fx graph.
var Module = fx.Provide(newVerifier)

type verifierParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func newVerifier(p verifierParams) (Verifier, error) {
	if p.Config.PaymentBaseURL == "" {
		p.Logger.Warn("payment gateway not configured, wallet top-ups are disabled")
		return DisabledVerifier{}, nil
	}
	return NewHTTPVerifier(p.Config.PaymentBaseURL, p.Config.PaymentSecretKey, p.Logger, p.Metrics)
}
