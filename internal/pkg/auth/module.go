package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Provide(
	newPasswordHasher,
	newTokenStrategy,
	newAdminKeyVerifier,
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewSignedTokenStrategy(p.Config.JWTSecret, Options{})
}

func newAdminKeyVerifier(p strategyParams) *AdminKeyVerifier {
	return NewAdminKeyVerifier(p.Config.AdminKeyHash)
}
