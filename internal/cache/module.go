package cache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/config"
)

const reconcileLockKey = "bundlemart:reconcile:lock"

// Module provides the optional Redis client and the reconciliation sweep lock.
var Module = fx.Options(
	fx.Provide(newRedis, newSweepLock),
	fx.Invoke(registerLifecycle),
)

type redisParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newRedis(p redisParams) *Redis {
	if p.Config.RedisAddr == "" {
		return nil
	}
	return New(Config{
		Addr:     p.Config.RedisAddr,
		Password: p.Config.RedisPassword,
		DB:       p.Config.RedisDB,
	}, p.Logger)
}

func newSweepLock(cfg *config.Config, r *Redis, logger *slog.Logger) SweepLock {
	if r == nil {
		logger.Info("redis not configured, reconciliation lock is process local")
		return &LocalLock{}
	}
	return NewRedisLock(r.Client(), reconcileLockKey, cfg.ReconcileInterval)
}

func registerLifecycle(lc fx.Lifecycle, r *Redis) {
	if r == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return r.Close()
		},
	})
}
