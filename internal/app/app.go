package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/bundlemart/internal/cache"
	"github.com/polkiloo/bundlemart/internal/config"
	"github.com/polkiloo/bundlemart/internal/usecase"
	"github.com/polkiloo/bundlemart/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewMartFacade,
		newHTTPServer,
		newSubmissionDispatcher,
		newReconcileScheduler,
		func(d *worker.SubmissionDispatcher) usecase.SubmissionQueue { return d },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Submission *usecase.SubmissionUseCase
	Config     *config.Config
	Logger     *slog.Logger
}

func newSubmissionDispatcher(p dispatcherParams) *worker.SubmissionDispatcher {
	return worker.NewSubmissionDispatcher(
		p.Submission,
		p.Config.SubmitWorkers,
		p.Config.SubmitQueueSize,
		p.Logger,
	)
}

type schedulerParams struct {
	fx.In

	Facade *MartFacade
	Lock   cache.SweepLock
	Config *config.Config
	Logger *slog.Logger
}

func newReconcileScheduler(p schedulerParams) *worker.ReconcileScheduler {
	return worker.NewReconcileScheduler(p.Facade, p.Lock, p.Config.ReconcileInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.SubmissionDispatcher
	Scheduler  *worker.ReconcileScheduler
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting bundlemart", slog.String("addr", p.Server.Addr))
			// fx cancels the start context once startup completes
			runCtx := context.WithoutCancel(ctx)
			p.Dispatcher.Start(runCtx)
			p.Scheduler.Start(runCtx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Scheduler.Stop()
			p.Dispatcher.Stop()

			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("bundlemart stopped")
			return nil
		},
	})
}
