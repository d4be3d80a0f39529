package app

import (
	"context"
	"time"

	"go.uber.org/fx"

	"emisi.dev/backend/internal/app/appconfig"
	"emisi.dev/backend/internal/app/appcontext"
	"emisi.dev/backend/internal/controller"
	"emisi.dev/backend/internal/infra"
	"emisi.dev/backend/internal/model/cache"
	"emisi.dev/backend/internal/pkg/logger"
	"emisi.dev/backend/internal/repo"
	"emisi.dev/backend/internal/server"
	"emisi.dev/backend/internal/service"
	"emisi.dev/backend/internal/workers/etlwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Repositories
		repo.Module(),

		// Global Singleton Inits: Keep those before services to ensure they are initialized
		// before services read the cache globals.
		fx.Invoke(infra.SentryInit),
		fx.Invoke(cache.Initialize),
		fx.Invoke(migrate),

		// Services
		service.Module(),
	}

	if ctx.Env == appcontext.EnvServer {
		baseOpts = append(baseOpts,
			// Servers
			server.Module(),

			// Controllers
			controller.Module(),

			// Workers
			fx.Invoke(etlwkr.Start),
		)
	}

	baseOpts = append(baseOpts,
		// fx Extra Options
		fx.StartTimeout(10*time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5*time.Minute),
	)

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}

func migrate(conf *appconfig.Config, schema *repo.Schema, lc fx.Lifecycle) {
	if !conf.PostgresAutoMigrate || conf.AppContext.Env == appcontext.EnvCLI {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return schema.Migrate(ctx)
		},
	})
}
