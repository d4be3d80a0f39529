package httpserver

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/helmet/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"emisi.dev/backend/internal/app/appconfig"
	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/pkg/bininfo"
	"emisi.dev/backend/internal/pkg/fiberstore"
	"emisi.dev/backend/internal/pkg/middlewares"
	"emisi.dev/backend/internal/pkg/observability"
	"emisi.dev/backend/internal/pkg/session"
)

var registerPromOnce sync.Once

// Sessions stores login sessions in redis.
func Sessions(conf *appconfig.Config, client *redis.Client) *session.Manager {
	return session.NewManager(
		fiberstore.NewRedis(client, constant.SessionStorePrefix),
		conf.SessionExpiration,
		!conf.DevMode,
	)
}

func Create(conf *appconfig.Config, sessions *session.Manager) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Emisi Backend",
		ServerHeader: fmt.Sprintf("Emisi/%s", bininfo.Version),
		// the report endpoint renders from a full table scan
		ReadTimeout:    time.Second * 60,
		WriteTimeout:   time.Second * 60,
		ReadBufferSize: 8192,
		// allow possibility for graceful shutdown, otherwise app#Shutdown() will block forever
		IdleTimeout:             conf.HTTPServerShutdownTimeout,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          conf.TrustedProxies,
		ErrorHandler:            ErrorHandler,
		Immutable:               true,
		JSONEncoder:             json.Marshal,
		JSONDecoder:             json.Unmarshal,
	})

	app.Use(favicon.New())
	app.Use(fibersentry.New(fibersentry.Config{
		Repanic: true,
		Timeout: time.Second * 5,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowHeaders:     "Content-Type, Accept-Language, X-Requested-With, sentry-trace",
		ExposeHeaders:    "Content-Type, Content-Disposition, " + constant.RequestIDHeader,
		AllowCredentials: true,
	}))
	middlewares.Logger(app)
	// the logger middleware injects RequestID into the context,
	// and we need an extra middleware to extract it and repopulate it into ctx.Locals
	app.Use(middlewares.RequestID())

	app.Use(helmet.New(helmet.Config{
		HSTSMaxAge:         31356000,
		HSTSPreloadEnabled: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		PermissionPolicy:   "interest-cohort=()",
	}))
	app.Use(middlewares.InjectI18n())
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			buf := make([]byte, 4096)
			buf = buf[:runtime.Stack(buf, false)]
			log.Error().Str("evt.name", "http.panic").Msgf("panic: %v\n%s\n", e, buf)
		},
	}))
	registerPromOnce.Do(func() {
		fiberprom := fiberprometheus.New(observability.ServiceName)
		fiberprom.RegisterAt(app, "/metrics")
		app.Use(fiberprom.Middleware)
	})

	app.Use(sessions.Inject())

	if conf.DevMode {
		log.Info().Msg("running in DEV mode")
		app.Use(pprof.New())
	} else {
		app.Use(middlewares.EnrichSentry())
	}

	app.Use(limiter.New(limiter.Config{
		// password guessing is the only thing worth throttling
		Next: func(c *fiber.Ctx) bool {
			return c.Path() != "/api/v1/auth/login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    "TOO_MANY_REQUESTS",
				"message": "too many login attempts, try again later",
			})
		},
		Max:        10,
		Expiration: time.Minute,
	}))

	return app
}
