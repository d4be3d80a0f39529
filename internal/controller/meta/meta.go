package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	"emisi.dev/backend/internal/pkg/bininfo"
	"emisi.dev/backend/internal/server/svr"
	"emisi.dev/backend/internal/service"
)

type Meta struct {
	fx.In

	HealthService *service.Health
	AdminService  *service.Admin
}

func RegisterMeta(meta *svr.Meta, c Meta) {
	meta.Get("/bininfo", c.BinInfo)

	meta.Get("/health", cache.New(cache.Config{
		// cache it for a second to mitigate potential DDoS
		Expiration: time.Second,
	}), c.Health)
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version": bininfo.Version,
		"build":   bininfo.BuildTime,
	})
}

func (c *Meta) Health(ctx *fiber.Ctx) error {
	if err := c.HealthService.Ping(ctx.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}

	resp := fiber.Map{
		"status": "ok",
	}
	// a stale or empty dataset is reported but does not fail the health check
	run, err := c.AdminService.LatestETLRun(ctx.UserContext())
	if err != nil {
		resp["lastEtl"] = fiber.Map{"error": "unavailable"}
	} else if run != nil {
		resp["lastEtl"] = fiber.Map{
			"status":     run.Status,
			"startedAt":  run.StartedAt,
			"finishedAt": run.FinishedAt,
		}
	}
	if n, err := c.AdminService.Respondents(ctx.UserContext()); err == nil {
		resp["respondents"] = n
	}
	return ctx.JSON(resp)
}
