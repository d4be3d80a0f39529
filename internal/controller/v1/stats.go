package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"emisi.dev/backend/internal/pkg/session"
	"emisi.dev/backend/internal/server/svr"
	"emisi.dev/backend/internal/service"
	"emisi.dev/backend/internal/util/rekuest"
)

type Stats struct {
	fx.In

	StatisticsService *service.Statistics
}

func RegisterStats(v1 *svr.V1, c Stats) {
	stats := v1.Group("/stats", session.Require)
	stats.Get("/summary", c.GetSummary)
	stats.Get("/outliers", c.GetOutliers)
	stats.Get("/profiles", c.GetProfiles)
	stats.Get("/peak", c.GetPeak)
	stats.Get("/faculties", c.GetFaculties)
}

func (c *Stats) GetSummary(ctx *fiber.Ctx) error {
	filter, err := rekuest.ValidFilter(ctx)
	if err != nil {
		return err
	}
	summary, err := c.StatisticsService.Summary(ctx.UserContext(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(summary)
}

func (c *Stats) GetOutliers(ctx *fiber.Ctx) error {
	filter, err := rekuest.ValidFilter(ctx)
	if err != nil {
		return err
	}
	// unknown categories are rejected by the service
	report, err := c.StatisticsService.Outliers(ctx.UserContext(), filter, ctx.Query("category"))
	if err != nil {
		return err
	}
	return ctx.JSON(report)
}

func (c *Stats) GetProfiles(ctx *fiber.Ctx) error {
	filter, err := rekuest.ValidFilter(ctx)
	if err != nil {
		return err
	}
	report, err := c.StatisticsService.Profiles(ctx.UserContext(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(report)
}

func (c *Stats) GetPeak(ctx *fiber.Ctx) error {
	filter, err := rekuest.ValidFilter(ctx)
	if err != nil {
		return err
	}
	report, err := c.StatisticsService.Peak(ctx.UserContext(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(report)
}

func (c *Stats) GetFaculties(ctx *fiber.Ctx) error {
	filter, err := rekuest.ValidFilter(ctx)
	if err != nil {
		return err
	}
	report, err := c.StatisticsService.Faculties(ctx.UserContext(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(report)
}
