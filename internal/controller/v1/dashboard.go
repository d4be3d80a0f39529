package v1

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/session"
	"emisi.dev/backend/internal/server/svr"
	"emisi.dev/backend/internal/service"
	"emisi.dev/backend/internal/util/rekuest"
)

// NoDataMessage accompanies an empty table so clients can tell it apart from a failure.
const NoDataMessage = "no data matches filters"

type Dashboard struct {
	fx.In

	DashboardService *service.Dashboard
}

func RegisterDashboard(v1 *svr.V1, c Dashboard) {
	dashboard := v1.Group("/dashboard", session.Require)
	dashboard.Get("/students", tableHandler(c.DashboardService.Students))
	dashboard.Get("/transportation", tableHandler(c.DashboardService.Transportation))
	dashboard.Get("/electronics", tableHandler(c.DashboardService.Electronics))
	dashboard.Get("/food-waste", tableHandler(c.DashboardService.FoodWaste))
	dashboard.Get("/activities", tableHandler(c.DashboardService.Activities))
	dashboard.Get("/faculties", c.GetFaculties)
}

type TableResponse[T any] struct {
	Rows    []*T   `json:"rows"`
	Count   int    `json:"count"`
	Message string `json:"message,omitempty"`
}

func tableHandler[T any](read func(context.Context, *types.DashboardFilter) ([]*T, error)) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		filter, err := rekuest.ValidFilter(ctx)
		if err != nil {
			return err
		}

		rows, err := read(ctx.UserContext(), filter)
		if err != nil {
			return err
		}

		resp := TableResponse[T]{Rows: rows, Count: len(rows)}
		if len(rows) == 0 {
			resp.Message = NoDataMessage
		}
		return ctx.JSON(resp)
	}
}

func (c *Dashboard) GetFaculties(ctx *fiber.Ctx) error {
	faculties, err := c.DashboardService.Faculties(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"faculties": faculties,
	})
}
