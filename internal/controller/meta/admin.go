package meta

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/emerr"
	"emisi.dev/backend/internal/server/svr"
	"emisi.dev/backend/internal/service"
	"emisi.dev/backend/internal/util/rekuest"
)

type AdminController struct {
	fx.In

	AdminService   *service.Admin
	AccountService *service.Account
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Post("/etl", c.RunETL)
	admin.Get("/etl/runs", c.GetETLRuns)
	admin.Post("/users", c.CreateUser)
	admin.Delete("/cache", c.PurgeCache)
}

func (c *AdminController) RunETL(ctx *fiber.Ctx) error {
	var request types.RunETLRequest
	if len(ctx.Body()) > 0 {
		if err := rekuest.ValidBody(ctx, &request); err != nil {
			return err
		}
	}

	run, err := c.AdminService.RunETL(ctx.UserContext(), request.Source)
	if errors.Is(err, service.ErrETLRunning) {
		return emerr.ErrConflict.Msg("an etl run is already in progress")
	}
	if err != nil && run == nil {
		return err
	}
	// a failed run is still reported with its audit record
	return ctx.JSON(run)
}

func (c *AdminController) GetETLRuns(ctx *fiber.Ctx) error {
	limit := 20
	if q := ctx.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 100 {
			return emerr.ErrInvalidReq.Msg("limit must be between 1 and 100")
		}
		limit = n
	}

	runs, err := c.AdminService.RecentETLRuns(ctx.UserContext(), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"runs": runs,
	})
}

func (c *AdminController) CreateUser(ctx *fiber.Ctx) error {
	var request types.CreateUserRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	created, err := c.AccountService.CreateUser(ctx.UserContext(), request.Username, request.Password, request.IsAdmin)
	if err != nil {
		return err
	}
	if !created {
		return emerr.ErrConflict.Msg("username %q is taken", request.Username)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"username": request.Username,
		"isAdmin":  request.IsAdmin,
	})
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request types.PurgeCacheRequest
	if err := ctx.QueryParser(&request); err != nil {
		return emerr.ErrInvalidReq.Msg("invalid query: %v", err)
	}
	if err := rekuest.ValidStruct(ctx, &request); err != nil {
		return err
	}

	if err := c.AdminService.PurgeCache(request.Name); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
