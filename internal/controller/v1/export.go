package v1

import (
	"bufio"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"emisi.dev/backend/internal/pkg/emerr"
	"emisi.dev/backend/internal/pkg/session"
	"emisi.dev/backend/internal/server/svr"
	"emisi.dev/backend/internal/service"
	"emisi.dev/backend/internal/util/rekuest"
)

type Export struct {
	fx.In

	ExportService *service.Export
	ReportService *service.Report
}

func RegisterExport(v1 *svr.V1, c Export) {
	export := v1.Group("/export", session.Require)
	export.Get("/report.html", c.GetReport)
	export.Get("/:table.csv", c.GetCSV)
}

func (c *Export) GetCSV(ctx *fiber.Ctx) error {
	table := ctx.Params("table")
	if err := rekuest.ValidVar(ctx, table, "required,max=32"); err != nil {
		return err
	}
	filter, err := rekuest.ValidFilter(ctx)
	if err != nil {
		return err
	}

	// render into the body before touching headers so a failure still yields a JSON error
	w := bufio.NewWriter(ctx.Response().BodyWriter())
	if err := c.ExportService.WriteCSV(ctx.UserContext(), w, table, filter); err != nil {
		ctx.Response().ResetBody()
		return err
	}
	if err := w.Flush(); err != nil {
		return emerr.ErrInternalError.Msg("flush export: %v", err)
	}

	ctx.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, table))
	return nil
}

func (c *Export) GetReport(ctx *fiber.Ctx) error {
	filter, err := rekuest.ValidFilter(ctx)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(ctx.Response().BodyWriter())
	if err := c.ReportService.WriteHTML(ctx.UserContext(), w, filter); err != nil {
		ctx.Response().ResetBody()
		return err
	}
	if err := w.Flush(); err != nil {
		return emerr.ErrInternalError.Msg("flush report: %v", err)
	}

	ctx.Type("html", "utf-8")
	return nil
}
