package httpserver

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"

	"emisi.dev/backend/internal/pkg/emerr"
	"emisi.dev/backend/internal/pkg/flog"
	"emisi.dev/backend/internal/pkg/session"
)

func HandleCustomError(ctx *fiber.Ctx, e *emerr.EmisiError) error {
	flog.WarnFrom(ctx).
		Err(e).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	if e, ok := err.(*emerr.EmisiError); ok {
		return HandleCustomError(ctx, e)
	}

	// Default 500 statuscode
	re := *emerr.ErrInternalError

	if e, ok := err.(*fiber.Error); ok {
		re.StatusCode = e.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = e.Message
		if e.Code < fiber.StatusInternalServerError {
			return HandleCustomError(ctx, &re)
		}
	}

	flog.ErrorFrom(ctx).
		Stack().
		Err(err).
		Int("status", re.StatusCode).
		Msg("internal server error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		if s := session.FromCtx(ctx); s != nil {
			hub.Scope().SetUser(sentry.User{
				ID:       strconv.Itoa(s.AccountID),
				Username: s.Username,
			})
		}
		hub.CaptureException(err)
	}

	return HandleCustomError(ctx, &re)
}
