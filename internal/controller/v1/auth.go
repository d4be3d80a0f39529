package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/emerr"
	"emisi.dev/backend/internal/pkg/flog"
	"emisi.dev/backend/internal/pkg/session"
	"emisi.dev/backend/internal/server/svr"
	"emisi.dev/backend/internal/service"
	"emisi.dev/backend/internal/util/rekuest"
)

type Auth struct {
	fx.In

	AccountService *service.Account
	Sessions       *session.Manager
}

func RegisterAuth(v1 *svr.V1, c Auth) {
	auth := v1.Group("/auth")
	auth.Post("/login", c.Login)
	auth.Post("/logout", c.Logout)
	auth.Get("/me", session.Require, c.Me)
}

func (c *Auth) Login(ctx *fiber.Ctx) error {
	var request types.LoginRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	account, err := c.AccountService.Authenticate(ctx.UserContext(), request.Username, request.Password)
	if err != nil {
		return err
	}
	if account == nil {
		flog.WarnFrom(ctx).
			Str("evt.name", "auth.login.rejected").
			Str("username", request.Username).
			Msg("rejected login attempt")
		return emerr.ErrUnauthorized.Msg("invalid username or password")
	}

	s := &session.Session{
		AccountID: account.AccountID,
		Username:  account.Username,
		IsAdmin:   account.IsAdmin,
	}
	if err := c.Sessions.Login(ctx, s); err != nil {
		return err
	}
	return ctx.JSON(s)
}

func (c *Auth) Logout(ctx *fiber.Ctx) error {
	if err := c.Sessions.Logout(ctx); err != nil {
		return err
	}
	flog.DebugFrom(ctx).Str("evt.name", "auth.logout").Msg("session destroyed")
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *Auth) Me(ctx *fiber.Ctx) error {
	return ctx.JSON(session.FromCtx(ctx))
}
