package middlewares

import (
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"

	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/pkg/session"
)

// EnrichSentry tags the request scoped sentry hub with the request id and the logged in account.
func EnrichSentry() func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if hub := fibersentry.GetHubFromContext(c); hub != nil {
			if id, ok := c.Locals(constant.ContextKeyRequestID).(string); ok {
				hub.Scope().SetTag("request_id", id)
			}
			if sess := session.FromCtx(c); sess != nil {
				hub.Scope().SetTag("username", sess.Username)
			}
		}
		return c.Next()
	}
}
