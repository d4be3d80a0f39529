package svr

import (
	"github.com/gofiber/fiber/v2"

	"emisi.dev/backend/internal/pkg/session"
)

// V1 is /api/v1. Session requirements are declared per sub group, since
// middleware of a fiber group applies to every route under its prefix.
type V1 struct {
	fiber.Router
}

// Admin requires an administrator session on every route.
type Admin struct {
	fiber.Router
}

// Meta serves operational endpoints at the root.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*V1, *Admin, *Meta) {
	v1 := app.Group("/api/v1")
	admin := app.Group("/api/_/admin", session.RequireAdmin)

	return &V1{Router: v1}, &Admin{Router: admin}, &Meta{Router: app}
}
