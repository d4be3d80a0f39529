package session

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emisi.dev/backend/internal/pkg/emerr"
)

func newTestApp(t *testing.T, isAdmin bool) *fiber.App {
	t.Helper()

	// nil storage falls back to fiber's in-memory store
	m := NewManager(nil, time.Hour, false)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*emerr.EmisiError); ok {
				return c.SendStatus(e.StatusCode)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(m.Inject())
	app.Post("/login", func(c *fiber.Ctx) error {
		return m.Login(c, &Session{AccountID: 7, Username: "admin", IsAdmin: isAdmin})
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		return m.Logout(c)
	})
	app.Get("/me", Require, func(c *fiber.Ctx) error {
		return c.JSON(FromCtx(c))
	})
	app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := resp.Header.Get(fiber.HeaderSetCookie)
	require.NotEmpty(t, cookie)
	return cookie
}

func get(t *testing.T, app *fiber.App, path, cookie string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAnonymousIsRejected(t *testing.T) {
	app := newTestApp(t, false)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin", ""))
}

func TestLoggedInUser(t *testing.T) {
	app := newTestApp(t, false)
	cookie := login(t, app)

	assert.Equal(t, fiber.StatusOK, get(t, app, "/me", cookie))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin", cookie))
}

func TestLoggedInAdmin(t *testing.T) {
	app := newTestApp(t, true)
	cookie := login(t, app)

	assert.Equal(t, fiber.StatusNoContent, get(t, app, "/admin", cookie))
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, IsAdmin(nil))
	assert.False(t, IsAdmin(&Session{}))
	assert.True(t, IsAdmin(&Session{IsAdmin: true}))
}
