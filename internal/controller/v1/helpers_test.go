package v1

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/emerr"
	"emisi.dev/backend/internal/pkg/session"
	"emisi.dev/backend/internal/server/svr"
)

type memAccounts map[string]*model.Account

func (m memAccounts) GetAccountByUsername(_ context.Context, username string) (*model.Account, error) {
	a, ok := m[username]
	if !ok {
		return nil, emerr.ErrNotFound
	}
	return a, nil
}

func (m memAccounts) CreateAccount(_ context.Context, account *model.Account) (bool, error) {
	if _, ok := m[account.Username]; ok {
		return false, nil
	}
	m[account.Username] = account
	return true, nil
}

type listerFunc[T any] func(ctx context.Context, filter *types.DashboardFilter) ([]*T, error)

func (f listerFunc[T]) List(ctx context.Context, filter *types.DashboardFilter) ([]*T, error) {
	return f(ctx, filter)
}

// testApp mounts the v1 group behind an in-memory session store. register may add routes to it.
func testApp(t *testing.T, register func(v1 *svr.V1, sessions *session.Manager)) *fiber.App {
	t.Helper()

	sessions := session.NewManager(nil, time.Hour, false)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*emerr.EmisiError); ok {
				return c.Status(e.StatusCode).JSON(e)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(sessions.Inject())
	// test-only shortcut to obtain a session cookie
	app.Post("/test/login", func(c *fiber.Ctx) error {
		return sessions.Login(c, &session.Session{AccountID: 1, Username: "viewer"})
	})
	register(&svr.V1{Router: app.Group("/api/v1")}, sessions)
	return app
}

func loginCookie(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/test/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := resp.Header.Get(fiber.HeaderSetCookie)
	require.NotEmpty(t, cookie)
	return strings.SplitN(cookie, ";", 2)[0]
}

func do(t *testing.T, app *fiber.App, method, path, cookie, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}
