// Package session keeps the logged in account of a request. Handlers receive the
// resolved *Session explicitly instead of reaching into a global.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"

	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/pkg/emerr"
)

const (
	keyAccountID = "account_id"
	keyUsername  = "username"
	keyIsAdmin   = "is_admin"
)

// Session is the authenticated identity of a request.
type Session struct {
	AccountID int    `json:"accountId"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"isAdmin"`
}

// IsAdmin reports whether s belongs to an administrator. A nil session is not.
func IsAdmin(s *Session) bool {
	return s != nil && s.IsAdmin
}

type Manager struct {
	store *fibersession.Store
}

func NewManager(storage fiber.Storage, expiration time.Duration, secure bool) *Manager {
	return &Manager{
		store: fibersession.New(fibersession.Config{
			Expiration:     expiration,
			Storage:        storage,
			KeyLookup:      "cookie:" + constant.SessionCookieName,
			CookieHTTPOnly: true,
			CookieSecure:   secure,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
	}
}

// Login binds s to a fresh session id.
func (m *Manager) Login(c *fiber.Ctx, s *Session) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return errors.Wrap(err, "session: get")
	}
	if err = sess.Regenerate(); err != nil {
		return errors.Wrap(err, "session: regenerate")
	}
	sess.Set(keyAccountID, s.AccountID)
	sess.Set(keyUsername, s.Username)
	sess.Set(keyIsAdmin, s.IsAdmin)
	return sess.Save()
}

func (m *Manager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return errors.Wrap(err, "session: get")
	}
	return sess.Destroy()
}

// Load returns the session of the request, or nil when it is anonymous.
func (m *Manager) Load(c *fiber.Ctx) (*Session, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, errors.Wrap(err, "session: get")
	}
	id, ok := sess.Get(keyAccountID).(int)
	if !ok {
		return nil, nil
	}
	username, _ := sess.Get(keyUsername).(string)
	isAdmin, _ := sess.Get(keyIsAdmin).(bool)
	return &Session{AccountID: id, Username: username, IsAdmin: isAdmin}, nil
}

// Inject resolves the session once per request and stores it in the request locals.
func (m *Manager) Inject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := m.Load(c)
		if err != nil {
			return err
		}
		if s != nil {
			c.Locals(constant.ContextKeySession, s)
		}
		return c.Next()
	}
}

// FromCtx returns the session injected into c, or nil.
func FromCtx(c *fiber.Ctx) *Session {
	s, _ := c.Locals(constant.ContextKeySession).(*Session)
	return s
}

// Require rejects anonymous requests.
func Require(c *fiber.Ctx) error {
	if FromCtx(c) == nil {
		return emerr.ErrUnauthorized
	}
	return c.Next()
}

// RequireAdmin rejects requests not made by an administrator.
func RequireAdmin(c *fiber.Ctx) error {
	s := FromCtx(c)
	if s == nil {
		return emerr.ErrUnauthorized
	}
	if !IsAdmin(s) {
		return emerr.ErrForbidden
	}
	return c.Next()
}
