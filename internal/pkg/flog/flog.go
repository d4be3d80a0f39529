// Package flog carries a request scoped zerolog logger through fiber handlers.
package flog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type idKey struct{}

// FromFiberCtx gets the logger in the request's context.
func FromFiberCtx(c *fiber.Ctx) *zerolog.Logger {
	return log.Ctx(c.UserContext())
}

// NewHandlerMiddleware injects a copy of l into every request context.
func NewHandlerMiddleware(l zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// copy so that UpdateContext never races between requests
		reqLogger := l.With().Logger()
		c.SetUserContext(reqLogger.WithContext(c.UserContext()))
		return c.Next()
	}
}

// Field adds the value extracted from the request to the request logger under fieldKey.
func Field(fieldKey string, extract func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := extract(c)
		FromFiberCtx(c).UpdateContext(func(lc zerolog.Context) zerolog.Context {
			return lc.Str(fieldKey, value)
		})
		return c.Next()
	}
}

func IP(c *fiber.Ctx) string        { return c.IP() }
func Method(c *fiber.Ctx) string    { return c.Method() }
func Path(c *fiber.Ctx) string      { return c.Path() }
func UserAgent(c *fiber.Ctx) string { return c.Get(fiber.HeaderUserAgent) }

// IDFromFiberCtx returns the request id of c, if any.
func IDFromFiberCtx(c *fiber.Ctx) (id xid.ID, ok bool) {
	if c == nil {
		return
	}
	return IDFromCtx(c.UserContext())
}

// IDFromCtx returns the request id carried by ctx, if any.
func IDFromCtx(ctx context.Context) (id xid.ID, ok bool) {
	id, ok = ctx.Value(idKey{}).(xid.ID)
	return
}

func CtxWithID(ctx context.Context, id xid.ID) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// RequestIDHandler assigns an xid to every request, logs it under fieldKey and echoes
// it in headerName when not empty.
func RequestIDHandler(fieldKey, headerName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IDFromFiberCtx(c)
		if !ok {
			id = xid.New()
			c.SetUserContext(CtxWithID(c.UserContext(), id))
		}
		if fieldKey != "" {
			FromFiberCtx(c).UpdateContext(func(lc zerolog.Context) zerolog.Context {
				return lc.Str(fieldKey, id.String())
			})
		}
		if headerName != "" {
			c.Set(headerName, id.String())
		}
		return c.Next()
	}
}

// AccessHandler calls f after each request with the time it took.
func AccessHandler(f func(c *fiber.Ctx, duration time.Duration)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		f(c, time.Since(start))
		return err
	}
}

func DebugFrom(c *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(c).Debug()
}

func InfoFrom(c *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(c).Info()
}

func WarnFrom(c *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(c).Warn()
}

func ErrorFrom(c *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(c).Error()
}
