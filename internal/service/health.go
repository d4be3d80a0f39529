package service

import (
	"context"
	"sort"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

var ErrUnhealthy = errors.New("dependencies not reachable")

type Health struct {
	checks map[string]func(ctx context.Context) error
}

func NewHealth(db *bun.DB, redis *redis.Client, nc *nats.Conn) *Health {
	return NewHealthWithChecks(map[string]func(ctx context.Context) error{
		"database": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redis.Ping(ctx).Err()
		},
		// nats pings on its own every 20 seconds, see infra/nats.go
		"nats": func(context.Context) error {
			status := nc.Status()
			if status != nats.CONNECTED && status != nats.DRAINING_PUBS && status != nats.DRAINING_SUBS {
				return errors.New(status.String())
			}
			return nil
		},
	})
}

func NewHealthWithChecks(checks map[string]func(ctx context.Context) error) *Health {
	return &Health{checks: checks}
}

// Ping runs every check and names the failing components in the returned error.
func (s *Health) Ping(ctx context.Context) error {
	var failed []string
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			failed = append(failed, name+": "+err.Error())
		}
	}
	if len(failed) == 0 {
		return nil
	}
	sort.Strings(failed)
	return errors.Wrap(ErrUnhealthy, strings.Join(failed, "; "))
}
