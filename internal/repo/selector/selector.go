package selector

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/pkg/emerr"
)

// S runs single-model selects and maps missing rows to emerr.ErrNotFound.
type S[T any] struct {
	DB *bun.DB
}

func New[T any](db *bun.DB) S[T] {
	return S[T]{
		DB: db,
	}
}

func (r S[T]) SelectOne(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (*T, error) {
	var model T
	err := fn(r.DB.NewSelect().Model(&model)).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, emerr.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return &model, nil
}

// SelectMany never returns emerr.ErrNotFound: no rows is an empty slice.
func (r S[T]) SelectMany(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) ([]*T, error) {
	models := make([]*T, 0)
	err := fn(r.DB.NewSelect().Model(&models)).Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return models, nil
}
