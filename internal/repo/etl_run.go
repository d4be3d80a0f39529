package repo

import (
	"context"

	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/repo/selector"
)

type ETLRun struct {
	db  *bun.DB
	sel selector.S[model.ETLRun]
}

func NewETLRun(db *bun.DB) *ETLRun {
	return &ETLRun{
		db:  db,
		sel: selector.New[model.ETLRun](db),
	}
}

func (r *ETLRun) Create(ctx context.Context, run *model.ETLRun) error {
	_, err := r.db.NewInsert().Model(run).Exec(ctx)
	return err
}

func (r *ETLRun) Finish(ctx context.Context, run *model.ETLRun) error {
	_, err := r.db.NewUpdate().
		Model(run).
		Column("status", "rows", "activities", "failed_batches", "error", "finished_at").
		WherePK().
		Exec(ctx)
	return err
}

func (r *ETLRun) Latest(ctx context.Context) (*model.ETLRun, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("started_at DESC")
	})
}

func (r *ETLRun) Recent(ctx context.Context, limit int) ([]*model.ETLRun, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("started_at DESC").Limit(limit)
	})
}
