package repo

import (
	"context"

	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/pgqry"
	"emisi.dev/backend/internal/repo/selector"
)

type Transportation struct {
	db  *bun.DB
	sel selector.S[model.Transportation]
}

func NewTransportation(db *bun.DB) *Transportation {
	return &Transportation{
		db:  db,
		sel: selector.New[model.Transportation](db),
	}
}

func (r *Transportation) Upsert(ctx context.Context, rows []*model.Transportation) error {
	return upsertByID(ctx, r.db, rows)
}

func (r *Transportation) List(ctx context.Context, filter *types.DashboardFilter) ([]*model.Transportation, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return pgqry.New(q, "tr").
			DoFilterDaysAttended(filter.Days).
			DoFilterFaculties(filter.Faculties).
			DoFilterModes(filter.Modes).
			Q.Order("tr.id")
	})
}
