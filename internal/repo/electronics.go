package repo

import (
	"context"

	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/pgqry"
	"emisi.dev/backend/internal/repo/selector"
)

type Electronics struct {
	db  *bun.DB
	sel selector.S[model.Electronics]
}

func NewElectronics(db *bun.DB) *Electronics {
	return &Electronics{
		db:  db,
		sel: selector.New[model.Electronics](db),
	}
}

func (r *Electronics) Upsert(ctx context.Context, rows []*model.Electronics) error {
	return upsertByID(ctx, r.db, rows)
}

func (r *Electronics) List(ctx context.Context, filter *types.DashboardFilter) ([]*model.Electronics, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return pgqry.New(q, "el").
			DoFilterDaysAttended(filter.Days).
			DoFilterFaculties(filter.Faculties).
			DoFilterDevices(filter.Devices).
			Q.Order("el.id")
	})
}
