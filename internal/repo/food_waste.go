package repo

import (
	"context"

	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/pgqry"
	"emisi.dev/backend/internal/repo/selector"
)

type FoodWaste struct {
	db  *bun.DB
	sel selector.S[model.FoodWaste]
}

func NewFoodWaste(db *bun.DB) *FoodWaste {
	return &FoodWaste{
		db:  db,
		sel: selector.New[model.FoodWaste](db),
	}
}

func (r *FoodWaste) Upsert(ctx context.Context, rows []*model.FoodWaste) error {
	return upsertByID(ctx, r.db, rows)
}

func (r *FoodWaste) List(ctx context.Context, filter *types.DashboardFilter) ([]*model.FoodWaste, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return pgqry.New(q, "fw").
			DoFilterDaysAttended(filter.Days).
			DoFilterFaculties(filter.Faculties).
			Q.Order("fw.id")
	})
}
