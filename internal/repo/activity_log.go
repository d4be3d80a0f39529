package repo

import (
	"context"

	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/pgqry"
	"emisi.dev/backend/internal/repo/selector"
	"emisi.dev/backend/internal/util/stats"
)

type ActivityLog struct {
	db  *bun.DB
	sel selector.S[model.ActivityLog]
}

func NewActivityLog(db *bun.DB) *ActivityLog {
	return &ActivityLog{
		db:  db,
		sel: selector.New[model.ActivityLog](db),
	}
}

func (r *ActivityLog) DeleteByIDs(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.NewDelete().
		Model((*model.ActivityLog)(nil)).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	return err
}

func (r *ActivityLog) Insert(ctx context.Context, rows []*model.ActivityLog) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().
		Model(&rows).
		Exec(ctx)
	return err
}

func (r *ActivityLog) filtered(q *bun.SelectQuery, filter *types.DashboardFilter) *bun.SelectQuery {
	return pgqry.New(q, "al").
		DoFilterActivityDays(filter.Days).
		DoFilterFaculties(filter.Faculties).
		DoFilterActivityCategories(filter.Categories).
		Q
}

func (r *ActivityLog) List(ctx context.Context, filter *types.DashboardFilter) ([]*model.ActivityLog, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return r.filtered(q, filter).Order("al.id", "al.day", "al.timeslot")
	})
}

// SumBySlot sums the emission of every (day, timeslot) pair with at least one activity.
func (r *ActivityLog) SumBySlot(ctx context.Context, filter *types.DashboardFilter) ([]stats.Cell, error) {
	cells := make([]stats.Cell, 0)
	q := r.db.NewSelect().
		Model((*model.ActivityLog)(nil)).
		ColumnExpr("al.day").
		ColumnExpr("al.timeslot").
		ColumnExpr("SUM(al.ac_emission + al.light_emission + al.food_waste_emission) AS emission")
	err := r.filtered(q, filter).
		GroupExpr("al.day, al.timeslot").
		Scan(ctx, &cells)
	return cells, err
}
