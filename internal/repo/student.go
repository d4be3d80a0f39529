package repo

import (
	"context"

	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/pgqry"
	"emisi.dev/backend/internal/repo/selector"
)

type Student struct {
	db  *bun.DB
	sel selector.S[model.Student]
}

func NewStudent(db *bun.DB) *Student {
	return &Student{
		db:  db,
		sel: selector.New[model.Student](db),
	}
}

func (r *Student) Upsert(ctx context.Context, students []*model.Student) error {
	return upsertByID(ctx, r.db, students)
}

func (r *Student) List(ctx context.Context, filter *types.DashboardFilter) ([]*model.Student, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return pgqry.New(q, "s").
			DoFilterDaysAttended(filter.Days).
			DoFilterFaculties(filter.Faculties).
			Q.Order("s.id")
	})
}

// Faculties lists the distinct faculties present in the current dataset.
func (r *Student) Faculties(ctx context.Context) ([]string, error) {
	faculties := make([]string, 0)
	err := r.db.NewSelect().
		Model((*model.Student)(nil)).
		ColumnExpr("DISTINCT s.faculty").
		Order("s.faculty").
		Scan(ctx, &faculties)
	return faculties, err
}
