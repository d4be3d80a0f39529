package repo

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/model"
)

type Schema struct {
	db *bun.DB
}

func NewSchema(db *bun.DB) *Schema {
	return &Schema{db: db}
}

const studentFK = `("id") REFERENCES "students" ("id") ON DELETE CASCADE`

// Migrate creates every table and index that does not exist yet.
func (r *Schema) Migrate(ctx context.Context) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		tables := []struct {
			model any
			fk    bool
		}{
			{(*model.Student)(nil), false},
			{(*model.Transportation)(nil), true},
			{(*model.Electronics)(nil), true},
			{(*model.FoodWaste)(nil), true},
			{(*model.ActivityLog)(nil), true},
			{(*model.Account)(nil), false},
			{(*model.ETLRun)(nil), false},
		}
		for _, t := range tables {
			q := tx.NewCreateTable().Model(t.model).IfNotExists()
			if t.fk {
				q = q.ForeignKey(studentFK)
			}
			if _, err := q.Exec(ctx); err != nil {
				return errors.Wrapf(err, "create table for %T", t.model)
			}
			log.Debug().
				Str("evt.name", "repo.schema.table").
				Str("model", fmt.Sprintf("%T", t.model)).
				Msg("table ensured")
		}

		indexes := []*bun.CreateIndexQuery{
			tx.NewCreateIndex().Model((*model.ActivityLog)(nil)).Index("daily_activity_log_day_timeslot_idx").Column("day", "timeslot").IfNotExists(),
			tx.NewCreateIndex().Model((*model.Student)(nil)).Index("students_faculty_idx").Column("faculty").IfNotExists(),
			tx.NewCreateIndex().Model((*model.Transportation)(nil)).Index("transportation_mode_idx").Column("mode").IfNotExists(),
			tx.NewCreateIndex().Model((*model.ETLRun)(nil)).Index("etl_runs_started_at_idx").Column("started_at").IfNotExists(),
		}
		for _, idx := range indexes {
			if _, err := idx.Exec(ctx); err != nil {
				return errors.Wrap(err, "create index")
			}
		}
		return nil
	})
}
