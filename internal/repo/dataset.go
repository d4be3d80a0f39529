package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/model"
)

// Dataset operates on the five survey derived tables as a whole.
type Dataset struct {
	db *bun.DB
}

func NewDataset(db *bun.DB) *Dataset {
	return &Dataset{db: db}
}

// childFirst lists the dataset tables so that referencing tables come before students.
var childFirst = []any{
	(*model.ActivityLog)(nil),
	(*model.FoodWaste)(nil),
	(*model.Electronics)(nil),
	(*model.Transportation)(nil),
	(*model.Student)(nil),
}

// ClearAll removes every row of the dataset, children before the parent.
func (r *Dataset) ClearAll(ctx context.Context) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, m := range childFirst {
			if _, err := tx.NewDelete().Model(m).Where("TRUE").Exec(ctx); err != nil {
				return errors.Wrapf(err, "clear %T", m)
			}
		}
		return nil
	})
}

// Count returns the number of respondents currently loaded.
func (r *Dataset) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*model.Student)(nil)).Count(ctx)
}
