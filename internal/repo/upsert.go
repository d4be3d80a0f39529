package repo

import (
	"context"

	"github.com/uptrace/bun"
)

// upsertByID writes rows, replacing every column of rows whose id already exists.
func upsertByID[T any](ctx context.Context, db bun.IDB, rows []*T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Exec(ctx)
	return err
}
