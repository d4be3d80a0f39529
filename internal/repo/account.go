package repo

import (
	"context"

	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/repo/selector"
)

type Account struct {
	db  *bun.DB
	sel selector.S[model.Account]
}

func NewAccount(db *bun.DB) *Account {
	return &Account{
		db:  db,
		sel: selector.New[model.Account](db),
	}
}

func (r *Account) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("username = ?", username)
	})
}

func (r *Account) GetAccountByID(ctx context.Context, accountID int) (*model.Account, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("account_id = ?", accountID)
	})
}

// CreateAccount inserts account unless the username is taken. created is false when it was.
func (r *Account) CreateAccount(ctx context.Context, account *model.Account) (created bool, err error) {
	res, err := r.db.NewInsert().
		Model(account).
		On("CONFLICT (username) DO NOTHING").
		Returning("account_id").
		Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
