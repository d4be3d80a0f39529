package model

import (
	"time"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

type Account struct {
	bun.BaseModel `bun:"accounts,alias:acc"`

	AccountID    int       `bun:",pk,autoincrement" json:"id"`
	Username     string    `bun:",unique,notnull" json:"username"`
	PasswordHash []byte    `bun:",notnull" json:"-"`
	IsAdmin      bool      `bun:",notnull" json:"isAdmin"`
	CreatedAt    time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}
