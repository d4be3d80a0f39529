package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/pkg/emerr"
	"emisi.dev/backend/internal/repo"
)

// dummyHash is compared against when a username is unknown so both failure paths cost a bcrypt round.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("emisi-dummy-password"), bcrypt.DefaultCost)

type accountStore interface {
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) (bool, error)
}

type Account struct {
	store accountStore
}

func NewAccount(accountRepo *repo.Account) *Account {
	return NewAccountWithStore(accountRepo)
}

func NewAccountWithStore(store accountStore) *Account {
	return &Account{store: store}
}

// Authenticate returns the account matching username and password, or nil when
// either does not match.
func (s *Account) Authenticate(ctx context.Context, username, password string) (*model.Account, error) {
	account, err := s.store.GetAccountByUsername(ctx, normalizeUsername(username))
	if errors.Is(err, emerr.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	if err := account.CheckPassword(password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

// CreateUser creates an account. It reports false when the username is taken.
func (s *Account) CreateUser(ctx context.Context, username, password string, isAdmin bool) (bool, error) {
	account := &model.Account{
		Username: normalizeUsername(username),
		IsAdmin:  isAdmin,
	}
	if err := account.SetPassword(password); err != nil {
		return false, errors.Wrap(err, "account: hash password")
	}

	created, err := s.store.CreateAccount(ctx, account)
	if err != nil {
		return false, err
	}
	log.Info().
		Str("evt.name", "account.create").
		Str("username", account.Username).
		Bool("isAdmin", isAdmin).
		Bool("created", created).
		Msg("account creation requested")
	return created, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
