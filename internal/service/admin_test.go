package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countFunc func(ctx context.Context) (int, error)

func (f countFunc) Count(ctx context.Context) (int, error) { return f(ctx) }

func TestAdminRespondents(t *testing.T) {
	s := &Admin{dataset: countFunc(func(context.Context) (int, error) { return 42, nil })}

	n, err := s.Respondents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestAdminRespondentsError(t *testing.T) {
	s := &Admin{dataset: countFunc(func(context.Context) (int, error) { return 0, errBoom })}

	_, err := s.Respondents(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "admin: count respondents")
}
