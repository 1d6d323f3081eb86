package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

func TestUserRepository_FindByLogin(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(taxonomy.DefaultSeed().Users)

	user, err := repo.FindByLogin(ctx, "RaiPur")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "raipur", user.UserID)
	assert.Equal(t, 21, user.District())

	missing, err := repo.FindByLogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(taxonomy.DefaultSeed().Users)

	user, err := repo.FindByLogin(ctx, "durg")
	require.NoError(t, err)
	user.Mobile = "9123456789"
	require.NoError(t, repo.Update(ctx, *user))

	updated, err := repo.FindByLogin(ctx, "durg")
	require.NoError(t, err)
	assert.Equal(t, "9123456789", updated.Mobile)

	user.UserID = "ghost"
	assert.ErrorIs(t, repo.Update(ctx, *user), ErrNotFound)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(taxonomy.DefaultSeed().Users)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 8)
	*users[2].DistrictCode = 99

	again, err := repo.FindByLogin(ctx, "raipur")
	require.NoError(t, err)
	assert.Equal(t, 21, again.District())
}
