package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/dmitrijs2005/learningjournal/internal/dbx"
	"github.com/dmitrijs2005/learningjournal/internal/server/dbtest"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLRepository_CreateAndGet(t *testing.T) {
	repo := NewSQLRepository(dbtest.Open(t))
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{UserName: "default", Salt: []byte{1, 2, 3}, Verifier: []byte{0xfe, 0xff}})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	got, err := repo.GetUserByLogin(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, []byte{1, 2, 3}, got.Salt)
	assert.Equal(t, []byte{0xfe, 0xff}, got.Verifier)
}

func TestSQLRepository_GetUserByLogin_NotFound(t *testing.T) {
	repo := NewSQLRepository(dbtest.Open(t))

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLRepository_DuplicateUsername(t *testing.T) {
	repo := NewSQLRepository(dbtest.Open(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{UserName: "default", Salt: []byte{1}, Verifier: []byte{2}})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{UserName: "default", Salt: []byte{3}, Verifier: []byte{4}})
	require.Error(t, err)
	assert.True(t, dbx.IsUniqueViolation(err))
}

func TestSQLRepository_UpdateVerifier(t *testing.T) {
	repo := NewSQLRepository(dbtest.Open(t))
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{UserName: "default", Salt: []byte{1}, Verifier: []byte{2}})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateVerifier(ctx, u.ID, []byte{9, 9}, []byte{8, 8}))

	got, err := repo.GetUserByLogin(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, got.Salt)
	assert.Equal(t, []byte{8, 8}, got.Verifier)

	assert.ErrorIs(t, repo.UpdateVerifier(ctx, "nope", []byte{1}, []byte{1}), common.ErrorNotFound)
}
