package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campus-api/internal/models"
)

func seedUser(t *testing.T, repo *UserRepository, username, password string) models.User {
	t.Helper()
	user, err := repo.Create(context.Background(), models.User{
		Username: username,
		Password: password,
		Email:    username + "@example.edu",
		FullName: "Test User",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)
	return user
}

func TestUserRepositoryUsernameUniqueCaseInsensitive(t *testing.T) {
	repo := NewUserRepository()
	seedUser(t, repo, "jdoe", "pw")

	_, err := repo.Create(context.Background(), models.User{Username: "JDoe", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepositoryFindByUsername(t *testing.T) {
	repo := NewUserRepository()
	created := seedUser(t, repo, "jdoe", "pw")

	found, err := repo.FindByUsername(context.Background(), "JDOE")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestUserRepositoryFindByCredentials(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	created := seedUser(t, repo, "jdoe", "secret123")

	found, err := repo.FindByCredentials(ctx, models.Credentials{Username: "JDoe", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// Password comparison stays exact.
	_, err = repo.FindByCredentials(ctx, models.Credentials{Username: "jdoe", Password: "SECRET123"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	created := seedUser(t, repo, "jdoe", "pw")

	email := "new@example.edu"
	updated, err := repo.Update(ctx, created.ID, models.UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, "jdoe", updated.Username)
	assert.Equal(t, "pw", updated.Password)
}

func TestUserRepositoryUpdateUsernameConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	first := seedUser(t, repo, "jdoe", "pw")
	seedUser(t, repo, "asmith", "pw")

	taken := "ASmith"
	_, err := repo.Update(ctx, first.ID, models.UserPatch{Username: &taken})
	assert.ErrorIs(t, err, ErrDuplicate)

	// Recasing your own username is allowed.
	own := "JDoe"
	updated, err := repo.Update(ctx, first.ID, models.UserPatch{Username: &own})
	require.NoError(t, err)
	assert.Equal(t, "JDoe", updated.Username)
}
