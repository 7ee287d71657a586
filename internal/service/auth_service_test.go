package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuskit/campus-api/internal/models"
	"github.com/campuskit/campus-api/internal/repository"
	appErrors "github.com/campuskit/campus-api/pkg/errors"
)

func newAuthFixture(t *testing.T) (*AuthService, *repository.UserRepository, *repository.TokenRepository) {
	t.Helper()
	users := repository.NewUserRepository()
	tokens := repository.NewTokenRepository()
	svc := NewAuthService(users, tokens, validator.New(), zap.NewNop(), AuthConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	_, err := users.Create(context.Background(), models.User{
		Username: "admin",
		Password: "admin123",
		Email:    "admin@example.edu",
		FullName: "Admin",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	return svc, users, tokens
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), models.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "admin", result.User.Username)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthServiceLoginCaseInsensitiveUsername(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), models.Credentials{Username: "ADMIN", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", result.User.Username)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.Credentials{Username: "admin", Password: "ADMIN123"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.Credentials{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginMissingFields(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.Credentials{Username: "admin"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAuthServiceRefresh(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.RefreshToken, refreshed.RefreshToken)
}

func TestAuthServiceRefreshAfterLogout(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	svc.Logout(ctx, login.User.ID)

	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceRefreshExpired(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.Error(t, err)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
