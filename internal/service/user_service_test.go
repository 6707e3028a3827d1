package service_test

import (
	"context"
	"testing"

	"inventorymis/internal/model"
	"inventorymis/internal/repository"
	"inventorymis/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) service.UserService {
	t.Helper()
	db := newTestDB(t)
	return service.NewUserService(repository.NewUserRepository(db))
}

func TestFirstRegisteredUserBecomesAdmin(t *testing.T) {
	users := newUserFixture(t)
	ctx := context.Background()

	first, err := users.Register(ctx, service.RegisterUserRequest{
		Username: "owner",
		Email:    "owner@example.com",
		Password: "secret123",
		Role:     model.RoleStaff, // requested role is overridden for the bootstrap user
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, first.Role)

	second, err := users.Register(ctx, service.RegisterUserRequest{
		Username: "clerk",
		Email:    "clerk@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, second.Role)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	users := newUserFixture(t)
	ctx := context.Background()

	_, err := users.Register(ctx, service.RegisterUserRequest{
		Username: "taken",
		Email:    "one@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = users.Register(ctx, service.RegisterUserRequest{
		Username: "taken",
		Email:    "two@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
}

func TestLoginAndRefreshRotation(t *testing.T) {
	users := newUserFixture(t)
	ctx := context.Background()

	_, err := users.Register(ctx, service.RegisterUserRequest{
		Username: "owner",
		Email:    "owner@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	tokens, err := users.Login(ctx, service.LoginUserRequest{Username: "owner", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)

	rotated, err := users.RefreshToken(ctx, service.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// Refresh tokens are single-use.
	_, err = users.RefreshToken(ctx, service.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newUserFixture(t)
	ctx := context.Background()

	_, err := users.Register(ctx, service.RegisterUserRequest{
		Username: "owner",
		Email:    "owner@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = users.Login(ctx, service.LoginUserRequest{Username: "owner", Password: "wrong"})
	require.Error(t, err)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	users := newUserFixture(t)
	ctx := context.Background()

	_, err := users.Register(ctx, service.RegisterUserRequest{
		Username: "owner",
		Email:    "owner@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	tokens, err := users.Login(ctx, service.LoginUserRequest{Username: "owner", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, users.Logout(ctx, tokens.RefreshToken))

	_, err = users.RefreshToken(ctx, service.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.Error(t, err)
}
