package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratioai/backend/internal/service"
	"github.com/ratioai/backend/internal/testhelpers"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	authSvc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	resp, err := authSvc.Register(ctx, "baker", "baker@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "baker", resp.Username)

	login, err := authSvc.Login(ctx, "baker@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, login.UserID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	authSvc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := authSvc.Register(ctx, "first", "dup@example.com", "password123")
	require.NoError(t, err)

	_, err = authSvc.Register(ctx, "second", "dup@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	_, err = authSvc.Register(ctx, "first", "other@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	authSvc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := authSvc.Register(ctx, "baker", "baker@example.com", "password123")
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, "baker@example.com", "wrongpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authSvc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	authSvc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	resp, err := authSvc.Register(ctx, "baker", "baker@example.com", "password123")
	require.NoError(t, err)

	claims, err := authSvc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID.String())
	assert.Equal(t, "baker", claims.Username)

	userID, err := uuid.Parse(resp.UserID)
	require.NoError(t, err)
	user, err := authSvc.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "baker@example.com", user.Email)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	resp, err := service.NewAuthService(db, "secret-a").Register(ctx, "baker", "baker@example.com", "password123")
	require.NoError(t, err)

	_, err = service.NewAuthService(db, "secret-b").ValidateToken(resp.Token)
	assert.Error(t, err)
}
