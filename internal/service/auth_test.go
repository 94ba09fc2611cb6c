package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefull/backend/internal/testhelpers"
	"github.com/platefull/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.RegisterRequest{
		Email:    "cook@example.com",
		Username: "cook",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "supersecret1", user.PasswordHash)

	loggedIn, err := svc.Login(ctx, "cook@example.com", "supersecret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = svc.Login(ctx, "cook@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "supersecret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsTakenIdentity(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.RegisterRequest{
		Email:    "taken@example.com",
		Username: "taken",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &types.RegisterRequest{
		Email:    "taken@example.com",
		Username: "other",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, &types.RegisterRequest{
		Email:    "other@example.com",
		Username: "taken",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestTokenRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	user := testhelpers.CreateTestUser(t, db, "tokenuser")

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "tokenuser", claims.Username)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	issuer := NewAuthService(db, "secret-one")
	verifier := NewAuthService(db, "secret-two")

	user := testhelpers.CreateTestUser(t, db, "crosssigned")
	token, err := issuer.GenerateToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
