package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/benefits-navigator/internal/config"
	"github.com/jonathan/benefits-navigator/internal/db"
	"github.com/jonathan/benefits-navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{
		BcryptCost: 4, // Minimum cost for faster tests
		Pepper:     "",
	}
}

func TestConvertDBUserToTypesUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		now := time.Now()
		dbUser := &db.User{
			ID:           uuid.New(),
			Name:         "Dana Caseworker",
			Email:        "dana@example.com",
			PasswordHash: "hashed-password",
			PasswordSet:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		typesUser := convertDBUserToTypesUser(dbUser)
		require.NotNil(t, typesUser)
		assert.Equal(t, dbUser.ID, typesUser.ID)
		assert.Equal(t, dbUser.Name, typesUser.Name)
		assert.Equal(t, dbUser.Email, typesUser.Email)
		assert.Equal(t, dbUser.PasswordSet, typesUser.PasswordSet)
		assert.Equal(t, dbUser.CreatedAt, typesUser.CreatedAt)
		assert.Equal(t, dbUser.UpdatedAt, typesUser.UpdatedAt)
		// Password hash should not be in types.User (it doesn't have that field)
	})

	t.Run("nil user", func(t *testing.T) {
		assert.Nil(t, convertDBUserToTypesUser(nil))
	})
}

func TestUserService_Register(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(store, testPasswordConfig())
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{
		Name:     "Dana Caseworker",
		Email:    "dana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Dana Caseworker", user.Name)
	assert.True(t, user.PasswordSet)

	// Stored hash is bcrypt, not the raw password
	stored := store.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	// Duplicate email is rejected
	_, err = svc.Register(ctx, &types.CreateUserRequest{
		Name:     "Other",
		Email:    "dana@example.com",
		Password: "password456",
	})
	require.Error(t, err)
	var dupErr *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &dupErr)
}

func TestUserService_Login(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(store, testPasswordConfig())
	ctx := context.Background()

	registered, err := svc.Register(ctx, &types.CreateUserRequest{
		Name:     "Dana Caseworker",
		Email:    "dana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "wrong-password"})
		require.Error(t, err)
		var credErr *ErrInvalidCredentials
		assert.ErrorAs(t, err, &credErr)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &types.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		require.Error(t, err)
		var credErr *ErrInvalidCredentials
		assert.ErrorAs(t, err, &credErr)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(store, testPasswordConfig())
	ctx := context.Background()

	registered, err := svc.Register(ctx, &types.CreateUserRequest{
		Name:     "Dana Caseworker",
		Email:    "dana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, registered.ID, "not-the-password", "newpassword1")
		require.Error(t, err)
		var mismatchErr *ErrPasswordMismatch
		assert.ErrorAs(t, err, &mismatchErr)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, uuid.New(), "password123", "newpassword1")
		require.Error(t, err)
		var notFoundErr *ErrUserNotFound
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("success", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, registered.ID, "password123", "newpassword1")
		require.NoError(t, err)

		_, err = svc.Login(ctx, &types.LoginRequest{Email: "dana@example.com", Password: "newpassword1"})
		require.NoError(t, err)
	})
}
