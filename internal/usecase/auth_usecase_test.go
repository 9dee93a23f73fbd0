package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialconnect/internal/domain/entity"
	"socialconnect/pkg/errors"
)

func newAuthFixture() (*AuthUseCase, *fakeUserRepo, *fakeAuthClient) {
	userRepo := newFakeUserRepo()
	authClient := newFakeAuthClient()
	uc := NewAuthUseCase(userRepo, authClient)
	return uc, userRepo, authClient
}

func TestRegisterCreatesProfileWithLowercaseName(t *testing.T) {
	uc, userRepo, authClient := newAuthFixture()
	authClient.nextUID = "u1"

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:       "alice@example.com",
		Password:    "secret123",
		DisplayName: "Alice Wonder",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, "alice wonder", result.User.DisplayNameLower)
	assert.NotEmpty(t, result.Token)
	assert.Contains(t, userRepo.users, "u1")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	userRepo.users["u1"] = &entity.UserProfile{ID: "u1", Email: "alice@example.com"}

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRegisterFailsWhenEmailCheckErrors(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()
	userRepo.emailErr = errors.Internal("backend unavailable", nil)

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})

	// An inconclusive lookup must not be treated as a free email.
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
	assert.Empty(t, userRepo.users)
}

func TestLoginInvalidCredentials(t *testing.T) {
	uc, _, authClient := newAuthFixture()
	authClient.signInErr = errors.Unauthorized("bad password", nil)

	_, err := uc.Login(context.Background(), "alice@example.com", "wrong")

	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestLoginReturnsProfileAndToken(t *testing.T) {
	uc, userRepo, authClient := newAuthFixture()

	userRepo.users["u1"] = &entity.UserProfile{ID: "u1", Email: "alice@example.com"}
	authClient.tokens["token-alice@example.com"] = "u1"

	result, err := uc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, "token-alice@example.com", result.Token)
}

func TestRequestPasswordReset(t *testing.T) {
	uc, _, authClient := newAuthFixture()

	require.NoError(t, uc.RequestPasswordReset(context.Background(), "alice@example.com"))

	assert.Equal(t, []string{"alice@example.com"}, authClient.resetEmails)
}
