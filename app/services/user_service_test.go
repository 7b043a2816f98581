package services

import (
	"testing"

	"github.com/quodex/invizo/app/models"
	"github.com/quodex/invizo/app/repositories"
	"github.com/quodex/invizo/pkg/auth"
	"github.com/quodex/invizo/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *AuthService) {
	t.Helper()
	db := testkit.NewDB(t, &models.User{})
	repo := repositories.NewUserRepository(db)
	return NewUserService(repo), NewAuthService(repo)
}

func TestUserCreateAndLogin(t *testing.T) {
	users, authSvc := newUserService(t)

	user, err := users.Create(CreateUserInput{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))

	result, err := authSvc.Login("asha@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.Role)
	assert.NotEmpty(t, result.Token)

	claims, err := auth.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims.Subject)
}

func TestUserCreateDefaultsRole(t *testing.T) {
	users, _ := newUserService(t)

	user, err := users.Create(CreateUserInput{
		Name:     "Ravi",
		Email:    "ravi@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	users, _ := newUserService(t)

	_, err := users.Create(CreateUserInput{Name: "A", Email: "dup@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = users.Create(CreateUserInput{Name: "B", Email: "dup@example.com", Password: "secret456"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginUnknownAndWrongPassword(t *testing.T) {
	users, authSvc := newUserService(t)

	_, err := authSvc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = users.Create(CreateUserInput{Name: "A", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = authSvc.Login("a@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserListAndDelete(t *testing.T) {
	users, _ := newUserService(t)

	created, err := users.Create(CreateUserInput{Name: "A", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	all, err := users.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, users.Delete(created.UserID))

	all, err = users.List()
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, users.Delete(created.UserID), ErrNotFound)
}
