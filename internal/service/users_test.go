package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *AuthService, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()
	auth := newTestAuthService(t, store)
	return NewUserService(store, auth), auth, store
}

func signupUser(t *testing.T, auth *AuthService, name, email, password string) string {
	t.Helper()
	token, err := auth.Signup(context.Background(), name, email, password)
	require.NoError(t, err)
	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	return claims.ID
}

func TestUpdateFieldRejectsUnknownField(t *testing.T) {
	svc, auth, _ := newTestUserService(t)
	id := signupUser(t, auth, "Ann", "a@x.com", "p1")

	_, err := svc.UpdateField(context.Background(), id, "isAdmin", "true")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateField(context.Background(), id, "", "x")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateFieldUnknownUser(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	_, err := svc.UpdateField(context.Background(), "missing", "name", "Ann")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFieldReissuesToken(t *testing.T) {
	svc, auth, _ := newTestUserService(t)
	id := signupUser(t, auth, "Ann", "a@x.com", "p1")

	token, err := svc.UpdateField(context.Background(), id, "name", "Anna")
	require.NoError(t, err)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Anna", claims.Name)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestUpdatePasswordHashesAndLoginStillWorks(t *testing.T) {
	svc, auth, store := newTestUserService(t)
	id := signupUser(t, auth, "Ann", "a@x.com", "p1")

	_, err := svc.UpdateField(context.Background(), id, "password", "p2")
	require.NoError(t, err)

	user, err := store.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "p2", *user.PasswordHash)

	_, err = auth.Login(context.Background(), "a@x.com", "p2")
	assert.NoError(t, err)

	_, err = auth.Login(context.Background(), "a@x.com", "p1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateOwnPermissionsReturnsFreshToken(t *testing.T) {
	svc, auth, _ := newTestUserService(t)
	id := signupUser(t, auth, "Ann", "a@x.com", "p1")

	token, err := svc.UpdatePermissions(context.Background(), id, id, true, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.True(t, claims.CanPostEvents)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestUpdateOtherPermissionsReturnsNoToken(t *testing.T) {
	svc, auth, store := newTestUserService(t)
	adminID := signupUser(t, auth, "Admin", "admin@x.com", "p1")
	targetID := signupUser(t, auth, "Bob", "b@x.com", "p2")

	// Bob holds a token from before the change.
	bob, err := store.GetUserByID(context.Background(), targetID)
	require.NoError(t, err)
	oldToken, err := auth.IssueToken(bob)
	require.NoError(t, err)

	token, err := svc.UpdatePermissions(context.Background(), targetID, adminID, true, true)
	require.NoError(t, err)
	assert.Empty(t, token)

	// The store reflects the new flags.
	bob, err = store.GetUserByID(context.Background(), targetID)
	require.NoError(t, err)
	assert.True(t, bob.IsAdmin)
	assert.True(t, bob.CanPostEvents)

	// Bob's live token still decodes with the old claims until it expires;
	// there is no revocation.
	claims, err := auth.ParseToken(oldToken)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
	assert.False(t, claims.CanPostEvents)
}

func TestUpdatePermissionsUnknownTarget(t *testing.T) {
	svc, auth, _ := newTestUserService(t)
	id := signupUser(t, auth, "Ann", "a@x.com", "p1")

	_, err := svc.UpdatePermissions(context.Background(), "missing", id, true, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsersOmitsPasswordHash(t *testing.T) {
	svc, auth, _ := newTestUserService(t)
	signupUser(t, auth, "Ann", "a@x.com", "p1")
	signupUser(t, auth, "Bob", "b@x.com", "p2")

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotEmpty(t, u.ID)
		assert.NotEmpty(t, u.Email)
	}
}
