package database_test

import (
	"testing"

	"renovation-crm/internal/database"
	"renovation-crm/internal/models"
	"renovation-crm/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	testutil.SetupDB(t)

	u, err := database.CreateUser("  Peter@Example.COM ", "secret1", models.RoleUser, "")
	require.NoError(t, err)
	assert.Equal(t, "peter@example.com", u.Email)
	assert.Equal(t, "peter", u.Name)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err = database.CreateUser("PETER@example.com", "another1", models.RoleAdmin, "Dup")
	assert.ErrorIs(t, err, database.ErrEmailTaken)

	found, err := database.FindUserByEmail("pEtEr@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	users, err := database.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestVerifyUser(t *testing.T) {
	testutil.SetupDB(t)

	alice, err := database.CreateUser("alice@example.com", "alice-pass", models.RoleUser, "Alice")
	require.NoError(t, err)
	_, err = database.CreateUser("bob@example.com", "bob-pass", models.RoleUser, "Bob")
	require.NoError(t, err)

	got, err := database.VerifyUser("ALICE@example.com", "alice-pass")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = database.VerifyUser("alice@example.com", "wrong")
	assert.ErrorIs(t, err, database.ErrInvalidCredentials)

	// bob's password must not unlock alice
	_, err = database.VerifyUser("alice@example.com", "bob-pass")
	assert.ErrorIs(t, err, database.ErrInvalidCredentials)

	_, err = database.VerifyUser("nobody@example.com", "alice-pass")
	assert.ErrorIs(t, err, database.ErrInvalidCredentials)
}

func TestSessions(t *testing.T) {
	testutil.SetupDB(t)

	u, err := database.CreateUser("carol@example.com", "carol-pass", models.RoleAdmin, "Carol")
	require.NoError(t, err)

	token, err := database.CreateSession(u.ID)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	resolved, err := database.GetSessionUser(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, resolved.ID)
	assert.True(t, resolved.IsAdmin())

	_, err = database.GetSessionUser("unknown")
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = database.GetSessionUser("")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	testutil.SetupDB(t)

	require.NoError(t, database.EnsureAdmin("admin@example.com", "admin-pass"))
	require.NoError(t, database.EnsureAdmin("other@example.com", "admin-pass"))

	users, err := database.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.Equal(t, "admin@example.com", users[0].Email)
}
