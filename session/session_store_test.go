package session

import (
	"os"
	"path/filepath"
	"testing"

	"catalog_admin_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyDirectory(t *testing.T) {
	store := NewStore(t.TempDir())
	sess := store.Load()
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.AccessToken)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested"))
	user := &models.User{
		ID:        1,
		Email:     "a@b.com",
		FirstName: "Ann",
		LastName:  "Lee",
		RoleID:    2,
		Role:      models.Role{ID: 2, RoleName: "Customer"},
	}
	require.NoError(t, store.Save(Session{User: user, AccessToken: "tok"}))

	sess := store.Load()
	require.NotNil(t, sess.User)
	assert.Equal(t, "a@b.com", sess.User.Email)
	assert.Equal(t, "Customer", sess.User.Role.RoleName)
	assert.Equal(t, "tok", sess.AccessToken)
}

func TestClearRemovesBothEntries(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(Session{User: &models.User{ID: 1}, AccessToken: "tok"}))
	require.NoError(t, store.Clear())

	sess := store.Load()
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.AccessToken)
}

func TestClearOnEmptyDirectoryIsNotAnError(t *testing.T) {
	store := NewStore(t.TempDir())
	assert.NoError(t, store.Clear())
}

// Испорченная запись пользователя дает пользователя с нулевыми полями,
// а не ошибку.
func TestLoadMalformedUserEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user"), []byte("{not json"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "accessToken"), []byte("tok"), 0600))

	sess := NewStore(dir).Load()
	require.NotNil(t, sess.User)
	assert.Empty(t, sess.User.Email)
	assert.Equal(t, "tok", sess.AccessToken)
}

// Записи независимы: токен без записи пользователя читается сам по себе.
func TestLoadTokenOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "accessToken"), []byte("tok"), 0600))

	sess := NewStore(dir).Load()
	assert.Nil(t, sess.User)
	assert.Equal(t, "tok", sess.AccessToken)
}
