package stores

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog_admin_go/api"
	"catalog_admin_go/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginBody = `{
	"status": true,
	"data": {
		"id": 1,
		"email": "a@b.com",
		"firstName": "Ann",
		"lastName": "Lee",
		"address": "Street 1",
		"image": "[]",
		"roleId": 1,
		"role": {"id": 1, "roleName": "Merchant"}
	},
	"meta": {"accessToken": "tok"}
}`

func newAuthFixture(t *testing.T, handler http.HandlerFunc) (*AuthStore, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	persist := session.NewStore(t.TempDir())
	return NewAuthStore(api.NewClient(srv.URL), persist), persist
}

func TestLoginSuccessUpdatesAndPersistsSession(t *testing.T) {
	store, persist := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(loginBody))
	})

	require.NoError(t, store.Login(context.Background(), "a@b.com", "pw"))

	user, token := store.Session()
	require.NotNil(t, user)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "Merchant", user.Role.RoleName)
	assert.Empty(t, user.Images) // строка "[]" нормализована в пустой список
	assert.Equal(t, "tok", token)
	assert.False(t, store.Loading())
	assert.Empty(t, store.Err())

	// Постоянное хранилище вернет ту же пару
	sess := persist.Load()
	require.NotNil(t, sess.User)
	assert.Equal(t, "a@b.com", sess.User.Email)
	assert.Equal(t, "tok", sess.AccessToken)
}

func TestLoginFailureKeepsSessionUntouched(t *testing.T) {
	store, persist := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password."}`))
	})

	err := store.Login(context.Background(), "a@b.com", "bad")
	require.Error(t, err)

	user, token := store.Session()
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.False(t, store.Loading())
	assert.Equal(t, "Invalid email or password.", store.Err())

	sess := persist.Load()
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.AccessToken)
}

func TestLoginTransportFailureSurfacesErrorText(t *testing.T) {
	persist := session.NewStore(t.TempDir())
	store := NewAuthStore(api.NewClient("http://127.0.0.1:1"), persist)

	err := store.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.NotEmpty(t, store.Err())
	assert.False(t, store.Loading())
}

func TestLogoutSuccessClearsBothHalves(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginBody))
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true}`))
	})
	store, persist := newAuthFixture(t, mux.ServeHTTP)

	require.NoError(t, store.Login(context.Background(), "a@b.com", "pw"))
	require.NoError(t, store.Logout(context.Background()))

	user, token := store.Session()
	assert.Nil(t, user)
	assert.Empty(t, token)

	sess := persist.Load()
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.AccessToken)
}

// Выход очищает локальную сессию только после подтверждения сервера.
func TestLogoutFailureKeepsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginBody))
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"logout is down"}`))
	})
	store, persist := newAuthFixture(t, mux.ServeHTTP)

	require.NoError(t, store.Login(context.Background(), "a@b.com", "pw"))
	require.Error(t, store.Logout(context.Background()))

	user, token := store.Session()
	require.NotNil(t, user)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "logout is down", store.Err())

	sess := persist.Load()
	require.NotNil(t, sess.User)
	assert.Equal(t, "tok", sess.AccessToken)
}

// Сохраненная сессия поднимается синхронно при создании контроллера,
// до каких-либо сетевых вызовов.
func TestNewAuthStoreRestoresPersistedSession(t *testing.T) {
	dir := t.TempDir()
	persist := session.NewStore(dir)
	srvStore, _ := newAuthFixtureWithPersist(t, persist, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginBody))
	})
	require.NoError(t, srvStore.Login(context.Background(), "a@b.com", "pw"))

	client := api.NewClient("http://127.0.0.1:1") // сеть недоступна
	restored := NewAuthStore(client, session.NewStore(dir))

	user, token := restored.Session()
	require.NotNil(t, user)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "tok", client.Token())
}

func newAuthFixtureWithPersist(t *testing.T, persist *session.Store, handler http.HandlerFunc) (*AuthStore, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAuthStore(api.NewClient(srv.URL), persist), persist
}
