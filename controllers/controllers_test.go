package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"catalog_admin_go/api"
	"catalog_admin_go/auth"
	"catalog_admin_go/data"
	"catalog_admin_go/models"
	"catalog_admin_go/session"
	"catalog_admin_go/stores"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "catalog_admin_test")
	if err != nil {
		panic(err)
	}

	if err := data.InitDB(filepath.Join(dir, "CatalogTest.db")); err != nil {
		panic(err)
	}
	auth.InitJWT("test_secret")
	SetUploadDir(filepath.Join(dir, "uploads"))

	code := m.Run()

	data.CloseDB()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter())
	t.Cleanup(srv.Close)
	return srv
}

func registerMerchant(t *testing.T, client *api.Client, email string) {
	t.Helper()
	var resp models.LoginResponse
	err := client.PostJSON(context.Background(), "/auth/register", models.RegisterRequest{
		Email:     email,
		Password:  "pw123456",
		FirstName: "Mia",
		LastName:  "Stone",
		Address:   "Main street 5",
		RoleID:    1, // Merchant
	}, &resp)
	require.NoError(t, err)
	require.True(t, resp.Status)
}

// Полный цикл через клиентские контроллеры против живого сервера:
// регистрация, вход, CRUD по Test и TestChild с файлами изображений.
func TestEndToEndCatalogFlow(t *testing.T) {
	srv := newCatalogServer(t)
	client := api.NewClient(srv.URL + "/api/v1")
	registerMerchant(t, client, "flow@example.com")

	authStore := stores.NewAuthStore(client, session.NewStore(t.TempDir()))
	require.NoError(t, authStore.Login(context.Background(), "flow@example.com", "pw123456"))
	user, token := authStore.Session()
	require.NotNil(t, user)
	assert.Equal(t, "Merchant", user.Role.RoleName)
	assert.Equal(t, "Mia", user.FirstName)
	require.NotEmpty(t, token)

	testStore := stores.NewTestStore(client)

	// create: multipart с файлом под повторяющимся полем "image"
	form := api.NewForm().AddField("test", "Widget")
	form.AddFile("image", "widget.png", bytes.NewReader([]byte("fake-png-bytes")))
	require.NoError(t, testStore.Create(context.Background(), form))
	items := testStore.Items()
	require.Len(t, items, 1)
	created := items[0]
	assert.Equal(t, "Widget", created.Name)
	require.Len(t, created.Images, 1)
	assert.Equal(t, "widget.png", created.Images[0].OriginalFilename)
	assert.True(t, strings.HasPrefix(created.Images[0].URL, "/uploads/"))

	// Списочный ответ отдает изображения сырой JSON-строкой
	raw, err := http.Get(srv.URL + "/api/v1/tests")
	require.NoError(t, err)
	rawBody, err := io.ReadAll(raw.Body)
	raw.Body.Close()
	require.NoError(t, err)
	var wire struct {
		Status bool              `json:"status"`
		Data   []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rawBody, &wire))
	require.Len(t, wire.Data, 1)
	var wireEntity struct {
		Image json.RawMessage `json:"image"`
	}
	require.NoError(t, json.Unmarshal(wire.Data[0], &wireEntity))
	assert.Equal(t, byte('"'), wireEntity.Image[0], "images должны уходить строкой, а не массивом")

	// fetchAll нормализует строку в структурированный список
	require.NoError(t, testStore.FetchAll(context.Background()))
	items = testStore.Items()
	require.Len(t, items, 1)
	require.Len(t, items[0].Images, 1)
	assert.Equal(t, "widget.png", items[0].Images[0].OriginalFilename)

	// fetchOne с тем же поведением
	require.NoError(t, testStore.FetchOne(context.Background(), created.ID))
	focused := testStore.Focused()
	require.NotNil(t, focused)
	require.Len(t, focused.Images, 1)

	// update: имя меняется, изображения без новых файлов сохраняются
	require.NoError(t, testStore.Update(context.Background(), created.ID, api.NewForm().AddField("test", "Widget 2")))
	items = testStore.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Widget 2", items[0].Name)
	require.Len(t, items[0].Images, 1)

	// дочерняя сущность с денормализованным родителем
	childStore := stores.NewTestChildStore(client)
	childForm := api.NewForm().AddField("testChild", "Bolt").AddField("testId", strconv.FormatInt(created.ID, 10))
	childForm.AddFile("image", "bolt.png", bytes.NewReader([]byte("fake-bolt-png")))
	require.NoError(t, childStore.Create(context.Background(), childForm))
	require.Len(t, childStore.Items(), 1)

	require.NoError(t, childStore.FetchAll(context.Background()))
	children := childStore.Items()
	require.Len(t, children, 1)
	assert.Equal(t, "Bolt", children[0].Name)
	assert.Equal(t, created.ID, children[0].TestID)
	require.NotNil(t, children[0].Test)
	assert.Equal(t, "Widget 2", children[0].Test.Name)
	require.Len(t, children[0].Test.Images, 1, "вложенные test.image нормализуются независимо")

	// delete убирает из коллекции по id
	require.NoError(t, childStore.Delete(context.Background(), children[0].ID))
	assert.Empty(t, childStore.Items())
	require.NoError(t, testStore.Delete(context.Background(), created.ID))
	assert.Empty(t, testStore.Items())

	// logout очищает обе половины сессии
	require.NoError(t, authStore.Logout(context.Background()))
	user, token = authStore.Session()
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := newCatalogServer(t)
	client := api.NewClient(srv.URL + "/api/v1")
	registerMerchant(t, client, "badpw@example.com")

	authStore := stores.NewAuthStore(client, session.NewStore(t.TempDir()))
	err := authStore.Login(context.Background(), "badpw@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password.", authStore.Err())
}

func TestMutationsRequireToken(t *testing.T) {
	srv := newCatalogServer(t)
	client := api.NewClient(srv.URL + "/api/v1") // токен не задан

	store := stores.NewTestStore(client)
	err := store.Create(context.Background(), api.NewForm().AddField("test", "NoAuth"))
	require.Error(t, err)
	assert.Equal(t, "Missing Authorization header", store.Err())
}

func TestCreateTestValidatesName(t *testing.T) {
	srv := newCatalogServer(t)
	client := api.NewClient(srv.URL + "/api/v1")
	registerMerchant(t, client, "валид@example.com")

	authStore := stores.NewAuthStore(client, session.NewStore(t.TempDir()))
	require.NoError(t, authStore.Login(context.Background(), "валид@example.com", "pw123456"))

	store := stores.NewTestStore(client)
	err := store.Create(context.Background(), api.NewForm().AddField("test", "   "))
	require.Error(t, err)
	assert.Equal(t, "Test name must not be empty.", store.Err())
}

func TestGetMissingTestReturnsNotFoundMessage(t *testing.T) {
	srv := newCatalogServer(t)
	client := api.NewClient(srv.URL + "/api/v1")

	store := stores.NewTestStore(client)
	err := store.FetchOne(context.Background(), 999999)
	require.Error(t, err)
	assert.Equal(t, "Test not found.", store.Err())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	srv := newCatalogServer(t)
	client := api.NewClient(srv.URL + "/api/v1")
	registerMerchant(t, client, "dup@example.com")

	err := client.PostJSON(context.Background(), "/auth/register", models.RegisterRequest{
		Email:     "dup@example.com",
		Password:  "pw123456",
		FirstName: "Mia",
		LastName:  "Stone",
		RoleID:    1,
	}, nil)
	require.Error(t, err)
	assert.Equal(t, "A user with this email already exists.", err.Error())
}

func TestCreateChildRequiresExistingParent(t *testing.T) {
	srv := newCatalogServer(t)
	client := api.NewClient(srv.URL + "/api/v1")
	registerMerchant(t, client, "orphan@example.com")

	authStore := stores.NewAuthStore(client, session.NewStore(t.TempDir()))
	require.NoError(t, authStore.Login(context.Background(), "orphan@example.com", "pw123456"))

	childStore := stores.NewTestChildStore(client)
	form := api.NewForm().AddField("testChild", "Orphan").AddField("testId", "424242")
	err := childStore.Create(context.Background(), form)
	require.Error(t, err)
	assert.Equal(t, "Parent test not found.", childStore.Err())
}
