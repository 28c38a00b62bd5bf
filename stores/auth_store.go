// Package stores содержит клиентские контроллеры состояния: контроллер
// сессии аутентификации и контроллеры коллекций сущностей каталога.
// Контроллеры создаются явно при старте приложения и передаются по ссылке;
// глобальных экземпляров пакет не заводит.
package stores

import (
	"context"
	"errors"
	"log"
	"sync"

	"catalog_admin_go/api"
	"catalog_admin_go/models"
	"catalog_admin_go/session"
)

// AuthStore — контроллер сессии аутентификации. Хранит текущую пару
// пользователь/токен, зеркалит ее в постоянное хранилище и следит за тем,
// чтобы обе половины выставлялись и сбрасывались вместе.
type AuthStore struct {
	api     *api.Client
	persist *session.Store

	mu      sync.Mutex
	user    *models.User
	token   string
	loading bool
	err     string
}

// NewAuthStore создает контроллер и синхронно поднимает сохраненную сессию,
// поэтому после перезапуска клиент считается аутентифицированным еще до
// каких-либо сетевых вызовов.
func NewAuthStore(client *api.Client, persist *session.Store) *AuthStore {
	s := &AuthStore{api: client, persist: persist}
	sess := persist.Load()
	s.user = sess.User
	s.token = sess.AccessToken
	if s.token != "" {
		client.SetToken(s.token)
	}
	return s
}

// Login выполняет вход. При успехе заменяет сессию данными ответа и
// сохраняет ее; при ошибке сессия не трогается, в err попадает
// человекочитаемое сообщение. loading никогда не остается true после
// завершения вызова.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.begin()

	var resp models.LoginResponse
	err := s.api.PostJSON(ctx, "/auth/login", models.LoginRequest{Email: email, Password: password}, &resp)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorText(err)
		return err
	}

	user := resp.Data
	s.user = &user
	s.token = resp.Meta.AccessToken
	s.err = ""
	s.api.SetToken(s.token)

	if perr := s.persist.Save(session.Session{User: s.user, AccessToken: s.token}); perr != nil {
		// Сессия в памяти уже валидна, потеря только персистентности.
		log.Printf("AuthStore: не удалось сохранить сессию: %v", perr)
	}
	return nil
}

// Logout выполняет выход. Локальная сессия и постоянное хранилище
// очищаются только после подтверждения сервера; ошибка сервера оставляет
// сессию нетронутой.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.begin()

	err := s.api.PostJSON(ctx, "/auth/logout", nil, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorText(err)
		return err
	}

	s.user = nil
	s.token = ""
	s.err = ""
	s.api.SetToken("")
	if perr := s.persist.Clear(); perr != nil {
		log.Printf("AuthStore: не удалось очистить сохраненную сессию: %v", perr)
	}
	return nil
}

func (s *AuthStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// Session возвращает текущую пару пользователь/токен.
func (s *AuthStore) Session() (user *models.User, accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.token
}

// Loading сообщает, выполняется ли сейчас сетевой вызов.
func (s *AuthStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err возвращает сообщение последней ошибки (пустая строка, если ее нет).
func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// errorText приводит ошибку операции к отображаемой строке: сообщение
// сервера, если оно было, иначе текст транспортной ошибки.
func errorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
