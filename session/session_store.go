// Package session реализует постоянное хранилище сессии клиента.
// Сессия хранится в двух независимых записях в локальной директории:
// файл "user" с JSON-записью пользователя и файл "accessToken" с сырой
// строкой токена.
package session

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"catalog_admin_go/models"
)

const (
	userEntry  = "user"
	tokenEntry = "accessToken"
)

// Session — пара из аутентифицированного пользователя и токена доступа.
// Отсутствующее значение: User == nil, AccessToken == "".
type Session struct {
	User        *models.User
	AccessToken string
}

// Store читает и пишет сессию в директорию dir.
type Store struct {
	dir string
}

// NewStore создает хранилище над директорией dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir возвращает директорию сессии по умолчанию (~/.catalog_admin).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".catalog_admin"), nil
}

// Load синхронно читает обе записи. Отсутствующая запись дает отсутствующее
// поле. Испорченная запись пользователя не приводит к ошибке: возвращается
// пользователь с нулевыми полями, проблема только логируется.
func (s *Store) Load() Session {
	var sess Session

	if b, err := os.ReadFile(filepath.Join(s.dir, tokenEntry)); err == nil {
		sess.AccessToken = string(b)
	}

	b, err := os.ReadFile(filepath.Join(s.dir, userEntry))
	if err != nil {
		return sess
	}
	user := &models.User{}
	if err := json.Unmarshal(b, user); err != nil {
		log.Printf("session: запись пользователя повреждена, поля будут пустыми: %v", err)
	}
	sess.User = user
	return sess
}

// Save записывает обе записи. Частичное восстановление не предусмотрено:
// запись считается синхронной и надежной.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, userEntry), userJSON, 0600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, tokenEntry), []byte(sess.AccessToken), 0600)
}

// Clear удаляет обе записи. Отсутствие записей не считается ошибкой.
func (s *Store) Clear() error {
	for _, name := range []string{userEntry, tokenEntry} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
