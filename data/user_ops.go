package data

import (
	"database/sql"
	"fmt"
	"time"

	"catalog_admin_go/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword генерирует хеш bcrypt для пароля.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash сравнивает пароль с хешем.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateUser создает нового пользователя. Поле PasswordHash строки должно
// содержать исходный пароль: хеширование выполняется здесь.
func CreateUser(user *UserRow) (int64, error) {
	hashedPassword, err := HashPassword(user.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashedPassword

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ImagesJson == "" {
		user.ImagesJson = "[]"
	}
	if user.GovernmentIdJson == "" {
		user.GovernmentIdJson = "[]"
	}

	query := `INSERT INTO Users (Email, FirstName, LastName, Address, ImagesJson, GovernmentIdJson, PasswordHash, RoleId, CreatedAt, UpdatedAt)
	          VALUES (:Email, :FirstName, :LastName, :Address, :ImagesJson, :GovernmentIdJson, :PasswordHash, :RoleId, :CreatedAt, :UpdatedAt)`
	result, err := DB.NamedExec(query, user)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	user.ID = id
	return id, nil
}

// GetUserByEmail извлекает пользователя по email.
func GetUserByEmail(email string) (*UserRow, error) {
	user := &UserRow{}
	query := `SELECT Id, Email, FirstName, LastName, Address, ImagesJson, GovernmentIdJson, PasswordHash, RoleId, CreatedAt, UpdatedAt
	          FROM Users WHERE Email = ?`
	err := DB.Get(user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return user, nil
}

// GetUserByID извлекает пользователя по ID.
func GetUserByID(id int64) (*UserRow, error) {
	user := &UserRow{}
	query := `SELECT Id, Email, FirstName, LastName, Address, ImagesJson, GovernmentIdJson, PasswordHash, RoleId, CreatedAt, UpdatedAt
	          FROM Users WHERE Id = ?`
	err := DB.Get(user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return user, nil
}

type roleRow struct {
	ID       int64  `db:"Id"`
	RoleName string `db:"RoleName"`
}

// GetRoleByID извлекает роль по ID.
func GetRoleByID(id int64) (*models.Role, error) {
	row := &roleRow{}
	query := `SELECT Id, RoleName FROM Roles WHERE Id = ?`
	err := DB.Get(row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Роль не найдена
		}
		return nil, fmt.Errorf("failed to get role by ID %d: %w", id, err)
	}
	return &models.Role{ID: row.ID, RoleName: row.RoleName}, nil
}
