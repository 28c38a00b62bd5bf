package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"catalog_admin_go/auth"
	"catalog_admin_go/data"
	"catalog_admin_go/models"
)

// LoginHandler обрабатывает запросы на вход пользователей.
// Ожидает POST-запрос с JSON-телом {email, password}.
// Пример URL: POST /api/v1/auth/login
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		respondError(w, http.StatusBadRequest, "Email and password must not be empty.")
		return
	}

	user, err := data.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("Ошибка при поиске пользователя по email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Server error while looking up user.")
		return
	}
	if user == nil || !data.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	role, err := data.GetRoleByID(user.RoleID)
	if err != nil || role == nil {
		log.Printf("Ошибка при получении роли %d для пользователя %s: %v", user.RoleID, user.Email, err)
		respondError(w, http.StatusInternalServerError, "Server error while looking up user role.")
		return
	}

	tokenString, _, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Printf("Ошибка при генерации токена для пользователя %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "Could not generate access token.")
		return
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{
		Status: true,
		Data:   user.ToModel(*role),
		Meta:   models.AuthMeta{AccessToken: tokenString},
	})
}

// LogoutHandler обрабатывает выход. Сервер не хранит состояние сессии,
// поэтому достаточно подтвердить запрос; клиент сбрасывает сессию только
// после этого подтверждения.
// Пример URL: POST /api/v1/auth/logout
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"status": true})
}

// RegisterHandler обрабатывает регистрацию новых пользователей.
// Ожидает POST-запрос с JSON-телом {email, password, firstName, lastName, address, roleId}.
// Пример URL: POST /api/v1/auth/register
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" ||
		strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		respondError(w, http.StatusBadRequest, "Email, password, first name and last name must not be empty.")
		return
	}

	existing, err := data.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("Ошибка при проверке email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Server error while checking email.")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "A user with this email already exists.")
		return
	}

	role, err := data.GetRoleByID(req.RoleID)
	if err != nil {
		log.Printf("Ошибка при получении роли %d: %v", req.RoleID, err)
		respondError(w, http.StatusInternalServerError, "Server error while looking up role.")
		return
	}
	if role == nil {
		respondError(w, http.StatusBadRequest, "Unknown role.")
		return
	}

	user := &data.UserRow{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Address:      req.Address,
		PasswordHash: req.Password, // Хешируется внутри CreateUser
		RoleID:       req.RoleID,
	}
	if _, err := data.CreateUser(user); err != nil {
		log.Printf("Ошибка при создании пользователя %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Could not create user: "+err.Error())
		return
	}

	tokenString, _, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Printf("Ошибка при генерации токена для пользователя %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "User created, but could not generate access token.")
		return
	}

	respondJSON(w, http.StatusCreated, models.LoginResponse{
		Status: true,
		Data:   user.ToModel(*role),
		Meta:   models.AuthMeta{AccessToken: tokenString},
	})
}
