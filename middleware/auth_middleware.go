package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"catalog_admin_go/auth"
)

// UserIDKey - ключ для хранения ID пользователя в контексте запроса.
const UserIDKey = "userID"

// EmailKey - ключ для хранения email пользователя в контексте запроса.
const EmailKey = "email"

// JWTMiddleware проверяет наличие и валидность JWT в заголовке Authorization.
// Если токен валиден, ID и email пользователя добавляются в контекст запроса.
// Навешивается только на мутирующие маршруты каталога; чтение открыто.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Printf("JWTMiddleware: отсутствует заголовок Authorization для %s %s", r.Method, r.URL.Path)
			respondUnauthorized(w, "Missing Authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Printf("JWTMiddleware: неверный формат заголовка Authorization для %s %s", r.Method, r.URL.Path)
			respondUnauthorized(w, "Invalid Authorization header (expected Bearer {token})")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWTMiddleware: невалидный токен для %s %s: %v", r.Method, r.URL.Path, err)
			respondUnauthorized(w, "Invalid token: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// respondUnauthorized отвечает 401 с телом {"message": ...}, которое клиент
// умеет разворачивать в отображаемую ошибку.
func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
