package controllers

import (
	"net/http"

	"catalog_admin_go/middleware"

	"github.com/gorilla/mux"
)

// NewRouter собирает все маршруты каталожного API под /api/v1.
// Маршруты аутентификации и чтения открыты; мутации каталога защищены
// JWT-middleware. Загруженные изображения отдаются как статика из /uploads/
// без защиты, чтобы файлы были доступны по прямой ссылке.
func NewRouter() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	// Маршруты аутентификации (открытые)
	api.HandleFunc("/auth/login", LoginHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", LogoutHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", RegisterHandler).Methods(http.MethodPost)

	// Коллекция Test: чтение открыто, мутации за JWT
	api.HandleFunc("/tests", GetTestsHandler).Methods(http.MethodGet)
	api.HandleFunc("/tests/{id:[0-9]+}", GetTestHandler).Methods(http.MethodGet)
	api.Handle("/tests", protect(CreateTestHandler)).Methods(http.MethodPost)
	api.Handle("/tests/edit/{id:[0-9]+}", protect(UpdateTestHandler)).Methods(http.MethodPatch)
	api.Handle("/tests/delete/{id:[0-9]+}", protect(DeleteTestHandler)).Methods(http.MethodDelete)

	// Коллекция TestChild: тот же шаблон на /testsChild
	api.HandleFunc("/testsChild", GetTestChildsHandler).Methods(http.MethodGet)
	api.HandleFunc("/testsChild/{id:[0-9]+}", GetTestChildHandler).Methods(http.MethodGet)
	api.Handle("/testsChild", protect(CreateTestChildHandler)).Methods(http.MethodPost)
	api.Handle("/testsChild/edit/{id:[0-9]+}", protect(UpdateTestChildHandler)).Methods(http.MethodPatch)
	api.Handle("/testsChild/delete/{id:[0-9]+}", protect(DeleteTestChildHandler)).Methods(http.MethodDelete)

	// Статика загруженных изображений
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	return router
}

func protect(h http.HandlerFunc) http.Handler {
	return middleware.JWTMiddleware(h)
}
