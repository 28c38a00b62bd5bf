package main

import (
	"log"
	"net/http"

	"catalog_admin_go/auth"
	"catalog_admin_go/config"
	"catalog_admin_go/controllers"
	"catalog_admin_go/data"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация базы данных
	if err := data.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer data.CloseDB()

	auth.InitJWT(cfg.JWTSecret)
	controllers.SetUploadDir(cfg.UploadDir)

	router := controllers.NewRouter()

	log.Printf("Запуск сервера каталога на порту :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
