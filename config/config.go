package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config содержит настройки приложения: клиентские (базовый URL API,
// директория сессии) и серверные (порт, путь к БД, директория загрузок,
// секрет JWT).
type Config struct {
	APIBaseURL string
	SessionDir string

	Port      string
	DBPath    string
	UploadDir string
	JWTSecret string
}

// Load загружает конфигурацию из переменных окружения, предварительно
// подхватив .env файл, если он есть.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	sessionDir := os.Getenv("CATALOG_SESSION_DIR")
	if sessionDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		sessionDir = filepath.Join(home, ".catalog_admin")
	}

	cfg := &Config{
		APIBaseURL: getEnv("CATALOG_API_BASE_URL", "http://localhost:4000/api/v1"),
		SessionDir: sessionDir,
		Port:       getEnv("CATALOG_PORT", "4000"),
		DBPath:     getEnv("CATALOG_DB_PATH", "./CatalogServer.db"),
		UploadDir:  getEnv("CATALOG_UPLOAD_DIR", "./uploads"),
		JWTSecret:  getEnv("CATALOG_JWT_SECRET", "dev_secret_change_me_in_production"),
	}
	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
