package data

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Драйвер SQLite, импортируется для регистрации
)

// DB - глобальный пул подключений к базе данных каталога.
var DB *sqlx.DB

// InitDB инициализирует подключение к базе данных SQLite по указанному пути,
// применяет схему и засеивает справочник ролей.
func InitDB(dbPath string) error {
	log.Printf("Using database file at: %s", dbPath)

	var err error
	// _loc=auto для корректного сканирования DATETIME в time.Time
	DB, err = sqlx.Connect("sqlite3", dbPath+"?_foreign_keys=on&_loc=auto")
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("Successfully connected to the catalog database.")

	if _, err = DB.Exec(catalogSchema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	log.Println("Catalog database schema applied successfully.")

	if err = SeedRoles(); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	return nil
}

// CloseDB закрывает пул подключений.
func CloseDB() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}
}
