package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// CreateTest создает новую сущность Test. Возвращает ID созданной записи.
func CreateTest(test *TestRow) (int64, error) {
	now := time.Now()
	test.CreatedAt = now
	test.UpdatedAt = now
	if test.ImagesJson == "" {
		test.ImagesJson = "[]"
	}

	query := `INSERT INTO Tests (Name, ImagesJson, CreatedAt, UpdatedAt)
	          VALUES (:Name, :ImagesJson, :CreatedAt, :UpdatedAt)`
	result, err := DB.NamedExec(query, test)
	if err != nil {
		return 0, fmt.Errorf("CreateTest: ошибка вставки: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateTest: ошибка получения LastInsertId: %w", err)
	}
	test.ID = id
	log.Printf("Создан Test с ID: %d", id)
	return id, nil
}

// GetTestByID извлекает Test по ID.
func GetTestByID(id int64) (*TestRow, error) {
	test := &TestRow{}
	query := `SELECT Id, Name, ImagesJson, CreatedAt, UpdatedAt FROM Tests WHERE Id = ?`
	err := DB.Get(test, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetTestByID: ошибка получения Test ID %d: %w", id, err)
	}
	return test, nil
}

// GetAllTests извлекает все сущности Test.
func GetAllTests() ([]TestRow, error) {
	var tests []TestRow
	query := `SELECT Id, Name, ImagesJson, CreatedAt, UpdatedAt FROM Tests ORDER BY Id ASC`
	err := DB.Select(&tests, query)
	if err != nil {
		return nil, fmt.Errorf("GetAllTests: ошибка получения списка: %w", err)
	}
	return tests, nil
}

// UpdateTest обновляет существующий Test. Поле test.Id должно быть установлено.
func UpdateTest(test *TestRow) error {
	test.UpdatedAt = time.Now()

	query := `UPDATE Tests SET Name = :Name, ImagesJson = :ImagesJson, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := DB.NamedExec(query, test)
	if err != nil {
		return fmt.Errorf("UpdateTest: ошибка обновления Test ID %d: %w", test.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено для обновления
	}
	log.Printf("Обновлен Test с ID: %d", test.ID)
	return nil
}

// DeleteTest удаляет Test по ID вместе с дочерними записями (ON DELETE CASCADE).
func DeleteTest(id int64) error {
	query := `DELETE FROM Tests WHERE Id = ?`
	result, err := DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("DeleteTest: ошибка удаления Test ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено для удаления
	}
	log.Printf("Удален Test с ID: %d", id)
	return nil
}
