package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// CreateTestChild создает новую сущность TestChild. Поле child.TestId должно
// указывать на существующий Test. Возвращает ID созданной записи.
func CreateTestChild(child *TestChildRow) (int64, error) {
	now := time.Now()
	child.CreatedAt = now
	child.UpdatedAt = now
	if child.ImagesJson == "" {
		child.ImagesJson = "[]"
	}

	query := `INSERT INTO TestChilds (Name, ImagesJson, TestId, CreatedAt, UpdatedAt)
	          VALUES (:Name, :ImagesJson, :TestId, :CreatedAt, :UpdatedAt)`
	result, err := DB.NamedExec(query, child)
	if err != nil {
		return 0, fmt.Errorf("CreateTestChild: ошибка вставки: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateTestChild: ошибка получения LastInsertId: %w", err)
	}
	child.ID = id
	log.Printf("Создан TestChild с ID: %d для TestId: %d", id, child.TestID)
	return id, nil
}

// GetTestChildByID извлекает TestChild по ID вместе с родительским Test.
func GetTestChildByID(id int64) (*TestChildWithTest, error) {
	child := &TestChildRow{}
	query := `SELECT Id, Name, ImagesJson, TestId, CreatedAt, UpdatedAt FROM TestChilds WHERE Id = ?`
	err := DB.Get(child, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetTestChildByID: ошибка получения TestChild ID %d: %w", id, err)
	}
	return attachTest(*child), nil
}

// GetAllTestChilds извлекает все сущности TestChild, каждую с родительским Test.
func GetAllTestChilds() ([]TestChildWithTest, error) {
	var children []TestChildRow
	query := `SELECT Id, Name, ImagesJson, TestId, CreatedAt, UpdatedAt FROM TestChilds ORDER BY Id ASC`
	err := DB.Select(&children, query)
	if err != nil {
		return nil, fmt.Errorf("GetAllTestChilds: ошибка получения списка: %w", err)
	}

	out := make([]TestChildWithTest, 0, len(children))
	for _, child := range children {
		out = append(out, *attachTest(child))
	}
	return out, nil
}

// attachTest подтягивает родительский Test. Отсутствие родителя не считается
// ошибкой ответа: сущность возвращается без денормализованного поля.
func attachTest(child TestChildRow) *TestChildWithTest {
	withTest := &TestChildWithTest{TestChildRow: child}
	parent, err := GetTestByID(child.TestID)
	if err != nil {
		log.Printf("attachTest: ошибка получения родительского Test %d: %v", child.TestID, err)
		return withTest
	}
	withTest.Test = parent
	return withTest
}

// UpdateTestChild обновляет существующий TestChild. Поле child.Id должно быть
// установлено.
func UpdateTestChild(child *TestChildRow) error {
	child.UpdatedAt = time.Now()

	query := `UPDATE TestChilds SET Name = :Name, ImagesJson = :ImagesJson, TestId = :TestId, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := DB.NamedExec(query, child)
	if err != nil {
		return fmt.Errorf("UpdateTestChild: ошибка обновления TestChild ID %d: %w", child.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено для обновления
	}
	log.Printf("Обновлен TestChild с ID: %d", child.ID)
	return nil
}

// DeleteTestChild удаляет TestChild по ID.
func DeleteTestChild(id int64) error {
	query := `DELETE FROM TestChilds WHERE Id = ?`
	result, err := DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("DeleteTestChild: ошибка удаления TestChild ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено для удаления
	}
	log.Printf("Удален TestChild с ID: %d", id)
	return nil
}
