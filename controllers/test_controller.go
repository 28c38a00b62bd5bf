package controllers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"catalog_admin_go/data"
	"catalog_admin_go/models"
)

// GetTestsHandler возвращает все сущности Test в конверте {status, data}.
// Колонка изображений отдается как хранится — JSON-строкой; разворачивает
// ее клиент.
// Пример URL: GET /api/v1/tests
func GetTestsHandler(w http.ResponseWriter, r *http.Request) {
	tests, err := data.GetAllTests()
	if err != nil {
		log.Printf("Ошибка при получении списка Test: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not load tests.")
		return
	}
	respondJSON(w, http.StatusOK, models.Envelope[[]data.TestRow]{Status: true, Data: tests})
}

// GetTestHandler возвращает одну сущность Test по ID.
// Пример URL: GET /api/v1/tests/{id}
func GetTestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid test id.")
		return
	}

	test, err := data.GetTestByID(id)
	if err != nil {
		log.Printf("Ошибка при получении Test %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not load test.")
		return
	}
	if test == nil {
		respondError(w, http.StatusNotFound, "Test not found.")
		return
	}
	respondJSON(w, http.StatusOK, models.Envelope[*data.TestRow]{Status: true, Data: test})
}

// CreateTestHandler создает сущность Test из multipart-формы: текстовое поле
// "test" и ноль или больше файлов под повторяющимся полем "image".
// В отличие от операций чтения отвечает структурированной сущностью без конверта.
// Пример URL: POST /api/v1/tests
func CreateTestHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(w, r); err != nil {
		respondError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
		return
	}

	name := strings.TrimSpace(r.FormValue("test"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "Test name must not be empty.")
		return
	}

	images, err := saveUploadedImages(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	imagesJSON, err := data.MarshalImages(images)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not encode images.")
		return
	}

	row := &data.TestRow{Name: name, ImagesJson: imagesJSON}
	if _, err := data.CreateTest(row); err != nil {
		log.Printf("Ошибка при создании Test: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not create test.")
		return
	}
	respondJSON(w, http.StatusCreated, row.ToModel())
}

// UpdateTestHandler обновляет сущность Test из multipart-формы. Новые файлы
// в поле "image" заменяют прежний набор изображений; без файлов набор
// сохраняется.
// Пример URL: PATCH /api/v1/tests/edit/{id}
func UpdateTestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid test id.")
		return
	}

	row, err := data.GetTestByID(id)
	if err != nil {
		log.Printf("Ошибка при получении Test %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not load test.")
		return
	}
	if row == nil {
		respondError(w, http.StatusNotFound, "Test not found.")
		return
	}

	if err := parseUploadForm(w, r); err != nil {
		respondError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
		return
	}

	if name := strings.TrimSpace(r.FormValue("test")); name != "" {
		row.Name = name
	}

	images, err := saveUploadedImages(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(images) > 0 {
		imagesJSON, err := data.MarshalImages(images)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Could not encode images.")
			return
		}
		row.ImagesJson = imagesJSON
	}

	if err := data.UpdateTest(row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Test not found.")
			return
		}
		log.Printf("Ошибка при обновлении Test %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update test.")
		return
	}
	respondJSON(w, http.StatusOK, row.ToModel())
}

// DeleteTestHandler удаляет сущность Test по ID.
// Пример URL: DELETE /api/v1/tests/delete/{id}
func DeleteTestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid test id.")
		return
	}

	if err := data.DeleteTest(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Test not found.")
			return
		}
		log.Printf("Ошибка при удалении Test %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not delete test.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"status": true})
}
