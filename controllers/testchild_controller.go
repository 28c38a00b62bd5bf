package controllers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"catalog_admin_go/data"
	"catalog_admin_go/models"
)

// GetTestChildsHandler возвращает все сущности TestChild, каждую с
// денормализованным родительским Test. Изображения (и вложенные test.image)
// отдаются JSON-строкой, как хранятся.
// Пример URL: GET /api/v1/testsChild
func GetTestChildsHandler(w http.ResponseWriter, r *http.Request) {
	children, err := data.GetAllTestChilds()
	if err != nil {
		log.Printf("Ошибка при получении списка TestChild: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not load test children.")
		return
	}
	respondJSON(w, http.StatusOK, models.Envelope[[]data.TestChildWithTest]{Status: true, Data: children})
}

// GetTestChildHandler возвращает одну сущность TestChild по ID.
// Пример URL: GET /api/v1/testsChild/{id}
func GetTestChildHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid test child id.")
		return
	}

	child, err := data.GetTestChildByID(id)
	if err != nil {
		log.Printf("Ошибка при получении TestChild %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not load test child.")
		return
	}
	if child == nil {
		respondError(w, http.StatusNotFound, "Test child not found.")
		return
	}
	respondJSON(w, http.StatusOK, models.Envelope[*data.TestChildWithTest]{Status: true, Data: child})
}

// CreateTestChildHandler создает сущность TestChild из multipart-формы:
// текстовые поля "testChild", "testId" и файлы под повторяющимся полем "image".
// Пример URL: POST /api/v1/testsChild
func CreateTestChildHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(w, r); err != nil {
		respondError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
		return
	}

	name := strings.TrimSpace(r.FormValue("testChild"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "Test child name must not be empty.")
		return
	}
	testID, err := strconv.ParseInt(r.FormValue("testId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid testId.")
		return
	}

	parent, err := data.GetTestByID(testID)
	if err != nil {
		log.Printf("Ошибка при проверке родительского Test %d: %v", testID, err)
		respondError(w, http.StatusInternalServerError, "Could not look up parent test.")
		return
	}
	if parent == nil {
		respondError(w, http.StatusBadRequest, "Parent test not found.")
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

	row := &data.TestChildRow{Name: name, ImagesJson: imagesJSON, TestID: testID}
	if _, err := data.CreateTestChild(row); err != nil {
		log.Printf("Ошибка при создании TestChild: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not create test child.")
		return
	}
	respondJSON(w, http.StatusCreated, row.ToModel())
}

// UpdateTestChildHandler обновляет сущность TestChild из multipart-формы.
// Пример URL: PATCH /api/v1/testsChild/edit/{id}
func UpdateTestChildHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid test child id.")
		return
	}

	existing, err := data.GetTestChildByID(id)
	if err != nil {
		log.Printf("Ошибка при получении TestChild %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not load test child.")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Test child not found.")
		return
	}
	row := existing.TestChildRow

	if err := parseUploadForm(w, r); err != nil {
		respondError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
		return
	}

	if name := strings.TrimSpace(r.FormValue("testChild")); name != "" {
		row.Name = name
	}
	if rawTestID := r.FormValue("testId"); rawTestID != "" {
		testID, err := strconv.ParseInt(rawTestID, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid testId.")
			return
		}
		parent, err := data.GetTestByID(testID)
		if err != nil {
			log.Printf("Ошибка при проверке родительского Test %d: %v", testID, err)
			respondError(w, http.StatusInternalServerError, "Could not look up parent test.")
			return
		}
		if parent == nil {
			respondError(w, http.StatusBadRequest, "Parent test not found.")
			return
		}
		row.TestID = testID
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

	if err := data.UpdateTestChild(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Test child not found.")
			return
		}
		log.Printf("Ошибка при обновлении TestChild %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not update test child.")
		return
	}
	respondJSON(w, http.StatusOK, row.ToModel())
}

// DeleteTestChildHandler удаляет сущность TestChild по ID.
// Пример URL: DELETE /api/v1/testsChild/delete/{id}
func DeleteTestChildHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid test child id.")
		return
	}

	if err := data.DeleteTestChild(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Test child not found.")
			return
		}
		log.Printf("Ошибка при удалении TestChild %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Could not delete test child.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"status": true})
}
