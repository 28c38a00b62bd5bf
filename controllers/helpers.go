package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"catalog_admin_go/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadSize = 10 * 1024 * 1024 // 10 MB на запрос

// uploadDir задается при старте сервера из конфигурации.
var uploadDir = "./uploads"

// SetUploadDir устанавливает директорию для загружаемых изображений.
func SetUploadDir(dir string) {
	uploadDir = dir
}

// respondJSON пишет ответ с указанным статусом и JSON-телом.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

// respondError пишет ошибку в теле {"message": ...} — клиент разворачивает
// это поле в отображаемую строку.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	log.Printf("HTTP Error %d: %s", statusCode, message)
	respondJSON(w, statusCode, map[string]string{"message": message})
}

// idVar извлекает path-параметр {id}.
func idVar(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// parseUploadForm разбирает multipart-форму с ограничением размера.
func parseUploadForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	return r.ParseMultipartForm(maxUploadSize)
}

// saveUploadedImages сохраняет все файлы из повторяющегося поля "image" и
// возвращает их дескрипторы. Пустая форма дает пустой список.
func saveUploadedImages(r *http.Request) ([]models.UploadImage, error) {
	images := []models.UploadImage{}
	if r.MultipartForm == nil {
		return images, nil
	}
	for _, header := range r.MultipartForm.File["image"] {
		img, err := saveUploadedImage(header)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}
	return images, nil
}

// allowedExtensions — типы файлов, принимаемые как изображения.
var allowedExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

func saveUploadedImage(header *multipart.FileHeader) (*models.UploadImage, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("недопустимый тип файла %q, разрешены: jpg, jpeg, png, gif, webp", header.Filename)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл %q: %w", header.Filename, err)
	}
	defer file.Close()

	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию загрузки: %w", err)
	}

	publicID := uuid.New().String()
	uniqueFileName := publicID + ext
	filePath := filepath.Join(uploadDir, uniqueFileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать файл на сервере: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, fmt.Errorf("не удалось сохранить файл на сервере: %w", err)
	}

	log.Printf("Файл успешно загружен: %s", filePath)
	return &models.UploadImage{
		PublicID:         publicID,
		URL:              "/uploads/" + uniqueFileName,
		OriginalFilename: header.Filename,
	}, nil
}
