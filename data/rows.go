package data

import (
	"encoding/json"
	"log"
	"time"

	"catalog_admin_go/models"
)

// TestRow — строка таблицы Tests. JSON-теги повторяют то, как сущность
// уходит из списочных ответов API: колонка ImagesJson попадает в поле
// "image" сырой строкой, без разворачивания в массив.
type TestRow struct {
	ID         int64     `db:"Id" json:"id"`
	Name       string    `db:"Name" json:"test"`
	ImagesJson string    `db:"ImagesJson" json:"image"`
	CreatedAt  time.Time `db:"CreatedAt" json:"createdAt"`
	UpdatedAt  time.Time `db:"UpdatedAt" json:"updatedAt"`
}

// TestChildRow — строка таблицы TestChilds.
type TestChildRow struct {
	ID         int64     `db:"Id" json:"id"`
	Name       string    `db:"Name" json:"testChild"`
	ImagesJson string    `db:"ImagesJson" json:"image"`
	TestID     int64     `db:"TestId" json:"testId"`
	CreatedAt  time.Time `db:"CreatedAt" json:"createdAt"`
	UpdatedAt  time.Time `db:"UpdatedAt" json:"updatedAt"`
}

// TestChildWithTest — строка TestChilds вместе с денормализованным
// родительским Test для ответов чтения.
type TestChildWithTest struct {
	TestChildRow
	Test *TestRow `json:"test,omitempty"`
}

// UserRow — строка таблицы Users.
type UserRow struct {
	ID               int64     `db:"Id"`
	Email            string    `db:"Email"`
	FirstName        string    `db:"FirstName"`
	LastName         string    `db:"LastName"`
	Address          string    `db:"Address"`
	ImagesJson       string    `db:"ImagesJson"`
	GovernmentIdJson string    `db:"GovernmentIdJson"`
	PasswordHash     string    `db:"PasswordHash"`
	RoleID           int64     `db:"RoleId"`
	CreatedAt        time.Time `db:"CreatedAt"`
	UpdatedAt        time.Time `db:"UpdatedAt"`
}

// ToModel разворачивает строку Tests в структурированную сущность.
// Используется ответами create/update, которые отдают массив изображений.
func (r *TestRow) ToModel() models.Test {
	return models.Test{
		ID:        r.ID,
		Name:      r.Name,
		Images:    parseImages(r.ImagesJson),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}

// ToModel разворачивает строку TestChilds в структурированную сущность.
func (r *TestChildRow) ToModel() models.TestChild {
	return models.TestChild{
		ID:        r.ID,
		Name:      r.Name,
		Images:    parseImages(r.ImagesJson),
		TestID:    r.TestID,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}

// ToModel собирает публичную запись пользователя для ответа аутентификации.
func (r *UserRow) ToModel(role models.Role) models.User {
	return models.User{
		ID:           r.ID,
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Address:      r.Address,
		Images:       parseImages(r.ImagesJson),
		GovernmentID: parseImages(r.GovernmentIdJson),
		RoleID:       r.RoleID,
		Role:         role,
	}
}

// parseImages разворачивает JSON-колонку изображений. Испорченная колонка
// дает пустой список, а не ошибку ответа.
func parseImages(imagesJSON string) models.ImageList {
	if imagesJSON == "" {
		return models.ImageList{}
	}
	var images models.ImageList
	if err := json.Unmarshal([]byte(imagesJSON), &images); err != nil {
		log.Printf("parseImages: испорченная колонка ImagesJson: %v", err)
		return models.ImageList{}
	}
	return images
}

// MarshalImages сворачивает список изображений в JSON-текст для колонки.
func MarshalImages(images []models.UploadImage) (string, error) {
	if images == nil {
		images = []models.UploadImage{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
