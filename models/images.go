package models

import (
	"encoding/json"
	"fmt"
)

// UploadImage представляет загруженное изображение, прикрепленное к сущности.
// Создается только сервером при загрузке файла; клиент его не конструирует.
type UploadImage struct {
	PublicID         string `json:"public_id"`
	URL              string `json:"url"`
	OriginalFilename string `json:"originalname"`
}

// ImageList — список изображений сущности.
// Бэкенд хранит изображения в текстовой колонке ImagesJson и в списочных
// ответах отдает колонку как есть, то есть JSON-строкой с закодированным
// массивом. В ответах create/update то же поле приходит уже массивом.
// UnmarshalJSON приводит оба представления к структурированному списку,
// поэтому нормализация выполняется на каждом пути декодирования сущности.
type ImageList []UploadImage

// UnmarshalJSON принимает массив UploadImage, JSON-строку с закодированным
// массивом или null.
func (l *ImageList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("ImageList: ошибка чтения строкового представления: %w", err)
		}
		if raw == "" {
			*l = ImageList{}
			return nil
		}
		var images []UploadImage
		if err := json.Unmarshal([]byte(raw), &images); err != nil {
			return fmt.Errorf("ImageList: строка не содержит JSON-массив изображений: %w", err)
		}
		*l = images
		return nil
	}

	var images []UploadImage
	if err := json.Unmarshal(data, &images); err != nil {
		return err
	}
	*l = images
	return nil
}
