package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Form накапливает текстовые поля и файловые части multipart-запроса.
// Файловые части добавляются под повторяющимся именем поля (обычно "image").
type Form struct {
	fields []formField
	files  []filePart
}

type formField struct {
	name  string
	value string
}

type filePart struct {
	field    string
	filename string
	reader   io.Reader
}

// NewForm создает пустую форму.
func NewForm() *Form {
	return &Form{}
}

// AddField добавляет текстовое поле.
func (f *Form) AddField(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile добавляет файловую часть из произвольного io.Reader.
func (f *Form) AddFile(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, filePart{field: field, filename: filename, reader: r})
	return f
}

// AddFilePath добавляет файловую часть из файла на диске.
// Файл читается при вызове, содержимое удерживается до отправки формы.
func (f *Form) AddFilePath(field, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f.AddFile(field, filepath.Base(path), bytes.NewReader(data))
	return nil
}

// Encode собирает multipart-тело и возвращает его вместе с Content-Type.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range f.fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := writer.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.reader); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
