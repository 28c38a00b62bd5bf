// Package api содержит HTTP-транспорт каталожного API, общий для всех
// клиентских контроллеров состояния.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// unknownErrorMessage используется, когда не-2xx ответ не содержит поля message.
const unknownErrorMessage = "Unknown error occurred"

// APIError — ошибка, о которой сообщил сервер (не-2xx ответ с телом).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client выполняет запросы к каталожному API. Токен доступа, если задан,
// добавляется в заголовок Authorization каждого запроса.
// Таймауты и повторы запросов не предусмотрены.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient создает клиент над базовым URL, например "http://localhost:4000/api/v1".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// SetToken задает токен доступа (пустая строка снимает его).
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token возвращает текущий токен доступа.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do выполняет запрос и возвращает тело успешного ответа.
// Транспортная ошибка возвращается как есть; не-2xx ответ сворачивается в
// *APIError с сообщением сервера, если оно есть.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// apiError извлекает человекочитаемое сообщение из тела ошибки.
func apiError(statusCode int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	message := unknownErrorMessage
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		message = payload.Message
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

// GetJSON выполняет GET и декодирует ответ в out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// PostJSON выполняет POST с JSON-телом и декодирует ответ в out (если out != nil).
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	respBody, err := c.do(ctx, http.MethodPost, path, body, "application/json")
	if err != nil {
		return err
	}
	return decodeInto(respBody, out)
}

// PostForm выполняет POST с multipart-телом и декодирует ответ в out.
func (c *Client) PostForm(ctx context.Context, path string, form *Form, out any) error {
	return c.sendForm(ctx, http.MethodPost, path, form, out)
}

// PatchForm выполняет PATCH с multipart-телом и декодирует ответ в out.
func (c *Client) PatchForm(ctx context.Context, path string, form *Form, out any) error {
	return c.sendForm(ctx, http.MethodPatch, path, form, out)
}

func (c *Client) sendForm(ctx context.Context, method, path string, form *Form, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return fmt.Errorf("api: ошибка сборки multipart-формы: %w", err)
	}
	respBody, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return decodeInto(respBody, out)
}

// Delete выполняет DELETE, тело ответа игнорируется.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, "")
	return err
}

func decodeInto(body []byte, out any) error {
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
