package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Формат created_at в ответах API (UTC)
const CreatedAtLayout = "2006-01-02 15:04:05"

// Comment - элемент ответа GET /api/comments
type Comment struct {
	ID          int64  `json:"id"`
	UserName    string `json:"user_name"`
	CommentText string `json:"comment_text"`
	Rating      *int   `json:"rating"`
	CreatedAt   string `json:"created_at"`
}

// CreatedTime разбирает created_at, ошибка для пустой или чужой строки
func (c Comment) CreatedTime() (time.Time, error) {
	return time.ParseInLocation(CreatedAtLayout, c.CreatedAt, time.UTC)
}

// CreateRequest - тело POST /api/comments
type CreateRequest struct {
	UserName    string `json:"user_name"`
	CommentText string `json:"comment_text"`
	Rating      *int   `json:"rating"`
}

// TransportError - сеть недоступна или ответ не 2xx
// StatusCode 0 означает, что ответа не было
type TransportError struct {
	StatusCode int
	Message    string // поле error из тела ответа, если есть
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("unexpected status code %d", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// CommentsClient клиент Comments Service
type CommentsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCommentsClient принимает адрес вида http://localhost:3000/api
func NewCommentsClient(baseURL string, timeout time.Duration) *CommentsClient {
	return &CommentsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List получает одобренные комментарии, новые первыми
func (c *CommentsClient) List(ctx context.Context) ([]Comment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/comments", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var comments []Comment
	if err := c.do(req, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}
	return comments, nil
}

// Create отправляет комментарий, одна попытка без повторов
func (c *CommentsClient) Create(ctx context.Context, body CreateRequest) (*Comment, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/comments", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var created Comment
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// do считает успехом любой 2xx, пустое тело оставляет out без изменений
func (c *CommentsClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &TransportError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}

// IsTransportError сообщает, что ошибка пришла из клиента
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
