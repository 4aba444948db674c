package entity

import (
	"strings"
	"time"
)

// CreateCommentRequest - тело POST /api/comments
// author и text - поля старого API, используются если новые пусты.
// Длина строк проверяется сервисом после обрезки пробелов
type CreateCommentRequest struct {
	UserName    string `json:"user_name"`
	CommentText string `json:"comment_text"`
	Rating      *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Author      string `json:"author,omitempty"`
	Text        string `json:"text,omitempty"`
}

// AuthorInput возвращает обрезанное имя автора с учетом старого поля author
func (r *CreateCommentRequest) AuthorInput() string {
	return firstNonBlank(r.UserName, r.Author)
}

// TextInput возвращает обрезанный текст с учетом старого поля text
func (r *CreateCommentRequest) TextInput() string {
	return firstNonBlank(r.CommentText, r.Text)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// CommentResponse - элемент списка и ответ на создание
type CommentResponse struct {
	ID          int64  `json:"id"`
	UserName    string `json:"user_name"`
	CommentText string `json:"comment_text"`
	Rating      *int   `json:"rating"`
	CreatedAt   string `json:"created_at"`
}

// NewCommentResponse формирует ответ без служебных полей (ip_address, is_approved)
func NewCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		UserName:    c.UserName,
		CommentText: c.CommentText,
		Rating:      c.Rating,
		CreatedAt:   c.CreatedAt.UTC().Format(CreatedAtLayout),
	}
}

// NewCommentListResponse никогда не возвращает nil, пустой список сериализуется как []
func NewCommentListResponse(comments []Comment) []CommentResponse {
	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, NewCommentResponse(&comments[i]))
	}
	return response
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse - ответ GET /api/health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadinessResponse - ответ GET /api/health/ready
type ReadinessResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}
