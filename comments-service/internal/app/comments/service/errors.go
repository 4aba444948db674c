package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError - данные клиента нарушают контракт (HTTP 400)
// Message уходит клиенту как есть
type ValidationError struct {
	Field   string
	Reason  string // Метка для comments_rejected_total
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrCommentTextRequired = &ValidationError{Field: "comment_text", Reason: "empty_text", Message: "Comment text is required"}
	ErrRatingOutOfRange    = &ValidationError{Field: "rating", Reason: "rating_range", Message: "Rating must be between 1 and 5"}
	ErrUserNameTooLong     = &ValidationError{Field: "user_name", Reason: "too_long", Message: "User name must be at most 100 characters"}
	ErrCommentTextTooLong  = &ValidationError{Field: "comment_text", Reason: "too_long", Message: "Comment text must be at most 5000 characters"}
)

// PersistenceError - ошибка хранилища (HTTP 500)
// Детали только в логах, клиенту уходит общее сообщение
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// SQLState возвращает код ошибки PostgreSQL (например 23514 для CHECK), если он есть
func (e *PersistenceError) SQLState() string {
	var pgErr *pgconn.PgError
	if errors.As(e.Err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
