package repository

import (
	"context"

	"commentwidget/comments-service/internal/app/comments/entity"
)

// CommentRepository определяет методы работы с таблицей comments
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	ListApproved(ctx context.Context) ([]entity.Comment, error)
	Ping(ctx context.Context) error
}
