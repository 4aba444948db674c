package repository

import (
	"context"
	"fmt"

	"commentwidget/comments-service/internal/app/comments/entity"
	"commentwidget/pkg/metrics"

	"gorm.io/gorm"
)

const (
	serviceName   = "comments-service"
	commentsTable = "comments"
)

type commentRepository struct {
	db *gorm.DB // GORM DB поверх пула database/sql
}

// NewCommentRepository создает новый репозиторий комментариев
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Migrate создает таблицу comments и индекс (is_approved, created_at DESC)
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Comment{}); err != nil {
		return fmt.Errorf("failed to migrate comments table: %w", err)
	}
	return nil
}

// Create вставляет одну строку; id и created_at заполняются из RETURNING
func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, commentsTable)
	defer timer.ObserveDuration()

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// ListApproved возвращает одобренные комментарии, новые первыми
// id DESC разрешает совпадения created_at в порядке вставки
func (r *commentRepository) ListApproved(ctx context.Context) ([]entity.Comment, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, commentsTable)
	defer timer.ObserveDuration()

	comments := make([]entity.Comment, 0)
	result := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at DESC, id DESC").
		Find(&comments)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to list comments: %w", result.Error)
	}

	return comments, nil
}

// Ping проверяет доступность базы (аналог SELECT NOW())
func (r *commentRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpPing)
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}
