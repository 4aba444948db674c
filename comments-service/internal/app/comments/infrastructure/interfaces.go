package infrastructure

import (
	"context"

	"commentwidget/comments-service/internal/app/comments/entity"
)

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// CommentCache кеш списка одобренных комментариев
// Список хранится под номером поколения, Invalidate увеличивает номер.
// Читатель берет поколение до запроса в базу и пишет список под ним же,
// поэтому запись, опоздавшая после Invalidate, уже никем не читается.
// GetApproved возвращает found=false при промахе
type CommentCache interface {
	Generation(ctx context.Context) (int64, error)
	GetApproved(ctx context.Context, generation int64) (comments []entity.Comment, found bool, err error)
	SetApproved(ctx context.Context, generation int64, comments []entity.Comment) error
	Invalidate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
