package mocks

import (
	"context"

	"commentwidget/comments-service/internal/app/comments/entity"

	"github.com/stretchr/testify/mock"
)

// MockCommentRepository мок для CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListApproved(ctx context.Context) ([]entity.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCommentCache мок для кеша списка комментариев
type MockCommentCache struct {
	mock.Mock
}

func (m *MockCommentCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentCache) GetApproved(ctx context.Context, generation int64) ([]entity.Comment, bool, error) {
	args := m.Called(ctx, generation)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]entity.Comment), args.Bool(1), args.Error(2)
}

func (m *MockCommentCache) SetApproved(ctx context.Context, generation int64, comments []entity.Comment) error {
	args := m.Called(ctx, generation, comments)
	return args.Error(0)
}

func (m *MockCommentCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCommentCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCommentCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
