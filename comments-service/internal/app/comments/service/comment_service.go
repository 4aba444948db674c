package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"commentwidget/comments-service/internal/app/comments/entity"
	"commentwidget/comments-service/internal/app/comments/infrastructure"
	"commentwidget/comments-service/internal/app/comments/repository"
	"commentwidget/pkg/logger"
	"commentwidget/pkg/metrics"
)

const (
	MinRating         = 1
	MaxRating         = 5
	MaxUserNameLen    = 100
	MaxCommentTextLen = 5000
)

// Options - правила приема комментариев
type Options struct {
	AutoApprove   bool   // is_approved для новых строк
	DefaultAuthor string // Подставляется вместо пустого имени
}

// CommentService обрабатывает бизнес-логику комментариев
// Координирует репозиторий, кеш списка и Kafka
type CommentService struct {
	commentRepo repository.CommentRepository
	publisher   infrastructure.MessagePublisher // nil - публикация отключена
	cache       infrastructure.CommentCache     // nil - кеш отключен
	opts        Options
}

// NewCommentService создает сервис комментариев с внедрением зависимостей
func NewCommentService(
	commentRepo repository.CommentRepository,
	publisher infrastructure.MessagePublisher,
	cache infrastructure.CommentCache,
	opts Options,
) *CommentService {
	if opts.DefaultAuthor == "" {
		opts.DefaultAuthor = "Аноним"
	}

	return &CommentService{
		commentRepo: commentRepo,
		publisher:   publisher,
		cache:       cache,
		opts:        opts,
	}
}

// CreateComment создает комментарий
// 1. Нормализует автора и текст, проверяет текст и оценку
// 2. Вставляет строку (одна попытка, без повторов)
// 3. Сбрасывает кеш списка и отправляет COMMENT_CREATED
func (s *CommentService) CreateComment(ctx context.Context, req *entity.CreateCommentRequest, ipAddress string) (*entity.Comment, error) {
	comment, err := s.normalize(req)
	if err != nil {
		if vErr, ok := err.(*ValidationError); ok {
			metrics.RecordCommentRejected(vErr.Reason)
		}
		return nil, err
	}

	if ipAddress != "" {
		comment.IPAddress = &ipAddress
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, &PersistenceError{Op: "create comment", Err: err}
	}

	metrics.RecordCommentCreated(comment.Rating)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			// Комментарий уже сохранен, устаревший кеш истечет по TTL
			logger.Warn().Err(err).Msg("Failed to invalidate comments cache")
		}
	}

	if err := s.publishCommentCreated(ctx, comment); err != nil {
		logger.Warn().Err(err).Int64("comment_id", comment.ID).Msg("Failed to publish comment created event")
	}

	return comment, nil
}

// ListApproved возвращает одобренные комментарии, новые первыми
func (s *CommentService) ListApproved(ctx context.Context) ([]entity.Comment, error) {
	var (
		generation int64
		useCache   bool
	)

	if s.cache != nil {
		gen, err := s.cache.Generation(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to read comments cache generation, falling back to database")
		} else {
			generation, useCache = gen, true

			comments, found, err := s.cache.GetApproved(ctx, generation)
			if err != nil {
				logger.Warn().Err(err).Msg("Failed to read comments cache, falling back to database")
			} else if found {
				return comments, nil
			}
		}
	}

	comments, err := s.commentRepo.ListApproved(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list comments", Err: err}
	}
	if comments == nil {
		comments = []entity.Comment{}
	}

	// Поколение взято до запроса: если между ними прошел Invalidate,
	// список ляжет под старый номер и не будет прочитан
	if useCache {
		if err := s.cache.SetApproved(ctx, generation, comments); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache comments")
		}
	}

	return comments, nil
}

// Ping проверяет хранилище для readiness probe
func (s *CommentService) Ping(ctx context.Context) error {
	return s.commentRepo.Ping(ctx)
}

func (s *CommentService) normalize(req *entity.CreateCommentRequest) (*entity.Comment, error) {
	text := strings.TrimSpace(req.TextInput())
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	if req.Rating != nil && (*req.Rating < MinRating || *req.Rating > MaxRating) {
		return nil, ErrRatingOutOfRange
	}

	author := strings.TrimSpace(req.AuthorInput())
	if author == "" {
		author = s.opts.DefaultAuthor
	}

	if utf8.RuneCountInString(author) > MaxUserNameLen {
		return nil, ErrUserNameTooLong
	}
	if utf8.RuneCountInString(text) > MaxCommentTextLen {
		return nil, ErrCommentTextTooLong
	}

	var rating *int
	if req.Rating != nil {
		value := *req.Rating
		rating = &value
	}

	return &entity.Comment{
		UserName:    author,
		CommentText: text,
		Rating:      rating,
		IsApproved:  s.opts.AutoApprove,
	}, nil
}

// publishCommentCreated отправляет событие в Kafka с ключом = ID комментария
func (s *CommentService) publishCommentCreated(ctx context.Context, comment *entity.Comment) error {
	if s.publisher == nil {
		return nil
	}

	event := entity.CommentEvent{
		EventType:  entity.EventCommentCreated,
		CommentID:  comment.ID,
		UserName:   comment.UserName,
		Rating:     comment.Rating,
		IsApproved: comment.IsApproved,
		Timestamp:  time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal comment event: %w", err)
	}

	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(comment.ID, 10), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
