package handler

import (
	"context"
	"errors"
	"net/http"

	"commentwidget/comments-service/internal/app/comments/entity"
	"commentwidget/comments-service/internal/app/comments/service"
	"commentwidget/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CommentServiceInterface interface {
	CreateComment(ctx context.Context, req *entity.CreateCommentRequest, ipAddress string) (*entity.Comment, error)
	ListApproved(ctx context.Context) ([]entity.Comment, error)
	Ping(ctx context.Context) error
}

type CommentHandler struct {
	commentService CommentServiceInterface
	validator      *validator.Validate
}

func NewCommentHandler(commentService CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

// ListComments - GET /api/comments
// Пустая таблица дает 200 и [], не ошибку
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListApproved(c.Request.Context())
	if err != nil {
		logPersistenceError(c, err, "Failed to list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, entity.NewCommentListResponse(comments))
}

// CreateComment - POST /api/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req entity.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		logPersistenceError(c, err, "Failed to create comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}

	c.JSON(http.StatusCreated, entity.NewCommentResponse(comment))
}

// logPersistenceError пишет детали ошибки в лог, клиент их не видит
func logPersistenceError(c *gin.Context, err error, msg string) {
	event := logger.Error().Err(err).Str("request_id", c.GetString("request_id"))

	var pErr *service.PersistenceError
	if errors.As(err, &pErr) {
		event = event.Str("op", pErr.Op)
		if state := pErr.SQLState(); state != "" {
			event = event.Str("sql_state", state)
		}
	}

	event.Msg(msg)
}

// formatValidationError переводит ошибки тегов validate в сообщения API
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			switch fieldError.Field() {
			case "Rating":
				return service.ErrRatingOutOfRange.Message
			}
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
