package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"commentwidget/comments-service/internal/app/comments/config"
	"commentwidget/comments-service/internal/app/comments/entity"
	"commentwidget/comments-service/internal/app/comments/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, req *entity.CreateCommentRequest, ipAddress string) (*entity.Comment, error) {
	args := m.Called(ctx, req, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentService) ListApproved(ctx context.Context) ([]entity.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

func (m *MockCommentService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func setupTestRouter(t *testing.T, svc *MockCommentService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router, err := SetupRoutes(
		NewCommentHandler(svc),
		NewHealthHandler(svc, nil),
		config.ServerConfig{AllowedOrigins: []string{"*"}},
	)
	require.NoError(t, err)
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	var response entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Error
}

func TestCreateCommentHandler_Success(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)

	rating := 5
	created := &entity.Comment{
		ID:          1,
		UserName:    "Alice",
		CommentText: "Great site",
		Rating:      &rating,
		CreatedAt:   time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC),
		IsApproved:  true,
	}
	svc.On("CreateComment", mock.Anything, mock.MatchedBy(func(req *entity.CreateCommentRequest) bool {
		return req.UserName == "Alice" && req.CommentText == "Great site" && *req.Rating == 5
	}), "192.0.2.1").Return(created, nil)

	w := postJSON(router, `{"user_name":"Alice","comment_text":"Great site","rating":5}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response entity.CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.ID)
	assert.Equal(t, "Alice", response.UserName)
	assert.Equal(t, 5, *response.Rating)
	assert.Equal(t, "2024-03-01 10:20:30", response.CreatedAt)
	assert.NotContains(t, w.Body.String(), "ip_address")
	assert.NotContains(t, w.Body.String(), "is_approved")
	svc.AssertExpectations(t)
}

func TestCreateCommentHandler_RatingOutOfRange(t *testing.T) {
	for _, body := range []string{
		`{"comment_text":"text","rating":0}`,
		`{"comment_text":"text","rating":6}`,
		`{"comment_text":"text","rating":-1}`,
	} {
		svc := new(MockCommentService)
		router := setupTestRouter(t, svc)

		w := postJSON(router, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Rating must be between 1 and 5", decodeError(t, w))
		svc.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestCreateCommentHandler_TextRequired(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)

	svc.On("CreateComment", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrCommentTextRequired)

	w := postJSON(router, `{"comment_text":"  "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Comment text is required", decodeError(t, w))
}

func TestCreateCommentHandler_PaddedTextReachesService(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)

	text := strings.Repeat(" ", 4000) + "padded" + strings.Repeat(" ", 4000)
	svc.On("CreateComment", mock.Anything, mock.MatchedBy(func(req *entity.CreateCommentRequest) bool {
		return req.CommentText == text
	}), mock.Anything).Return(&entity.Comment{ID: 2, UserName: "Аноним", CommentText: "padded"}, nil)

	body, err := json.Marshal(map[string]string{"comment_text": text})
	require.NoError(t, err)

	w := postJSON(router, string(body))

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateCommentHandler_InvalidBody(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)

	for _, body := range []string{`not json`, `{"rating":"five","comment_text":"x"}`, ``} {
		w := postJSON(router, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeError(t, w))
	}
	svc.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCommentHandler_PersistenceErrorHidesDetails(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)

	svc.On("CreateComment", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &service.PersistenceError{Op: "create comment", Err: errors.New("pq: connection refused")})

	w := postJSON(router, `{"comment_text":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to save comment", decodeError(t, w))
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestListCommentsHandler_Success(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)

	rating := 4
	svc.On("ListApproved", mock.Anything).Return([]entity.Comment{
		{ID: 2, UserName: "Bob", CommentText: "newer", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 1, UserName: "Alice", CommentText: "older", Rating: &rating, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []entity.CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, int64(2), response[0].ID)
	assert.Nil(t, response[0].Rating)
	assert.Equal(t, 4, *response[1].Rating)
	assert.Contains(t, w.Body.String(), `"rating":null`)
}

func TestListCommentsHandler_EmptyReturnsArray(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)
	svc.On("ListApproved", mock.Anything).Return([]entity.Comment{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListCommentsHandler_Error(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)
	svc.On("ListApproved", mock.Anything).Return(nil, &service.PersistenceError{Op: "list comments", Err: errors.New("timeout")})

	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to load comments", decodeError(t, w))
}

func TestHealthHandler_Liveness(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "OK", response.Status)
	assert.False(t, response.Timestamp.IsZero())
	svc.AssertNotCalled(t, "Ping", mock.Anything)
}

func TestHealthHandler_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		db     Pinger
		cache  Pinger
		status int
	}{
		{"database only", stubPinger{}, nil, http.StatusOK},
		{"database and redis", stubPinger{}, stubPinger{}, http.StatusOK},
		{"database down", stubPinger{err: errors.New("down")}, nil, http.StatusServiceUnavailable},
		{"redis down", stubPinger{}, stubPinger{err: errors.New("down")}, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/ready", NewHealthHandler(tc.db, tc.cache).Readiness)

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)

			var response entity.ReadinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response.Checks, "database")
			if tc.cache == nil {
				assert.NotContains(t, response.Checks, "redis")
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	svc := new(MockCommentService)
	router := setupTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodOptions, "/api/comments", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRoutes_InvalidCORSOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(MockCommentService)

	_, err := SetupRoutes(NewCommentHandler(svc), NewHealthHandler(svc, nil), config.ServerConfig{
		AllowedOrigins: []string{"example.com"},
	})

	assert.Error(t, err)
}

func TestRouter_CORSAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(MockCommentService)
	svc.On("ListApproved", mock.Anything).Return([]entity.Comment{}, nil)

	router, err := SetupRoutes(NewCommentHandler(svc), NewHealthHandler(svc, nil), config.ServerConfig{
		AllowedOrigins: []string{"https://shop.example.com"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
