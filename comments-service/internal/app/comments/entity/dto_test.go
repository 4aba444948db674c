package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommentResponse_HidesServiceFields(t *testing.T) {
	rating := 5
	ip := "10.0.0.1"
	comment := &Comment{
		ID:          7,
		UserName:    "Alice",
		CommentText: "Great site",
		Rating:      &rating,
		CreatedAt:   time.Date(2024, 3, 9, 18, 5, 7, 0, time.FixedZone("MSK", 3*3600)),
		IsApproved:  true,
		IPAddress:   &ip,
	}

	data, err := json.Marshal(NewCommentResponse(comment))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "2024-03-09 15:05:07", raw["created_at"])
	assert.Equal(t, float64(5), raw["rating"])
	assert.NotContains(t, raw, "ip_address")
	assert.NotContains(t, raw, "is_approved")
}

func TestNewCommentResponse_NullRating(t *testing.T) {
	data, err := json.Marshal(NewCommentResponse(&Comment{ID: 1, UserName: "Аноним", CommentText: "hi"}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rating":null`)
}

func TestNewCommentListResponse_EmptyIsArray(t *testing.T) {
	data, err := json.Marshal(NewCommentListResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCreateCommentRequest_LegacyFields(t *testing.T) {
	var req CreateCommentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"author":"Bob","text":"old client"}`), &req))

	assert.Equal(t, "Bob", req.AuthorInput())
	assert.Equal(t, "old client", req.TextInput())

	req.UserName = "Alice"
	req.CommentText = "new client"
	assert.Equal(t, "Alice", req.AuthorInput())
	assert.Equal(t, "new client", req.TextInput())
}

func TestCreateCommentRequest_BlankFieldsFallBackToLegacy(t *testing.T) {
	req := CreateCommentRequest{
		UserName:    "   ",
		CommentText: "\n\t ",
		Author:      "  Bob ",
		Text:        " old client ",
	}

	assert.Equal(t, "Bob", req.AuthorInput())
	assert.Equal(t, "old client", req.TextInput())

	assert.Equal(t, "", (&CreateCommentRequest{UserName: " ", Author: " "}).AuthorInput())
}
