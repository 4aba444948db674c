package entity

import (
	"time"
)

// CreatedAtLayout - формат created_at в ответах API (UTC)
const CreatedAtLayout = "2006-01-02 15:04:05"

// Comment - строка таблицы comments
// id и created_at назначает база при вставке, is_approved всегда пишет сервис
type Comment struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserName    string    `json:"user_name" gorm:"column:user_name;type:varchar(100);not null"`
	CommentText string    `json:"comment_text" gorm:"column:comment_text;type:text;not null"`
	Rating      *int      `json:"rating" gorm:"column:rating;type:smallint;check:chk_comments_rating,rating BETWEEN 1 AND 5"` // nil - без оценки
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now();autoCreateTime:false;index:idx_comments_approved_created,priority:2,sort:desc"`
	IsApproved  bool      `json:"is_approved" gorm:"column:is_approved;not null;index:idx_comments_approved_created,priority:1"`
	IPAddress   *string   `json:"-" gorm:"column:ip_address;type:varchar(45)"` // Только для модерации, наружу не отдается
}

func (Comment) TableName() string {
	return "comments"
}

// CommentEvent - событие для Kafka после сохранения комментария
type CommentEvent struct {
	EventType  string    `json:"event_type"` // COMMENT_CREATED
	CommentID  int64     `json:"comment_id"`
	UserName   string    `json:"user_name"`
	Rating     *int      `json:"rating"`
	IsApproved bool      `json:"is_approved"`
	Timestamp  time.Time `json:"timestamp"`
}

const EventCommentCreated = "COMMENT_CREATED"
