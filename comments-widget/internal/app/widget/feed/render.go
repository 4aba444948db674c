package feed

import (
	"commentwidget/comments-widget/internal/app/widget/client"
	"commentwidget/comments-widget/internal/app/widget/i18n"
	"commentwidget/comments-widget/internal/app/widget/rating"
)

// Status - фаза загрузки ленты
type Status int

const (
	StatusLoading Status = iota
	StatusFailed
	StatusLoaded
)

// Kind - что показывает область ленты
type Kind string

const (
	KindLoading Kind = "loading"
	KindEmpty   Kind = "empty"
	KindError   Kind = "error"
	KindList    Kind = "list"
)

// Item - отображаемый комментарий
type Item struct {
	ID     int64  `json:"id"`
	Author string `json:"author"`
	Date   string `json:"date"`
	Rating int    `json:"rating,omitempty"` // 0 - без оценки
	Stars  string `json:"stars,omitempty"`  // пусто, если оценки нет
	Text   string `json:"text"`
}

// DisplayState - описание области ленты без привязки к UI
type DisplayState struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message,omitempty"`
	Items   []Item `json:"items,omitempty"`
}

// Render строит состояние ленты, чистая функция
func Render(status Status, comments []client.Comment, loc *i18n.Localizer) DisplayState {
	switch status {
	case StatusLoading:
		return DisplayState{Kind: KindLoading, Message: loc.Text(i18n.KeyLoading)}
	case StatusFailed:
		return DisplayState{Kind: KindError, Message: loc.Text(i18n.KeyLoadError)}
	}

	if len(comments) == 0 {
		return DisplayState{Kind: KindEmpty, Message: loc.Text(i18n.KeyEmpty)}
	}

	items := make([]Item, 0, len(comments))
	for _, c := range comments {
		items = append(items, renderItem(c, loc))
	}
	return DisplayState{Kind: KindList, Items: items}
}

func renderItem(c client.Comment, loc *i18n.Localizer) Item {
	item := Item{
		ID:     c.ID,
		Author: c.UserName,
		Text:   c.CommentText,
		Date:   c.CreatedAt,
	}

	if item.Author == "" {
		item.Author = loc.Anonymous()
	}

	// Нераспознанная дата показывается как пришла
	if created, err := c.CreatedTime(); err == nil {
		item.Date = loc.FormatDateTime(created)
	}

	if c.Rating != nil && *c.Rating >= 1 && *c.Rating <= rating.MaxStars {
		item.Rating = *c.Rating
		item.Stars = rating.Glyphs(*c.Rating)
	}

	return item
}

// ErrorState - сообщение об ошибке вместо ленты
func ErrorState(message string) DisplayState {
	return DisplayState{Kind: KindError, Message: message}
}
