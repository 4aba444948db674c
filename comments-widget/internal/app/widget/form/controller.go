package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"commentwidget/comments-widget/internal/app/widget/client"
	"commentwidget/comments-widget/internal/app/widget/i18n"
	"commentwidget/comments-widget/internal/app/widget/rating"
	"commentwidget/pkg/logger"
)

var (
	ErrTextRequired     = errors.New("comment text is required")
	ErrSubmitInProgress = errors.New("comment is already being submitted")
)

// Creator отправляет комментарий на сервер
type Creator interface {
	Create(ctx context.Context, body client.CreateRequest) (*client.Comment, error)
}

// FeedView - лента, которую форма перезагружает или заменяет ошибкой
type FeedView interface {
	Load(ctx context.Context) error
	ShowError(message string)
}

// Controller владеет полями формы и контролом рейтинга
type Controller struct {
	creator Creator
	feed    FeedView
	loc     *i18n.Localizer
	rating  *rating.Control

	mu         sync.Mutex
	author     string
	text       string
	submitting bool
}

func NewController(creator Creator, feed FeedView, loc *i18n.Localizer) *Controller {
	return &Controller{
		creator: creator,
		feed:    feed,
		loc:     loc,
		rating:  rating.New(loc),
	}
}

func (c *Controller) Rating() *rating.Control {
	return c.rating
}

func (c *Controller) SetAuthor(author string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.author = author
}

func (c *Controller) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

func (c *Controller) Author() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.author
}

func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Submit отправляет форму
// Пустой текст отклоняется без запроса; при ошибке сервера поля сохраняются
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}

	author := strings.TrimSpace(c.author)
	if author == "" {
		author = c.loc.Anonymous()
	}

	text := strings.TrimSpace(c.text)
	if text == "" {
		c.mu.Unlock()
		return ErrTextRequired
	}

	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	_, err := c.creator.Create(ctx, client.CreateRequest{
		UserName:    author,
		CommentText: text,
		Rating:      c.rating.Rating(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to submit comment")
		c.feed.ShowError(c.loc.Text(i18n.KeySubmitError))
		return err
	}

	c.mu.Lock()
	c.author = ""
	c.text = ""
	c.mu.Unlock()
	c.rating.Reset()

	// Ошибка перезагрузки уже показана лентой, сама отправка успешна
	if err := c.feed.Load(ctx); err != nil {
		logger.Warn().Err(err).Msg("Comment saved but feed reload failed")
	}
	return nil
}

// ValidationMessage - локализованный текст для ErrTextRequired
func (c *Controller) ValidationMessage(err error) string {
	if errors.Is(err, ErrTextRequired) {
		return c.loc.Text(i18n.KeyTextRequired)
	}
	return ""
}
