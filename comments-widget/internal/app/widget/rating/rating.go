package rating

import (
	"errors"
	"fmt"
	"sync"

	"commentwidget/comments-widget/internal/app/widget/i18n"
)

const MaxStars = 5

var ErrOutOfRange = errors.New("rating out of range")

// Control - состояние звездного рейтинга формы
// current 0 - оценка не выбрана, hover 0 - курсор не над звездами
type Control struct {
	mu      sync.Mutex
	current int
	hover   int
	loc     *i18n.Localizer
}

func New(loc *i18n.Localizer) *Control {
	return &Control{loc: loc}
}

// Select фиксирует оценку 1..5, 0 снимает выбор
func (c *Control) Select(value int) error {
	if value < 0 || value > MaxStars {
		return fmt.Errorf("%w: %d", ErrOutOfRange, value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = value
	return nil
}

// PreviewHover подсвечивает звезды без изменения оценки, 0 снимает подсветку
func (c *Control) PreviewHover(value int) error {
	if value < 0 || value > MaxStars {
		return fmt.Errorf("%w: %d", ErrOutOfRange, value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.hover = value
	return nil
}

func (c *Control) ClearHover() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hover = 0
}

// Reset вызывается после успешной отправки формы
func (c *Control) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = 0
	c.hover = 0
}

func (c *Control) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Control) Hover() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hover
}

// Rating - значение для запроса, nil если оценка не выбрана
func (c *Control) Rating() *int {
	value := c.Value()
	if value == 0 {
		return nil
	}
	return &value
}

// Label - подпись выбранной оценки
func (c *Control) Label() string {
	return c.loc.RatingLabel(c.Value())
}

// Stars возвращает заполненность звезд 1..5
// При подсветке действует hover, иначе выбранная оценка
func (c *Control) Stars() [MaxStars]bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	level := c.current
	if c.hover > 0 {
		level = c.hover
	}

	var stars [MaxStars]bool
	for i := 1; i <= MaxStars; i++ {
		stars[i-1] = i <= level
	}
	return stars
}

// Glyphs - текстовое представление звезд для терминала
func Glyphs(filled int) string {
	if filled < 0 {
		filled = 0
	}
	if filled > MaxStars {
		filled = MaxStars
	}

	out := make([]rune, 0, MaxStars)
	for i := 1; i <= MaxStars; i++ {
		if i <= filled {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}
