package i18n

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Ключи сообщений виджета
const (
	KeyLoading       = "feed.loading"
	KeyEmpty         = "feed.empty"
	KeyLoadError     = "feed.load_error"
	KeySubmitError   = "form.submit_error"
	KeyTextRequired  = "form.text_required"
	KeyAnonymous     = "author.anonymous"
	keyRatingPrefix  = "rating."
	ratingLabelCount = 6
)

// Supported - языки виджета, первый используется по умолчанию
var Supported = []language.Tag{language.Russian, language.English}

var (
	messages = catalog.NewBuilder(catalog.Fallback(language.Russian))
	matcher  = language.NewMatcher(Supported)
)

type dictionary struct {
	texts  map[string]string
	rating [ratingLabelCount]string // 0 - приглашение, дальше по возрастанию оценки
}

var dictionaries = map[language.Tag]dictionary{
	language.Russian: {
		texts: map[string]string{
			KeyLoading:      "Загрузка комментариев...",
			KeyEmpty:        "Пока нет комментариев. Будьте первым!",
			KeyLoadError:    "Не удалось загрузить комментарии. Пожалуйста, обновите страницу.",
			KeySubmitError:  "Ошибка при отправке комментария. Пожалуйста, попробуйте снова.",
			KeyTextRequired: "Пожалуйста, введите текст комментария",
			KeyAnonymous:    "Аноним",
		},
		rating: [ratingLabelCount]string{"Оцените нас!", "Ужасно", "Плохо", "Нормально", "Хорошо", "Отлично"},
	},
	language.English: {
		texts: map[string]string{
			KeyLoading:      "Loading comments...",
			KeyEmpty:        "No comments yet. Be the first!",
			KeyLoadError:    "Failed to load comments. Please refresh the page.",
			KeySubmitError:  "Failed to send the comment. Please try again.",
			KeyTextRequired: "Please enter the comment text",
			KeyAnonymous:    "Anonymous",
		},
		rating: [ratingLabelCount]string{"Rate us!", "Terrible", "Bad", "Normal", "Good", "Excellent"},
	},
}

// Длинный формат даты: monday подставляет месяц в родительном падеже, если перед ним число
var dateLayouts = map[language.Tag]struct {
	locale monday.Locale
	layout string
}{
	language.Russian: {monday.LocaleRuRU, "2 January 2006 г. в 15:04"},
	language.English: {monday.LocaleEnUS, "January 2, 2006 at 15:04"},
}

func init() {
	for tag, dict := range dictionaries {
		for key, text := range dict.texts {
			mustSet(tag, key, text)
		}
		for i, label := range dict.rating {
			mustSet(tag, ratingKey(i), label)
		}
	}
}

func mustSet(tag language.Tag, key, text string) {
	if err := messages.SetString(tag, key, text); err != nil {
		panic(fmt.Sprintf("i18n: register %s/%s: %v", tag, key, err))
	}
}

func ratingKey(i int) string {
	return keyRatingPrefix + strconv.Itoa(i)
}

// Localizer выдает строки и форматирует даты для одного языка
type Localizer struct {
	tag      language.Tag
	printer  *message.Printer
	location *time.Location
}

// New подбирает ближайший поддерживаемый язык
// Неизвестный язык дает русский, ошибка только для некорректного тега
func New(lang string) (*Localizer, error) {
	tag := Supported[0]
	if lang != "" {
		requested, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", lang, err)
		}
		_, index, _ := matcher.Match(requested)
		tag = Supported[index]
	}

	return &Localizer{
		tag:      tag,
		printer:  message.NewPrinter(tag, message.Catalog(messages)),
		location: time.Local,
	}, nil
}

// MustNew для тестов и значений по умолчанию
func MustNew(lang string) *Localizer {
	l, err := New(lang)
	if err != nil {
		panic(err)
	}
	return l
}

// WithLocation возвращает копию, показывающую время в заданной зоне
func (l *Localizer) WithLocation(loc *time.Location) *Localizer {
	clone := *l
	clone.location = loc
	return &clone
}

func (l *Localizer) Tag() language.Tag {
	return l.tag
}

func (l *Localizer) Text(key string) string {
	return l.printer.Sprintf(key)
}

// RatingLabel - подпись под звездами, вне 0..5 возвращает приглашение
func (l *Localizer) RatingLabel(rating int) string {
	if rating < 0 || rating >= ratingLabelCount {
		rating = 0
	}
	return l.printer.Sprintf(ratingKey(rating))
}

func (l *Localizer) Anonymous() string {
	return l.Text(KeyAnonymous)
}

// FormatDateTime - длинная дата с часами и минутами
// ru: "1 марта 2024 г. в 10:05", en: "March 1, 2024 at 10:05"
func (l *Localizer) FormatDateTime(t time.Time) string {
	f := dateLayouts[l.tag]
	return monday.Format(t.In(l.location), f.layout, f.locale)
}
