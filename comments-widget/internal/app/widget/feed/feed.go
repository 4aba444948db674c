package feed

import (
	"context"
	"sync"
	"sync/atomic"

	"commentwidget/comments-widget/internal/app/widget/client"
	"commentwidget/comments-widget/internal/app/widget/i18n"
	"commentwidget/pkg/logger"
)

// Lister - источник списка комментариев
type Lister interface {
	List(ctx context.Context) ([]client.Comment, error)
}

// Feed хранит текущее состояние ленты
// Каждая загрузка получает номер, ответы устаревших загрузок отбрасываются
type Feed struct {
	lister Lister
	loc    *i18n.Localizer

	seq atomic.Uint64

	mu    sync.Mutex
	state DisplayState
}

func New(lister Lister, loc *i18n.Localizer) *Feed {
	return &Feed{
		lister: lister,
		loc:    loc,
		state:  Render(StatusLoading, nil, loc),
	}
}

// Load запрашивает список и обновляет состояние
// Ошибка возвращается вызывающему, в ленте остается локализованное сообщение
func (f *Feed) Load(ctx context.Context) error {
	seq := f.seq.Add(1)
	f.apply(seq, Render(StatusLoading, nil, f.loc))

	comments, err := f.lister.List(ctx)
	if err != nil {
		logger.Error().Err(err).Uint64("seq", seq).Msg("Failed to load comments")
		f.apply(seq, Render(StatusFailed, nil, f.loc))
		return err
	}

	if !f.apply(seq, Render(StatusLoaded, comments, f.loc)) {
		logger.Debug().Uint64("seq", seq).Msg("Discarded stale comments response")
	}
	return nil
}

// ShowError заменяет ленту сообщением, загрузки в полете его не перезапишут
func (f *Feed) ShowError(message string) {
	seq := f.seq.Add(1)
	f.apply(seq, ErrorState(message))
}

func (f *Feed) State() DisplayState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Feed) apply(seq uint64, state DisplayState) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq.Load() {
		return false
	}
	f.state = state
	return true
}
