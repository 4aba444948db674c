package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"commentwidget/comments-widget/internal/app/widget/feed"
)

var (
	authorStyle  = lipgloss.NewStyle().Bold(true)
	dateStyle    = lipgloss.NewStyle().Faint(true)
	starsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	textStyle    = lipgloss.NewStyle().PaddingLeft(2)
	messageStyle = lipgloss.NewStyle().Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

func printState(w io.Writer, state feed.DisplayState, opts *options) error {
	if opts.isJSON() {
		return printJSON(w, state)
	}
	_, err := io.WriteString(w, renderText(state))
	return err
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderText - текстовое представление ленты
func renderText(state feed.DisplayState) string {
	switch state.Kind {
	case feed.KindError:
		return errorStyle.Render(state.Message) + "\n"
	case feed.KindLoading, feed.KindEmpty:
		return messageStyle.Render(state.Message) + "\n"
	}

	var b strings.Builder
	for i, item := range state.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s\n", authorStyle.Render(item.Author), dateStyle.Render(item.Date))
		if item.Stars != "" {
			b.WriteString(textStyle.Render(starsStyle.Render(item.Stars)) + "\n")
		}
		b.WriteString(textStyle.Render(item.Text) + "\n")
	}
	return b.String()
}
