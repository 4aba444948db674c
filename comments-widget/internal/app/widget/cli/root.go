// Package cli - терминальная версия виджета комментариев
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"commentwidget/comments-widget/internal/app/widget/client"
	"commentwidget/comments-widget/internal/app/widget/i18n"
	"commentwidget/pkg/logger"
)

const (
	appName        = "comments-widget"
	defaultAPIURL  = "http://localhost:3000/api"
	formatText     = "text"
	formatJSON     = "json"
	requestTimeout = 10 * time.Second
)

// options - глобальные флаги, общие для подкоманд
type options struct {
	apiURL   string
	lang     string
	format   string
	logLevel string
	timezone string

	loc *i18n.Localizer
}

// NewRootCmd создает дерево команд
// Флаги --api-url и --lang берут значения по умолчанию из COMMENTS_API_URL и COMMENTS_LANG
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Comment widget in the terminal",
		Long:          "Lists approved comments and posts new ones with an optional 1-5 star rating.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", envOr("COMMENTS_API_URL", defaultAPIURL), "comments API base URL")
	flags.StringVar(&opts.lang, "lang", envOr("COMMENTS_LANG", "ru"), "interface language (ru|en)")
	flags.StringVar(&opts.format, "format", formatText, "output format (text|json)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	flags.StringVar(&opts.timezone, "tz", "", "time zone for comment dates (default: local)")

	root.AddCommand(
		newListCmd(opts),
		newPostCmd(opts),
	)

	return root
}

func (o *options) init(cmd *cobra.Command) error {
	logger.InitWithWriter(appName, o.logLevel, cmd.ErrOrStderr())

	if o.format != formatText && o.format != formatJSON {
		return fmt.Errorf("invalid format %q (must be text or json)", o.format)
	}

	loc, err := i18n.New(o.lang)
	if err != nil {
		return err
	}

	if o.timezone != "" {
		tz, err := time.LoadLocation(o.timezone)
		if err != nil {
			return fmt.Errorf("invalid time zone %q: %w", o.timezone, err)
		}
		loc = loc.WithLocation(tz)
	}

	o.loc = loc
	return nil
}

func (o *options) newClient() *client.CommentsClient {
	return client.NewCommentsClient(o.apiURL, requestTimeout)
}

// apiError добавляет адрес API к ошибкам сети и HTTP
func (o *options) apiError(err error) error {
	if client.IsTransportError(err) {
		return fmt.Errorf("comments API %s: %w", o.apiURL, err)
	}
	return err
}

func (o *options) isJSON() bool {
	return o.format == formatJSON
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
