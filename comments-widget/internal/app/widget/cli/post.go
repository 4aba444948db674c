package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"commentwidget/comments-widget/internal/app/widget/feed"
	"commentwidget/comments-widget/internal/app/widget/form"
	"commentwidget/comments-widget/internal/app/widget/rating"
)

func newPostCmd(opts *options) *cobra.Command {
	var author string
	var stars int

	cmd := &cobra.Command{
		Use:   "post [--author NAME] [--rating 1-5] <text...>",
		Short: "Post a comment and show the refreshed feed",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := opts.newClient()
			f := feed.New(apiClient, opts.loc)
			controller := form.NewController(apiClient, f, opts.loc)

			// 0 - без оценки
			if err := controller.Rating().Select(stars); err != nil {
				return fmt.Errorf("rating must be 1-%d, got %d", rating.MaxStars, stars)
			}
			controller.SetAuthor(author)
			controller.SetText(strings.Join(args, " "))

			err := controller.Submit(cmd.Context())
			if errors.Is(err, form.ErrTextRequired) {
				return errors.New(controller.ValidationMessage(err))
			}

			// При ошибке отправки лента уже содержит сообщение
			if printErr := printState(cmd.OutOrStdout(), f.State(), opts); printErr != nil {
				return printErr
			}
			return opts.apiError(err)
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "author name (empty for anonymous)")
	cmd.Flags().IntVar(&stars, "rating", 0, "rating 1-5, 0 for none")

	return cmd
}
