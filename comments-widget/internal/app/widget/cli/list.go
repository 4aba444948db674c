package cli

import (
	"github.com/spf13/cobra"

	"commentwidget/comments-widget/internal/app/widget/feed"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show approved comments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := feed.New(opts.newClient(), opts.loc)
			loadErr := f.Load(cmd.Context())

			if err := printState(cmd.OutOrStdout(), f.State(), opts); err != nil {
				return err
			}
			return opts.apiError(loadErr)
		},
	}
}
