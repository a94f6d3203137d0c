package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsync/pkg/browser"
	"github.com/goliatone/go-formsync/pkg/syncer"
)

func browseCmd(g *globals) *cobra.Command {
	var (
		headful bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "browse <url>",
		Short: "Sync a live page in a browser and print its final URL",
		Long: `Open the URL in Chrome, apply its query string to the page's fields, clamp
the inputs, and replace the query with the page's form state. The history
entry is replaced in place; the page is not reloaded.

Examples:
  formsync browse "http://localhost:8000/stats.html?age=25"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			session, err := browser.Open(ctx, args[0], !headful)
			if err != nil {
				return err
			}
			defer session.Close()

			runner := syncer.New(syncer.WithLogger(g.logger))
			if _, err := runner.Sync(ctx, session.Page, session.Page); err != nil {
				return err
			}
			final, err := session.URL(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), final)
			return err
		},
	}
	cmd.Flags().BoolVar(&headful, "headful", false, "show the browser window")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	return cmd
}
