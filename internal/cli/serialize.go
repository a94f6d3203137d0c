package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsync/pkg/location"
	"github.com/goliatone/go-formsync/pkg/syncer"
)

func serializeCmd(g *globals) *cobra.Command {
	var (
		rawURL string
		sync   bool
	)

	cmd := &cobra.Command{
		Use:   "serialize <page.html|->",
		Short: "Print a URL whose query string holds the page's form state",
		Long: `Serialise the page's form controls in document order and print the URL with
its query string replaced.

With --sync the URL's query is applied and the inputs clamped first, the same
sequence a page runs on load.

Examples:
  formsync serialize page.html --url https://example.test/stats
  formsync serialize page.html --url "https://example.test/stats?age=999" --sync`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readPage(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			loc, err := location.NewMemory(rawURL)
			if err != nil {
				return err
			}

			runner := syncer.New(syncer.WithLogger(g.logger))
			if sync {
				_, err = runner.Sync(cmd.Context(), doc, loc)
			} else {
				_, err = runner.UpdateQuery(cmd.Context(), doc, loc)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), loc.URL())
			return err
		},
	}
	cmd.Flags().StringVar(&rawURL, "url", "/", "URL whose query string is replaced")
	cmd.Flags().BoolVar(&sync, "sync", false, "apply the URL query and clamp before serialising")
	return cmd
}
