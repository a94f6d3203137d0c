package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsync/pkg/location"
	"github.com/goliatone/go-formsync/pkg/syncer"
)

func applyCmd(g *globals) *cobra.Command {
	var (
		rawURL string
		output string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "apply <page.html|-> --url URL",
		Short: "Copy in-range query parameters from a URL into a page's fields",
		Long: `Each query parameter is matched to the field whose id equals its name. The
value is written only when its leading number lies inside the field's min/max.

Examples:
  formsync apply page.html --url "https://example.test/stats?age=25"`,
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
			result, err := runner.ApplyQuery(cmd.Context(), doc, loc)
			if err != nil {
				return err
			}
			if !quiet {
				reportChanges(cmd.ErrOrStderr(), "applied", result.Applied)
				reportRejections(cmd.ErrOrStderr(), result.Rejected)
			}
			return writePage(doc, output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&rawURL, "url", "", "URL whose query string is applied")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the page here instead of stdout")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not report changes")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
