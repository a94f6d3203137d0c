package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsync/pkg/syncer"
)

// errChanged is returned by clamp --check when any input was out of range.
var errChanged = errors.New("inputs were out of range")

func clampCmd(g *globals) *cobra.Command {
	var (
		output string
		check  bool
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "clamp <page.html|->",
		Short: "Clip numeric inputs in an HTML page to their min/max",
		Long: `Clip every numeric <input> in the page to its declared min/max attributes.
Inputs without numeric values or bounds are left alone.

Examples:
  formsync clamp page.html                 # print the clamped page
  formsync clamp page.html -o fixed.html   # write it to a file
  formsync clamp page.html --check         # exit 1 if anything was out of range`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readPage(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			runner := syncer.New(syncer.WithLogger(g.logger))
			result, err := runner.ClampDetailed(cmd.Context(), doc)
			if err != nil {
				return err
			}
			if !quiet {
				reportChanges(cmd.ErrOrStderr(), "clamped", result.Changes)
			}
			if check {
				if result.Changed {
					return errChanged
				}
				return nil
			}
			return writePage(doc, output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the page here instead of stdout")
	cmd.Flags().BoolVar(&check, "check", false, "only report; fail when a value would change")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not report changes")
	return cmd
}
