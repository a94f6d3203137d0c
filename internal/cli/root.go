package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is reported by --version.
var Version = "dev"

type globals struct {
	verbose bool
	logger  *zap.Logger
}

// NewRootCmd assembles the formsync command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:     "formsync",
		Short:   "Clamp form inputs and keep them in sync with the URL query",
		Version: Version,
		Long: `formsync keeps numeric form inputs inside their declared min/max bounds and
synchronises form state with URL query strings.

It works on HTML pages on disk, form definitions (YAML/JSON or OpenAPI), a
local HTTP server, or a live browser page.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g.verbose)
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = g.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log skipped fields and rejected parameters")

	root.AddCommand(clampCmd(g))
	root.AddCommand(applyCmd(g))
	root.AddCommand(serializeCmd(g))
	root.AddCommand(editCmd(g))
	root.AddCommand(serveCmd(g))
	root.AddCommand(browseCmd(g))
	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
