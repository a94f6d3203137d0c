package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formsync/pkg/formdef"
	"github.com/goliatone/go-formsync/pkg/page"
	"github.com/goliatone/go-formsync/pkg/server"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		addr       string
		formsDir   string
		templates  string
		stylesheet string
		noRedirect bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve form definitions over HTTP",
		Long: `Serve every form definition in a directory at /forms/{id}. Requests are
synced against their query string and redirected to the canonical query.

Examples:
  formsync serve --forms ./forms --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := formdef.LoadFS(os.DirFS(formsDir))
			if err != nil {
				return err
			}
			if store.Empty() {
				g.logger.Warn("no form definitions found", zap.String("dir", formsDir))
			}

			renderer, err := page.New(page.WithTemplatesDir(templates), page.WithStylesheet(stylesheet))
			if err != nil {
				return err
			}
			handler, err := server.New(store,
				server.WithLogger(g.logger),
				server.WithRenderer(renderer),
				server.WithRedirect(!noRedirect),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return listen(ctx, g.logger, addr, handler)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&formsDir, "forms", ".", "directory holding form definitions")
	cmd.Flags().StringVar(&templates, "templates", "", "directory overriding the embedded page templates")
	cmd.Flags().StringVar(&stylesheet, "stylesheet", "", "stylesheet URL linked from rendered pages")
	cmd.Flags().BoolVar(&noRedirect, "no-redirect", false, "render any query instead of redirecting to the canonical one")
	return cmd
}

func listen(ctx context.Context, logger *zap.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
