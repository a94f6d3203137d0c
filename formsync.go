package formsync

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/htmldoc"
	"github.com/goliatone/go-formsync/pkg/location"
	"github.com/goliatone/go-formsync/pkg/syncer"
)

// Field aliases field.Field so callers of the root package do not need a
// second import for the common case.
type Field = field.Field

// ClampResult aliases field.ClampResult.
type ClampResult = field.ClampResult

// ApplyResult aliases field.ApplyResult.
type ApplyResult = field.ApplyResult

// Option aliases syncer.Option.
type Option = syncer.Option

// WithLogger is re-exported from the syncer package.
var WithLogger = syncer.WithLogger

// NewSyncer exposes the syncer constructor from the top-level module.
func NewSyncer(options ...Option) *syncer.Syncer {
	return syncer.New(options...)
}

// ClampHTML parses the page in r, clips every numeric input to its bounds and
// writes the page to w. It reports whether any value changed.
func ClampHTML(ctx context.Context, r io.Reader, w io.Writer, options ...Option) (bool, error) {
	doc, err := htmldoc.Parse(r)
	if err != nil {
		return false, err
	}
	changed, err := syncer.New(options...).Clamp(ctx, doc)
	if err != nil {
		return false, err
	}
	if err := doc.Render(w); err != nil {
		return false, err
	}
	return changed, nil
}

// SyncHTML runs the page-load sequence on the page in r as if it had been
// opened at rawURL: query values are applied, inputs are clamped and the form
// state is serialised back into the URL. The page is written to w and the
// synced URL is returned.
func SyncHTML(ctx context.Context, r io.Reader, w io.Writer, rawURL string, options ...Option) (string, error) {
	doc, err := htmldoc.Parse(r)
	if err != nil {
		return "", err
	}
	loc, err := location.NewMemory(rawURL)
	if err != nil {
		return "", err
	}
	if _, err := syncer.New(options...).Sync(ctx, doc, loc); err != nil {
		return "", fmt.Errorf("formsync: sync %q: %w", rawURL, err)
	}
	if err := doc.Render(w); err != nil {
		return "", err
	}
	return loc.URL(), nil
}
