package location_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formsync/pkg/location"
)

func TestMemoryReplaceQueryKeepsHistory(t *testing.T) {
	ctx := context.Background()
	loc, err := location.NewMemory("https://example.test/search?old=1#results")
	if err != nil {
		t.Fatalf("new memory: %v", err)
	}
	if err := loc.Push("/report?age=3"); err != nil {
		t.Fatalf("push: %v", err)
	}
	lenBefore, reloadsBefore := loc.Len(), loc.Reloads()

	if err := loc.ReplaceQuery(ctx, "?name=x&count=5"); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if loc.Len() != lenBefore {
		t.Fatalf("expected %d entries, got %d", lenBefore, loc.Len())
	}
	if loc.Reloads() != reloadsBefore {
		t.Fatalf("replace must not reload")
	}
	search, _ := loc.Search(ctx)
	if search != "?name=x&count=5" {
		t.Fatalf("unexpected search %q", search)
	}
	path, _ := loc.Path(ctx)
	if path != "/report" {
		t.Fatalf("unexpected path %q", path)
	}
	if got := loc.URL(); got != "https://example.test/report?name=x&count=5" {
		t.Fatalf("unexpected url %q", got)
	}

	if err := loc.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if got := loc.URL(); got != "https://example.test/search?old=1#results" {
		t.Fatalf("previous entry changed: %q", got)
	}
	if err := loc.Back(); !errors.Is(err, location.ErrNoHistory) {
		t.Fatalf("expected ErrNoHistory, got %v", err)
	}
}

func TestMemoryReplaceDropsFragmentAndEmptyQuery(t *testing.T) {
	ctx := context.Background()
	loc, err := location.NewMemory("/page?a=1#top")
	if err != nil {
		t.Fatalf("new memory: %v", err)
	}
	if err := loc.ReplaceQuery(ctx, "?"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := loc.URL(); got != "/page" {
		t.Fatalf("unexpected url %q", got)
	}
	search, _ := loc.Search(ctx)
	if search != "" {
		t.Fatalf("expected empty search, got %q", search)
	}
}

func TestJoin(t *testing.T) {
	if got := location.Join("/p", "?a=1"); got != "/p?a=1" {
		t.Fatalf("unexpected %q", got)
	}
	if got := location.Join("/p", ""); got != "/p" {
		t.Fatalf("unexpected %q", got)
	}
}
