// Package location abstracts the browser location bar: reading the current
// path and query string, and replacing the query without adding a history
// entry or reloading the page.
package location

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Location is the seam between the sync operations and whatever owns the URL.
type Location interface {
	// Path returns the current path without query or fragment.
	Path(ctx context.Context) (string, error)
	// Search returns the current query string including the leading "?", or
	// an empty string when there is none.
	Search(ctx context.Context) (string, error)
	// ReplaceQuery swaps the current entry's query for query (which may
	// carry a leading "?"), keeping the path, without navigating.
	ReplaceQuery(ctx context.Context, query string) error
}

var (
	// ErrNoHistory is returned by Back when the current entry is the first.
	ErrNoHistory = errors.New("location: no previous entry")
)

// Memory is an in-memory history stack. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries []*url.URL
	current int
	reloads int
}

// Ensure Memory implements Location.
var _ Location = (*Memory)(nil)

// NewMemory seeds a history with a single entry for raw.
func NewMemory(raw string) (*Memory, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("location: parse %q: %w", raw, err)
	}
	return &Memory{entries: []*url.URL{u}}, nil
}

// Path implements Location.
func (m *Memory) Path(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.entries[m.current].EscapedPath()
	if path == "" {
		path = "/"
	}
	return path, nil
}

// Search implements Location.
func (m *Memory) Search(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return searchOf(m.entries[m.current]), nil
}

// ReplaceQuery implements Location. Like a relative "?query" URL the fragment
// of the current entry is dropped.
func (m *Memory) ReplaceQuery(ctx context.Context, query string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	next := *m.entries[m.current]
	next.RawQuery = strings.TrimPrefix(query, "?")
	next.ForceQuery = false
	next.Fragment = ""
	next.RawFragment = ""
	m.entries[m.current] = &next
	return nil
}

// Push navigates to raw, resolved against the current entry, discarding any
// forward entries. It counts as a page load.
func (m *Memory) Push(raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("location: parse %q: %w", raw, err)
	}
	next := m.entries[m.current].ResolveReference(ref)
	m.entries = append(m.entries[:m.current+1], next)
	m.current++
	m.reloads++
	return nil
}

// Back moves to the previous entry.
func (m *Memory) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == 0 {
		return ErrNoHistory
	}
	m.current--
	m.reloads++
	return nil
}

// Len returns the number of history entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Reloads counts page loads caused by Push and Back.
func (m *Memory) Reloads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloads
}

// URL returns the current entry as a string.
func (m *Memory) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.current].String()
}

func searchOf(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}
	return "?" + u.RawQuery
}

// Join builds path plus query, adding the "?" separator when query is not
// empty.
func Join(path, query string) string {
	query = strings.TrimPrefix(query, "?")
	if query == "" {
		return path
	}
	return path + "?" + query
}
