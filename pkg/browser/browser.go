// Package browser runs the sync operations against a live page driven through
// the Chrome DevTools protocol with rod. Page implements both
// syncer.Document and location.Location, reading and writing the real DOM
// and using history.replaceState for query updates.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/location"
	"github.com/goliatone/go-formsync/pkg/syncer"
)

const readFieldsJS = `() => Array.from(document.querySelectorAll("input, select, textarea")).map((el) => ({
	id: el.id || "",
	name: el.getAttribute("name") || "",
	element: el.tagName.toLowerCase(),
	type: el.tagName === "INPUT" ? (el.getAttribute("type") || "").toLowerCase() : "",
	value: el.value,
	min: el.getAttribute("min") || "",
	max: el.getAttribute("max") || "",
	label: el.labels && el.labels.length ? el.labels[0].textContent.trim() : "",
	options: el.tagName === "SELECT" ? Array.from(el.options).map((o) => o.value) : null,
	selected: el.tagName === "SELECT" ? Array.from(el.selectedOptions).map((o) => o.value) : null,
	multiple: el.tagName === "SELECT" && el.multiple,
	disabled: el.disabled,
	checked: !!el.checked,
	inForm: el.form !== null,
}))`

const writeFieldsJS = `(values) => {
	const els = document.querySelectorAll("input, select, textarea");
	if (els.length !== values.length) {
		return false;
	}
	values.forEach((v, i) => {
		const el = els[i];
		if (el.type === "checkbox" || el.type === "radio") {
			el.checked = v.checked;
		} else if (el.tagName === "SELECT" && el.multiple) {
			const chosen = new Set(v.selected || []);
			Array.from(el.options).forEach((o) => { o.selected = chosen.has(o.value); });
		} else if (el.value !== v.value) {
			el.value = v.value;
		}
	});
	return true;
}`

const replaceQueryJS = `(query) => history.replaceState(null, "", query === "" ? location.pathname : "?" + query)`

var errFieldMismatch = errors.New("browser: field count does not match page")

// Page adapts a rod page.
type Page struct {
	page *rod.Page
}

// Ensure Page implements the adapter contracts.
var (
	_ syncer.Document   = (*Page)(nil)
	_ location.Location = (*Page)(nil)
)

// Wrap adapts an existing rod page.
func Wrap(page *rod.Page) *Page {
	return &Page{page: page}
}

// Fields implements syncer.Document.
func (p *Page) Fields(ctx context.Context) ([]field.Field, error) {
	res, err := p.page.Context(ctx).Eval(readFieldsJS)
	if err != nil {
		return nil, fmt.Errorf("browser: read fields: %w", err)
	}
	var fields []field.Field
	if err := json.Unmarshal([]byte(res.Value.JSON("", "")), &fields); err != nil {
		return nil, fmt.Errorf("browser: decode fields: %w", err)
	}
	return fields, nil
}

// Apply implements syncer.Document.
func (p *Page) Apply(ctx context.Context, fields []field.Field) error {
	type payload struct {
		Value    string   `json:"value"`
		Checked  bool     `json:"checked"`
		Selected []string `json:"selected"`
	}
	values := make([]payload, len(fields))
	for i, f := range fields {
		values[i] = payload{Value: f.Value, Checked: f.Checked, Selected: f.Selected}
	}

	res, err := p.page.Context(ctx).Eval(writeFieldsJS, values)
	if err != nil {
		return fmt.Errorf("browser: write fields: %w", err)
	}
	if !res.Value.Bool() {
		return errFieldMismatch
	}
	return nil
}

// Path implements location.Location.
func (p *Page) Path(ctx context.Context) (string, error) {
	return p.evalString(ctx, `() => location.pathname`)
}

// Search implements location.Location.
func (p *Page) Search(ctx context.Context) (string, error) {
	return p.evalString(ctx, `() => location.search`)
}

// ReplaceQuery implements location.Location.
func (p *Page) ReplaceQuery(ctx context.Context, query string) error {
	if _, err := p.page.Context(ctx).Eval(replaceQueryJS, strings.TrimPrefix(query, "?")); err != nil {
		return fmt.Errorf("browser: replace query: %w", err)
	}
	return nil
}

// URL returns the page's current address.
func (p *Page) URL(ctx context.Context) (string, error) {
	return p.evalString(ctx, `() => location.href`)
}

// HistoryLength returns window.history.length.
func (p *Page) HistoryLength(ctx context.Context) (int, error) {
	res, err := p.page.Context(ctx).Eval(`() => history.length`)
	if err != nil {
		return 0, fmt.Errorf("browser: history length: %w", err)
	}
	return res.Value.Int(), nil
}

func (p *Page) evalString(ctx context.Context, js string) (string, error) {
	res, err := p.page.Context(ctx).Eval(js)
	if err != nil {
		return "", fmt.Errorf("browser: eval: %w", err)
	}
	return res.Value.Str(), nil
}

// Session owns a launched browser and the page opened in it.
type Session struct {
	*Page
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// Open launches a browser, navigates to url, and waits for the page to load.
func Open(ctx context.Context, url string, headless bool) (*Session, error) {
	l := launcher.New().Headless(headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("browser: open %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("browser: wait load: %w", err)
	}

	return &Session{Page: Wrap(page), launcher: l, browser: b}, nil
}

// Close shuts the browser down.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	err := s.browser.Close()
	s.launcher.Cleanup()
	return err
}
