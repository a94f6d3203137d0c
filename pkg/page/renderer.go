package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/formdef"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates  fs.FS
	name       string
	stylesheet string
	submit     string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) != "" {
			cfg.templates = os.DirFS(path)
		}
	}
}

// WithTemplateName selects the template file rendered for each form.
func WithTemplateName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithStylesheet links a stylesheet from the page head.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submit = trimmed
		}
	}
}

// Renderer turns forms into HTML pages.
type Renderer struct {
	mu   sync.Mutex
	set  *pongo2.TemplateSet
	tmpl *pongo2.Template
	cfg  config
}

// New constructs a Renderer with the embedded templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templates: TemplatesFS(),
		name:      DefaultTemplate,
		submit:    "Apply",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := pongo2.NewSet("formsync", pongo2.NewFSLoader(cfg.templates))
	tmpl, err := set.FromFile(cfg.name)
	if err != nil {
		return nil, fmt.Errorf("page: load template %q: %w", cfg.name, err)
	}
	return &Renderer{set: set, tmpl: tmpl, cfg: cfg}, nil
}

// Data is the per-request input to Render.
type Data struct {
	Form formdef.Form
	// Query is shown under the form when set, without the leading "?".
	Query string
}

// Render writes the page for data to w.
func (r *Renderer) Render(w io.Writer, data Data) error {
	if r == nil || r.tmpl == nil {
		return errors.New("page: renderer is nil")
	}

	ctx := pongo2.Context{
		"form":       formView(data.Form),
		"fields":     fieldViews(data.Form.Fields),
		"query":      data.Query,
		"stylesheet": r.cfg.stylesheet,
		"submit":     r.cfg.submit,
	}

	var buf bytes.Buffer
	r.mu.Lock()
	err := r.tmpl.ExecuteWriter(ctx, &buf)
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("page: execute template %q: %w", r.cfg.name, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("page: write: %w", err)
	}
	return nil
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(data Data) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

type formInfo struct {
	ID          string
	Title       string
	Description string
	Action      string
	Method      string
}

type fieldInfo struct {
	ID       string
	Name     string
	Element  string
	Type     string
	Value    string
	Min      string
	Max      string
	Label    string
	Options  []string
	Checked  bool
	Disabled bool
}

func formView(form formdef.Form) formInfo {
	method := form.Method
	if method == "" {
		method = "GET"
	}
	title := form.Title
	if title == "" {
		title = form.ID
	}
	return formInfo{
		ID:          form.ID,
		Title:       title,
		Description: form.Description,
		Action:      form.Action,
		Method:      method,
	}
}

func fieldViews(fields []field.Field) []fieldInfo {
	out := make([]fieldInfo, 0, len(fields))
	for _, f := range fields {
		element := string(f.Element)
		if element == "" {
			element = string(field.ElementInput)
		}
		out = append(out, fieldInfo{
			ID:       f.ID,
			Name:     f.Name,
			Element:  element,
			Type:     f.Type,
			Value:    f.Value,
			Min:      f.Min,
			Max:      f.Max,
			Label:    SanitizeLabel(f.Label),
			Options:  f.Options,
			Checked:  f.Checked,
			Disabled: f.Disabled,
		})
	}
	return out
}
