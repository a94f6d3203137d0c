// Package htmldoc adapts a parsed HTML page to syncer.Document. Controls are
// located with XPath through htmlquery, and values are written back into the
// node tree so the page can be rendered again.
package htmldoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formsync/pkg/field"
)

const controlsXPath = `//*[local-name()='input' or local-name()='select' or local-name()='textarea']`

var (
	errNilRoot       = errors.New("htmldoc: document has no root")
	errFieldMismatch = errors.New("htmldoc: field count does not match document")
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

// Fields returns the input, select and textarea controls in document order.
func (d *Document) Fields(ctx context.Context) ([]field.Field, error) {
	nodes, err := d.controls(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]field.Field, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, d.readField(node))
	}
	return out, nil
}

// Apply writes field values back into the page. fields must line up with the
// slice returned by Fields. Controls whose state already matches are left as
// they are, so attributes are only added where a value actually changed.
func (d *Document) Apply(ctx context.Context, fields []field.Field) error {
	nodes, err := d.controls(ctx)
	if err != nil {
		return err
	}
	if len(nodes) != len(fields) {
		return fmt.Errorf("%w: %d fields, %d controls", errFieldMismatch, len(fields), len(nodes))
	}
	for i, node := range nodes {
		current := d.readField(node)
		writeValue(node, current, fields[i])
	}
	return nil
}

// Render writes the page as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return errNilRoot
	}
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("htmldoc: render: %w", err)
	}
	return nil
}

// String renders the page, returning an empty string on failure.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

func (d *Document) controls(ctx context.Context) ([]*html.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d == nil || d.root == nil {
		return nil, errNilRoot
	}
	nodes, err := htmlquery.QueryAll(d.root, controlsXPath)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: query controls: %w", err)
	}
	return nodes, nil
}

func (d *Document) readField(node *html.Node) field.Field {
	f := field.Field{
		ID:       attr(node, "id"),
		Name:     attr(node, "name"),
		Type:     strings.ToLower(attr(node, "type")),
		Min:      attr(node, "min"),
		Max:      attr(node, "max"),
		Disabled: hasAttr(node, "disabled"),
		Checked:  hasAttr(node, "checked"),
		InForm:   insideForm(node),
	}
	f.Label = d.labelFor(node, f.ID)

	switch node.DataAtom {
	case atom.Select:
		f.Element = field.ElementSelect
		f.Multiple = hasAttr(node, "multiple")
		f.Selected = selectedValues(node, f.Multiple)
		if len(f.Selected) > 0 {
			f.Value = f.Selected[0]
		}
		f.Options = optionValues(node)
	case atom.Textarea:
		f.Element = field.ElementTextArea
		f.Value = htmlquery.InnerText(node)
	default:
		f.Element = field.ElementInput
		f.Value = inputValue(node, f.Type)
	}
	return f
}

func (d *Document) labelFor(node *html.Node, id string) string {
	for p := node.Parent; p != nil; p = p.Parent {
		if p.DataAtom == atom.Label {
			return strings.TrimSpace(htmlquery.InnerText(p))
		}
	}
	if id == "" || strings.ContainsAny(id, `'"`) {
		return ""
	}
	label := htmlquery.FindOne(d.root, fmt.Sprintf("//label[@for='%s']", id))
	if label == nil {
		return ""
	}
	return strings.TrimSpace(htmlquery.InnerText(label))
}

func inputValue(node *html.Node, typ string) string {
	if value, ok := lookupAttr(node, "value"); ok {
		return value
	}
	if typ == "checkbox" || typ == "radio" {
		return "on"
	}
	return ""
}

// selectedValues returns the values of the selected options. A single select
// without an explicit selection reports its first option.
func selectedValues(node *html.Node, multiple bool) []string {
	options := htmlquery.Find(node, ".//option")
	var out []string
	for _, option := range options {
		if hasAttr(option, "selected") {
			out = append(out, optionValue(option))
			if !multiple {
				return out
			}
		}
	}
	if len(out) == 0 && !multiple && len(options) > 0 {
		out = append(out, optionValue(options[0]))
	}
	return out
}

func optionValues(node *html.Node) []string {
	options := htmlquery.Find(node, ".//option")
	if len(options) == 0 {
		return nil
	}
	out := make([]string, 0, len(options))
	for _, option := range options {
		out = append(out, optionValue(option))
	}
	return out
}

func optionValue(option *html.Node) string {
	if value, ok := lookupAttr(option, "value"); ok {
		return value
	}
	return strings.TrimSpace(htmlquery.InnerText(option))
}

func writeValue(node *html.Node, current, f field.Field) {
	switch node.DataAtom {
	case atom.Select:
		want := f.Selected
		if !f.Multiple {
			want = []string{f.Value}
		}
		if slices.Equal(current.Selected, want) {
			return
		}
		chosen := make(map[string]bool, len(want))
		for _, value := range want {
			chosen[value] = true
		}
		for _, option := range htmlquery.Find(node, ".//option") {
			value := optionValue(option)
			if chosen[value] {
				setAttr(option, "selected", "selected")
				if !f.Multiple {
					delete(chosen, value)
				}
			} else {
				removeAttr(option, "selected")
			}
		}
	case atom.Textarea:
		if current.Value == f.Value {
			return
		}
		for child := node.FirstChild; child != nil; {
			next := child.NextSibling
			node.RemoveChild(child)
			child = next
		}
		node.AppendChild(&html.Node{Type: html.TextNode, Data: f.Value})
	default:
		if current.Checked != f.Checked && (current.Type == "checkbox" || current.Type == "radio") {
			if f.Checked {
				setAttr(node, "checked", "checked")
			} else {
				removeAttr(node, "checked")
			}
		}
		if current.Value != f.Value {
			setAttr(node, "value", f.Value)
		}
	}
}

func insideForm(node *html.Node) bool {
	for p := node.Parent; p != nil; p = p.Parent {
		if p.DataAtom == atom.Form {
			return true
		}
	}
	return false
}
