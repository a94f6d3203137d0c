package page_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/formdef"
	"github.com/goliatone/go-formsync/pkg/htmldoc"
	"github.com/goliatone/go-formsync/pkg/page"
)

func TestRenderRoundTripsThroughHTMLDocument(t *testing.T) {
	renderer, err := page.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := formdef.Form{
		ID:     "roll",
		Title:  "Roll dice",
		Action: "/roll",
		Fields: []field.Field{
			{ID: "dice", Name: "dice", Element: field.ElementInput, Type: "number", Value: "3", Min: "1", Max: "20", Label: "Dice", InForm: true},
			{ID: "mode", Name: "mode", Element: field.ElementSelect, Value: "max", Options: []string{"sum", "max"}, Selected: []string{"max"}, InForm: true},
			{ID: "notes", Name: "notes", Element: field.ElementTextArea, Value: "a < b", InForm: true},
		},
	}

	out, err := renderer.RenderString(page.Data{Form: form, Query: "dice=3&mode=max"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `method="get"`) {
		t.Fatalf("expected lower-case default method:\n%s", out)
	}
	if !strings.Contains(out, "?dice=3&amp;mode=max") {
		t.Fatalf("expected escaped query summary:\n%s", out)
	}

	doc, err := htmldoc.ParseString(out)
	if err != nil {
		t.Fatalf("parse rendered page: %v", err)
	}
	fields, err := doc.Fields(context.Background())
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	// The submit control is a <button> and is not collected.
	if len(fields) != len(form.Fields) {
		t.Fatalf("expected %d controls, got %d", len(form.Fields), len(fields))
	}
	if diff := cmp.Diff(form.Fields, fields); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeLabel(t *testing.T) {
	got := page.SanitizeLabel(`  Max <em>dice</em><script>alert(1)</script> <a href="x">link</a> `)
	if got != "Max <em>dice</em> link" {
		t.Fatalf("unexpected label %q", got)
	}
}
