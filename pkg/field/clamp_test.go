package field_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formsync/pkg/field"
)

func TestClampClipsToBounds(t *testing.T) {
	fields := []field.Field{
		{ID: "age", Value: "150", Min: "0", Max: "120"},
		{ID: "count", Value: "-4", Min: "1", Max: "10"},
		{ID: "ok", Value: "5", Min: "1", Max: "10"},
		{ID: "edge", Value: "10", Min: "1", Max: "10"},
	}

	got, result := field.Clamp(fields)

	wantValues := []string{"120", "1", "5", "10"}
	if diff := cmp.Diff(wantValues, values(got)); diff != "" {
		t.Fatalf("clamped values mismatch (-want +got):\n%s", diff)
	}
	if !result.Changed {
		t.Fatalf("expected Changed to be true")
	}
	wantChanges := []field.Change{
		{Index: 0, ID: "age", From: "150", To: "120"},
		{Index: 1, ID: "count", From: "-4", To: "1"},
	}
	if diff := cmp.Diff(wantChanges, result.Changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}

	if fields[0].Value != "150" {
		t.Fatalf("input slice was mutated: %q", fields[0].Value)
	}
}

func TestClampReportsUnchanged(t *testing.T) {
	fields := []field.Field{
		{ID: "a", Value: "3", Min: "0", Max: "9"},
		{ID: "b", Value: "0", Min: "0", Max: "9"},
	}

	got, result := field.Clamp(fields)
	if result.Changed {
		t.Fatalf("expected no change, got %+v", result.Changes)
	}
	if diff := cmp.Diff(fields, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestClampOneSidedBounds(t *testing.T) {
	fields := []field.Field{
		{ID: "floor", Value: "-2", Min: "0"},
		{ID: "ceiling", Value: "99", Max: "50"},
		{ID: "free", Value: "1000"},
	}

	got, result := field.Clamp(fields)
	if diff := cmp.Diff([]string{"0", "50", "1000"}, values(got)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(result.Changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(result.Changes))
	}
}

func TestClampNonIntegerValues(t *testing.T) {
	fields := []field.Field{
		{ID: "dec", Value: "7.5", Min: "0", Max: "5"},
		{ID: "big", Value: "99999999999999999999", Min: "0", Max: "10"},
		{ID: "exp", Value: "1e3", Min: "0", Max: "10"},
		{ID: "negexp", Value: "-2e1", Min: "0", Max: "10"},
		{ID: "fraction", Value: "5.5", Min: "0", Max: "5"},
		{ID: "under", Value: "-0.5", Min: "0", Max: "5"},
		{ID: "inside", Value: "2.5", Min: "0", Max: "5"},
		{ID: "suffix", Value: "12kg", Min: "0", Max: "10"},
	}

	got, result := field.Clamp(fields)
	want := []string{"5", "10", "10", "0", "5", "0", "2.5", "10"}
	if diff := cmp.Diff(want, values(got)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(result.Skipped) != 0 {
		t.Fatalf("expected nothing skipped, got %+v", result.Skipped)
	}
	if len(result.Changes) != 7 {
		t.Fatalf("expected 7 changes, got %+v", result.Changes)
	}
}

func TestClampSkipsUnparsableFields(t *testing.T) {
	fields := []field.Field{
		{ID: "text", Value: "hello", Min: "0", Max: "5"},
		{ID: "empty", Value: "", Min: "0", Max: "5"},
		{ID: "badmax", Value: "9", Min: "0", Max: "five"},
		{ID: "select", Element: field.ElementSelect, Value: "99", Min: "0", Max: "5"},
	}

	got, result := field.Clamp(fields)
	if result.Changed {
		t.Fatalf("expected no change")
	}
	if diff := cmp.Diff(fields, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	wantSkipped := []field.Skip{
		{Index: 0, ID: "text", Reason: field.ErrInvalidValue},
		{Index: 1, ID: "empty", Reason: field.ErrEmptyValue},
		{Index: 2, ID: "badmax", Reason: field.ErrInvalidBound},
	}
	if diff := cmp.Diff(wantSkipped, result.Skipped, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestClampPropertyWithinBounds(t *testing.T) {
	var fields []field.Field
	for v := -30; v <= 30; v += 3 {
		fields = append(fields, field.Field{Value: itoa(v), Min: "-10", Max: "10"})
	}
	for _, raw := range []string{"10.5", "-10.01", "9.99", "1e1", "1e2", "-1e400", "123456789012345678901234567890", "3px"} {
		fields = append(fields, field.Field{Value: raw, Min: "-10", Max: "10"})
	}

	got, _ := field.Clamp(fields)
	for i, f := range got {
		n, err := f.Number()
		if err != nil {
			t.Fatalf("field %d: %v", i, err)
		}
		if n < -10 || n > 10 {
			t.Fatalf("field %d: %g outside [-10, 10]", i, n)
		}
		orig, _ := fields[i].Number()
		if orig >= -10 && orig <= 10 && f.Value != fields[i].Value {
			t.Fatalf("field %d: in-range value %q changed to %q", i, fields[i].Value, f.Value)
		}
	}
}
