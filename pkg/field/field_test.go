package field_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsync/pkg/field"
)

func TestParseBounds(t *testing.T) {
	cases := []struct {
		name    string
		min     string
		max     string
		want    field.Bounds
		wantErr error
	}{
		{name: "closed", min: "0", max: "120", want: field.Bounds{Min: 0, Max: 120, HasMin: true, HasMax: true}},
		{name: "open max", min: " 3 ", want: field.Bounds{Min: 3, HasMin: true}},
		{name: "open", want: field.Bounds{}},
		{name: "non numeric min", min: "low", max: "10", wantErr: field.ErrInvalidBound},
		{name: "decimal max", min: "1", max: "2.5", wantErr: field.ErrInvalidBound},
		{name: "inverted", min: "10", max: "1", wantErr: field.ErrInvalidBound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := field.ParseBounds(tc.min, tc.max)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBoundsContainsRequiresBothSides(t *testing.T) {
	open := field.Bounds{Min: 0, HasMin: true}
	if open.Contains(5) {
		t.Fatalf("open range should not contain values")
	}

	closed := field.Bounds{Min: 0, Max: 120, HasMin: true, HasMax: true}
	for _, n := range []float64{0, 25, 120, 119.5} {
		if !closed.Contains(n) {
			t.Fatalf("expected %g in range", n)
		}
	}
	for _, n := range []float64{-1, -0.5, 120.5, 121} {
		if closed.Contains(n) {
			t.Fatalf("expected %g out of range", n)
		}
	}
}

func TestFieldKeyFallsBackToName(t *testing.T) {
	if got := (field.Field{ID: "age", Name: "years"}).Key(); got != "age" {
		t.Fatalf("expected id key, got %q", got)
	}
	if got := (field.Field{Name: " years "}).Key(); got != "years" {
		t.Fatalf("expected name key, got %q", got)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		raw     string
		want    float64
		wantErr error
	}{
		{raw: " 42 ", want: 42},
		{raw: "-7", want: -7},
		{raw: "+3", want: 3},
		{raw: "7.5", want: 7.5},
		{raw: ".5", want: 0.5},
		{raw: "1.", want: 1},
		{raw: "1e3", want: 1000},
		{raw: "2E-1", want: 0.2},
		{raw: "1e", want: 1},
		{raw: "12abc", want: 12},
		{raw: "0x10", want: 0},
		{raw: "99999999999999999999", want: 1e20},
		{raw: "1e400", want: math.Inf(1)},
		{raw: "-1e400", want: math.Inf(-1)},
		{raw: "", wantErr: field.ErrEmptyValue},
		{raw: "   ", wantErr: field.ErrEmptyValue},
		{raw: "abc", wantErr: field.ErrInvalidValue},
		{raw: "-", wantErr: field.ErrInvalidValue},
		{raw: ".", wantErr: field.ErrInvalidValue},
		{raw: "e5", wantErr: field.ErrInvalidValue},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := field.ParseNumber(tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %g, got %g", tc.want, got)
			}
		})
	}
}

func TestFieldNumberUsesValue(t *testing.T) {
	if n, err := (field.Field{Value: "25.5"}).Number(); err != nil || n != 25.5 {
		t.Fatalf("expected 25.5, got %g (%v)", n, err)
	}
	if _, err := (field.Field{}).Number(); !errors.Is(err, field.ErrEmptyValue) {
		t.Fatalf("expected ErrEmptyValue, got %v", err)
	}
}
