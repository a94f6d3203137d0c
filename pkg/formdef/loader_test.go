package formdef_test

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/formdef"
)

func TestLoadFS(t *testing.T) {
	store, err := formdef.LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"roll", "stats"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	roll, ok := store.Form("roll")
	if !ok {
		t.Fatalf("form roll missing")
	}
	if roll.Method != "GET" || roll.Action != "/roll" || roll.Title != "Roll dice" {
		t.Fatalf("unexpected form header: %+v", roll)
	}
	wantFields := []field.Field{
		{ID: "dice", Name: "dice", Element: field.ElementInput, Type: "number", Value: "3", Min: "1", Max: "20", Label: "Number of dice", InForm: true},
		{ID: "sides", Name: "sides", Element: field.ElementInput, Type: "number", Value: "6", Min: "2", Max: "100", Label: "Sides per die", InForm: true},
		{ID: "keep", Name: "keep", Element: field.ElementInput, Type: "number", Value: "1", Min: "0", Max: "20", InForm: true},
		{ID: "mode", Name: "mode", Element: field.ElementSelect, Value: "sum", Options: []string{"sum", "max", "min"}, InForm: true},
	}
	if diff := cmp.Diff(wantFields, roll.Fields); diff != "" {
		t.Fatalf("roll fields mismatch (-want +got):\n%s", diff)
	}

	stats, ok := store.Form("stats")
	if !ok {
		t.Fatalf("form stats missing")
	}
	if stats.Method != "POST" || stats.Title != "stats" {
		t.Fatalf("unexpected stats header: %+v", stats)
	}
	if stats.Fields[0].Min != "-50" || stats.Fields[0].Value != "10" {
		t.Fatalf("json numbers not kept as text: %+v", stats.Fields[0])
	}
}

func TestLoadFSErrors(t *testing.T) {
	cases := map[string]struct {
		file    string
		wantErr string
	}{
		"empty file": {file: "", wantErr: "is empty"},
		"bad bound": {
			file:    "forms:\n  f:\n    fields:\n      - id: a\n        min: low\n",
			wantErr: "invalid bound",
		},
		"inverted": {
			file:    "forms:\n  f:\n    fields:\n      - id: a\n        min: 9\n        max: 1\n",
			wantErr: "invalid bound",
		},
		"anonymous field": {
			file:    "forms:\n  f:\n    fields:\n      - value: 1\n",
			wantErr: "neither id nor name",
		},
		"duplicate field": {
			file:    "forms:\n  f:\n    fields:\n      - id: a\n      - name: a\n",
			wantErr: "duplicate field",
		},
		"unknown element": {
			file:    "forms:\n  f:\n    fields:\n      - id: a\n        element: button\n",
			wantErr: "unsupported element",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"forms.yaml": {Data: []byte(tc.file)}}
			_, err := formdef.LoadFS(fsys)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadFSDuplicateFormAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("forms:\n  f:\n    fields: []\n")},
		"b.yml":  {Data: []byte("forms:\n  f:\n    fields: []\n")},
	}
	if _, err := formdef.LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "duplicate form") {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
}

func TestLoadFSNil(t *testing.T) {
	store, err := formdef.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}
