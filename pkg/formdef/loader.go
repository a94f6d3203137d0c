package formdef

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formsync/pkg/field"
)

// LoadFS walks fsys and parses every JSON/YAML form definition. When fsys is
// nil or holds no definition files, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}
		forms, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, form := range forms {
			if _, exists := store.forms[form.ID]; exists {
				return fmt.Errorf("formdef: duplicate form %q (file %s)", form.ID, path)
			}
			store.add(form)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes a single definition document. Forms are returned sorted by id.
func Parse(data []byte, source string) ([]Form, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(doc.Forms))
	for id := range doc.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	forms := make([]Form, 0, len(ids))
	for _, rawID := range ids {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, fmt.Errorf("formdef: file %s defines an empty form id", source)
		}
		form, err := normaliseForm(doc.Forms[rawID], id, source)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Action      string      `json:"action" yaml:"action"`
	Method      string      `json:"method" yaml:"method"`
	Fields      []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Element  string   `json:"element" yaml:"element"`
	Type     string   `json:"type" yaml:"type"`
	Label    string   `json:"label" yaml:"label"`
	Value    scalar   `json:"value" yaml:"value"`
	Min      scalar   `json:"min" yaml:"min"`
	Max      scalar   `json:"max" yaml:"max"`
	Disabled bool     `json:"disabled" yaml:"disabled"`
	Checked  bool     `json:"checked" yaml:"checked"`
	Options  []scalar `json:"options" yaml:"options"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formdef: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formdef: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(raw formFile, id, source string) (Form, error) {
	form := Form{
		ID:          id,
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Action:      strings.TrimSpace(raw.Action),
		Method:      strings.ToUpper(strings.TrimSpace(raw.Method)),
		Source:      source,
		Fields:      make([]field.Field, 0, len(raw.Fields)),
	}
	if form.Method == "" {
		form.Method = "GET"
	}
	if form.Title == "" {
		form.Title = id
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, rf := range raw.Fields {
		f := field.Field{
			ID:       strings.TrimSpace(rf.ID),
			Name:     strings.TrimSpace(rf.Name),
			Element:  field.Element(strings.ToLower(strings.TrimSpace(rf.Element))),
			Type:     strings.ToLower(strings.TrimSpace(rf.Type)),
			Label:    strings.TrimSpace(rf.Label),
			Value:    string(rf.Value),
			Min:      strings.TrimSpace(string(rf.Min)),
			Max:      strings.TrimSpace(string(rf.Max)),
			Disabled: rf.Disabled,
			Checked:  rf.Checked,
			InForm:   true,
		}
		for _, option := range rf.Options {
			f.Options = append(f.Options, string(option))
		}
		if f.ID == "" && f.Name == "" {
			return Form{}, fmt.Errorf("formdef: form %q (file %s) field %d has neither id nor name", id, source, idx)
		}
		if f.Name == "" {
			f.Name = f.ID
		}
		if f.ID == "" {
			f.ID = f.Name
		}
		if f.Element == "" {
			f.Element = field.ElementInput
		}
		switch f.Element {
		case field.ElementInput, field.ElementSelect, field.ElementTextArea:
		default:
			return Form{}, fmt.Errorf("formdef: form %q (file %s) field %q has unsupported element %q", id, source, f.ID, f.Element)
		}
		if _, exists := seen[f.ID]; exists {
			return Form{}, fmt.Errorf("formdef: form %q (file %s) defines duplicate field %q", id, source, f.ID)
		}
		seen[f.ID] = struct{}{}
		if _, err := f.Bounds(); err != nil {
			return Form{}, fmt.Errorf("formdef: form %q (file %s) field %q: %w", id, source, f.ID, err)
		}
		form.Fields = append(form.Fields, f)
	}
	return form, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
