package field

import (
	"fmt"
	"strconv"
	"strings"
)

// Element names the HTML element a Field was read from.
type Element string

const (
	ElementInput    Element = "input"
	ElementSelect   Element = "select"
	ElementTextArea Element = "textarea"
)

// Field is a form control as read from the UI. Attribute values stay as raw
// strings; Int and Bounds parse them on demand so callers can see exactly why a
// field was skipped.
type Field struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Element  Element  `json:"element,omitempty" yaml:"element,omitempty"`
	Type     string   `json:"type,omitempty" yaml:"type,omitempty"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
	Min      string   `json:"min,omitempty" yaml:"min,omitempty"`
	Max      string   `json:"max,omitempty" yaml:"max,omitempty"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
	Selected []string `json:"selected,omitempty" yaml:"selected,omitempty"`
	Multiple bool     `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Disabled bool     `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Checked  bool     `json:"checked,omitempty" yaml:"checked,omitempty"`
	InForm   bool     `json:"inForm,omitempty" yaml:"inForm,omitempty"`
}

// Key returns the identifier used to match query parameters: the element id,
// or the name when no id is set.
func (f Field) Key() string {
	if id := strings.TrimSpace(f.ID); id != "" {
		return id
	}
	return strings.TrimSpace(f.Name)
}

// IsInput reports whether the field is an <input>. An empty Element counts as
// an input.
func (f Field) IsInput() bool {
	return f.Element == "" || f.Element == ElementInput
}

// Number reads the leading number of the current value. See ParseNumber.
func (f Field) Number() (float64, error) {
	return ParseNumber(f.Value)
}

// Bounds parses the min and max attributes.
func (f Field) Bounds() (Bounds, error) {
	return ParseBounds(f.Min, f.Max)
}

// Bounds is the typed form of an element's min/max attributes. A side without
// a declared attribute is open.
type Bounds struct {
	Min    int
	Max    int
	HasMin bool
	HasMax bool
}

// ParseBounds parses raw min/max attribute strings. Empty strings leave the
// corresponding side open; anything else must be an integer.
func ParseBounds(minRaw, maxRaw string) (Bounds, error) {
	var b Bounds
	if raw := strings.TrimSpace(minRaw); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Bounds{}, fmt.Errorf("%w: min %q", ErrInvalidBound, minRaw)
		}
		b.Min, b.HasMin = n, true
	}
	if raw := strings.TrimSpace(maxRaw); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Bounds{}, fmt.Errorf("%w: max %q", ErrInvalidBound, maxRaw)
		}
		b.Max, b.HasMax = n, true
	}
	if b.HasMin && b.HasMax && b.Min > b.Max {
		return Bounds{}, fmt.Errorf("%w: min %d greater than max %d", ErrInvalidBound, b.Min, b.Max)
	}
	return b, nil
}

// Closed reports whether both sides are declared.
func (b Bounds) Closed() bool {
	return b.HasMin && b.HasMax
}

// Contains reports whether v lies within [Min, Max]. Both sides must be
// declared; an open range contains nothing.
func (b Bounds) Contains(v float64) bool {
	return b.Closed() && v >= float64(b.Min) && v <= float64(b.Max)
}

// Clamp returns the bound v crosses and true when v lies outside a declared
// side. Values inside the range report false.
func (b Bounds) Clamp(v float64) (int, bool) {
	if b.HasMax && v > float64(b.Max) {
		return b.Max, true
	}
	if b.HasMin && v < float64(b.Min) {
		return b.Min, true
	}
	return 0, false
}

// Clone returns a copy of fields.
func Clone(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].Options != nil {
			out[i].Options = append([]string(nil), out[i].Options...)
		}
		if out[i].Selected != nil {
			out[i].Selected = append([]string(nil), out[i].Selected...)
		}
	}
	return out
}
