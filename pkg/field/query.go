package field

import (
	"net/url"
	"strings"
)

// Pair is a single key/value from a query string. Order and duplicates are
// preserved, unlike url.Values.
type Pair struct {
	Key   string
	Value string
}

// ParseQuery splits a raw query string into ordered pairs. A leading "?" is
// ignored, "+" decodes to a space, and malformed percent escapes are kept
// verbatim.
func ParseQuery(raw string) []Pair {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return nil
	}

	var pairs []Pair
	for _, segment := range strings.Split(raw, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		pairs = append(pairs, Pair{Key: unescape(key), Value: unescape(value)})
	}
	return pairs
}

func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return strings.ReplaceAll(s, "+", " ")
	}
	return decoded
}

// Rejection records a query pair ApplyQuery did not write.
type Rejection struct {
	Key    string
	Value  string
	Reason error
}

// ApplyResult summarises an ApplyQuery pass.
type ApplyResult struct {
	Applied  []Change
	Rejected []Rejection
}

// ApplyQuery copies query parameters into the fields whose Key matches. A value
// is written, trimmed but otherwise as given, only when its leading number
// (see ParseNumber) lies inside the field's closed [min, max] range; otherwise the field keeps its value and the pair is reported in
// Rejected. Pairs apply in query order. The input slice is not modified.
func ApplyQuery(fields []Field, rawQuery string) ([]Field, ApplyResult) {
	out := Clone(fields)
	var result ApplyResult

	index := make(map[string]int, len(out))
	for i := len(out) - 1; i >= 0; i-- {
		if key := out[i].Key(); key != "" {
			index[key] = i
		}
	}

	for _, pair := range ParseQuery(rawQuery) {
		reject := func(err error) {
			result.Rejected = append(result.Rejected, Rejection{Key: pair.Key, Value: pair.Value, Reason: wrap(pair.Key, err)})
		}

		i, ok := index[pair.Key]
		if !ok {
			reject(ErrUnknownField)
			continue
		}
		f := &out[i]

		n, err := ParseNumber(pair.Value)
		if err != nil {
			reject(ErrInvalidValue)
			continue
		}
		bounds, err := f.Bounds()
		if err != nil {
			reject(err)
			continue
		}
		if !bounds.Closed() {
			reject(ErrUnbounded)
			continue
		}
		if !bounds.Contains(n) {
			reject(ErrOutOfRange)
			continue
		}

		next := strings.TrimSpace(pair.Value)
		result.Applied = append(result.Applied, Change{Index: i, ID: f.Key(), From: f.Value, To: next})
		f.Value = next
	}

	return out, result
}

var unsuccessfulTypes = map[string]struct{}{
	"submit": {},
	"button": {},
	"reset":  {},
	"image":  {},
	"file":   {},
}

// Successful reports whether a browser would include the control when
// serialising its form.
func (f Field) Successful() bool {
	if !f.InForm || f.Disabled || strings.TrimSpace(f.Name) == "" {
		return false
	}
	typ := strings.ToLower(strings.TrimSpace(f.Type))
	if _, skip := unsuccessfulTypes[typ]; skip {
		return false
	}
	if typ == "checkbox" || typ == "radio" {
		return f.Checked
	}
	return true
}

// EncodeQuery serialises the successful controls as form-encoded key=value
// pairs in document order, without a leading "?". The output matches jQuery's
// serialize: components are escaped like encodeURIComponent with spaces as
// "+", line breaks in values become CRLF, and a multiple select contributes
// one pair per selected option.
func EncodeQuery(fields []Field) string {
	var b strings.Builder
	write := func(name, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(encodeComponent(name))
		b.WriteByte('=')
		b.WriteString(encodeComponent(normaliseNewlines(value)))
	}

	for _, f := range fields {
		if !f.Successful() {
			continue
		}
		name := strings.TrimSpace(f.Name)
		if f.Element == ElementSelect && f.Multiple {
			for _, value := range f.Selected {
				write(name, value)
			}
			continue
		}
		write(name, f.Value)
	}
	return b.String()
}

// url.QueryEscape escapes the marks encodeURIComponent leaves alone.
var unreservedMarks = strings.NewReplacer(
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return unreservedMarks.Replace(url.QueryEscape(s))
}

func normaliseNewlines(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", "\r\n")
}
