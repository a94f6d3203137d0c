package queryparams

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/formdef"
)

var (
	errEmptyDocument = errors.New("queryparams: document payload is empty")
	// ErrOperationNotFound is returned when no operation has the requested id.
	ErrOperationNotFound = errors.New("queryparams: operation not found")
)

// FormFromFile reads an OpenAPI document from disk and builds the form for
// operationID.
func FormFromFile(ctx context.Context, path, operationID string) (formdef.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return formdef.Form{}, fmt.Errorf("queryparams: read %s: %w", path, err)
	}
	form, err := FormFromDocument(ctx, data, operationID)
	if err != nil {
		return formdef.Form{}, err
	}
	form.Source = path
	return form, nil
}

// FormFromDocument builds a form from the query parameters of operationID.
// Path-level parameters are included before operation-level ones; an
// operation parameter overrides a path parameter with the same name.
func FormFromDocument(ctx context.Context, data []byte, operationID string) (formdef.Form, error) {
	if err := ctx.Err(); err != nil {
		return formdef.Form{}, err
	}
	if len(data) == 0 {
		return formdef.Form{}, errEmptyDocument
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return formdef.Form{}, fmt.Errorf("queryparams: load document: %w", err)
	}
	if doc.Paths == nil {
		return formdef.Form{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for key := range paths {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			return buildForm(path, method, item.Parameters, op), nil
		}
	}
	return formdef.Form{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

func buildForm(path, method string, shared openapi3.Parameters, op *openapi3.Operation) formdef.Form {
	form := formdef.Form{
		ID:          op.OperationID,
		Title:       strings.TrimSpace(op.Summary),
		Description: strings.TrimSpace(op.Description),
		Action:      path,
		Method:      strings.ToUpper(method),
	}
	if form.Title == "" {
		form.Title = op.OperationID
	}

	var params []*openapi3.Parameter
	index := make(map[string]int)
	for _, group := range []openapi3.Parameters{shared, op.Parameters} {
		for _, ref := range group {
			if ref == nil || ref.Value == nil || ref.Value.In != openapi3.ParameterInQuery {
				continue
			}
			if i, exists := index[ref.Value.Name]; exists {
				params[i] = ref.Value
				continue
			}
			index[ref.Value.Name] = len(params)
			params = append(params, ref.Value)
		}
	}

	for _, param := range params {
		form.Fields = append(form.Fields, fieldFromParameter(param))
	}
	return form
}

func fieldFromParameter(param *openapi3.Parameter) field.Field {
	f := field.Field{
		ID:      param.Name,
		Name:    param.Name,
		Element: field.ElementInput,
		Type:    "text",
		Label:   strings.TrimSpace(param.Description),
		InForm:  true,
	}
	if param.Schema == nil || param.Schema.Value == nil {
		return f
	}
	schema := param.Schema.Value

	switch {
	case len(schema.Enum) > 0:
		f.Element = field.ElementSelect
		f.Type = ""
		for _, option := range schema.Enum {
			f.Options = append(f.Options, formatValue(option))
		}
	case hasType(schema.Type, openapi3.TypeInteger), hasType(schema.Type, openapi3.TypeNumber):
		f.Type = "number"
		if schema.Min != nil {
			lo := math.Ceil(*schema.Min)
			if schema.ExclusiveMin && lo == *schema.Min {
				lo++
			}
			f.Min, _ = formatBound(lo)
		}
		if schema.Max != nil {
			hi := math.Floor(*schema.Max)
			if schema.ExclusiveMax && hi == *schema.Max {
				hi--
			}
			f.Max, _ = formatBound(hi)
		}
	case hasType(schema.Type, openapi3.TypeBoolean):
		f.Type = "checkbox"
	}

	if schema.Default != nil {
		f.Value = formatValue(schema.Default)
		if f.Type == "checkbox" {
			f.Checked = f.Value == "true"
			f.Value = "true"
		}
	} else if f.Type == "checkbox" {
		f.Value = "true"
	}
	return f
}

func hasType(types *openapi3.Types, want string) bool {
	if types == nil {
		return false
	}
	for _, typ := range types.Slice() {
		if typ == want {
			return true
		}
	}
	return false
}

// formatBound renders an integral bound. Bounds outside the int64 range
// cannot be represented as a min/max attribute and leave that side open.
func formatBound(v float64) (string, bool) {
	if math.IsNaN(v) || v < math.MinInt64 || v >= -math.MinInt64 {
		return "", false
	}
	return strconv.FormatInt(int64(v), 10), true
}

func formatValue(v any) string {
	switch typed := v.(type) {
	case float64:
		if typed == math.Trunc(typed) {
			if s, ok := formatBound(typed); ok {
				return s
			}
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}
