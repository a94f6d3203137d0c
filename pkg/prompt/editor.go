// Package prompt edits form fields interactively. Numeric inputs are validated
// against their declared bounds as the user types, so the edited form never
// needs clamping afterwards.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formsync/pkg/field"
)

// Option configures an Editor.
type Option func(*Editor)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// Editor walks a form's fields and asks for new values.
type Editor struct {
	driver Driver
}

// NewEditor constructs an Editor using survey unless WithDriver is given.
func NewEditor(options ...Option) *Editor {
	e := &Editor{}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver()
	}
	return e
}

// Edit prompts for every enabled field and returns the updated copy. The
// input slice is not modified.
func (e *Editor) Edit(ctx context.Context, title string, fields []field.Field) ([]field.Field, error) {
	out := field.Clone(fields)
	if strings.TrimSpace(title) != "" {
		if err := e.driver.Info(ctx, title); err != nil {
			return nil, err
		}
	}

	for i := range out {
		f := &out[i]
		if f.Disabled {
			continue
		}
		if err := e.editField(ctx, f); err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", f.Key(), err)
		}
	}
	return out, nil
}

func (e *Editor) editField(ctx context.Context, f *field.Field) error {
	message := displayLabel(*f)

	switch {
	case f.Element == field.ElementSelect && f.Multiple && len(f.Options) > 0:
		picked, err := e.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  f.Options,
			Selected: indexesOf(f.Options, f.Selected...),
		})
		if err != nil {
			return err
		}
		f.Selected = f.Selected[:0]
		for _, idx := range picked {
			if validIndex(f.Options, idx) {
				f.Selected = append(f.Selected, f.Options[idx])
			}
		}
		f.Value = ""
		if len(f.Selected) > 0 {
			f.Value = f.Selected[0]
		}
	case f.Element == field.ElementSelect && len(f.Options) > 0:
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:  message,
			Options:  f.Options,
			Selected: indexesOf(f.Options, f.Value),
		})
		if err != nil {
			return err
		}
		if validIndex(f.Options, idx) {
			f.Value = f.Options[idx]
			f.Selected = []string{f.Value}
		}
	case f.Element == field.ElementTextArea:
		value, err := e.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: f.Value})
		if err != nil {
			return err
		}
		f.Value = value
	case f.Type == "checkbox" || f.Type == "radio":
		checked, err := e.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: f.Checked})
		if err != nil {
			return err
		}
		f.Checked = checked
	case f.Type == "number" || f.Min != "" || f.Max != "":
		bounds, err := f.Bounds()
		if err != nil {
			return err
		}
		value, err := e.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   f.Value,
			Help:      boundsHelp(bounds),
			Validator: numberValidator(bounds),
		})
		if err != nil {
			return err
		}
		f.Value = strings.TrimSpace(value)
	default:
		value, err := e.driver.Input(ctx, InputConfig{Message: message, Default: f.Value})
		if err != nil {
			return err
		}
		f.Value = value
	}
	return nil
}

func numberValidator(bounds field.Bounds) func(string) error {
	return func(raw string) error {
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%q is not a whole number", raw)
		}
		if clamped, changed := bounds.Clamp(float64(n)); changed {
			return fmt.Errorf("%d is out of range (nearest allowed value is %d)", n, clamped)
		}
		return nil
	}
}

func boundsHelp(b field.Bounds) string {
	switch {
	case b.Closed():
		return fmt.Sprintf("Whole number between %d and %d.", b.Min, b.Max)
	case b.HasMin:
		return fmt.Sprintf("Whole number, at least %d.", b.Min)
	case b.HasMax:
		return fmt.Sprintf("Whole number, at most %d.", b.Max)
	default:
		return "Whole number."
	}
}

func displayLabel(f field.Field) string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Key()
}
