package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig describes a one-line answer. Validator runs on every submit and
// keeps the prompt open while it returns an error.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig describes a checkbox or radio toggle.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig describes a choice among a select's options. Selected holds the
// indexes chosen when the prompt opens; a single select uses the first.
type SelectConfig struct {
	Message  string
	Options  []string
	Selected []int
	Help     string
}

// TextAreaConfig describes a textarea answer.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// Driver is the terminal the Editor talks to.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver draws prompts with survey on the process terminal.
func NewSurveyDriver() Driver {
	return &surveyDriver{out: os.Stdout}
}

// ask runs a single survey prompt. Cancellation is checked before the terminal
// is touched, and Ctrl+C surfaces as ErrAborted.
func ask(ctx context.Context, p survey.Prompt, answer any, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(p, answer, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var opts []survey.AskOpt
	if validate := cfg.Validator; validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}
	var answer string
	err := ask(ctx, &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &answer, opts...)
	return answer, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var answer bool
	err := ask(ctx, &survey.Confirm{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &answer)
	return answer, err
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	p := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if len(cfg.Selected) > 0 && validIndex(cfg.Options, cfg.Selected[0]) {
		p.Default = cfg.Selected[0]
	}
	// survey writes the chosen index when the answer is an int.
	var answer int
	if err := ask(ctx, p, &answer); err != nil {
		return -1, err
	}
	return answer, nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	p := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	var defaults []int
	for _, idx := range cfg.Selected {
		if validIndex(cfg.Options, idx) {
			defaults = append(defaults, idx)
		}
	}
	if len(defaults) > 0 {
		p.Default = defaults
	}
	var answer []int
	if err := ask(ctx, p, &answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var answer string
	err := ask(ctx, &survey.Multiline{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &answer)
	return answer, err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func validIndex(options []string, idx int) bool {
	return idx >= 0 && idx < len(options)
}

// indexesOf maps values to their positions in options, dropping unknown ones.
func indexesOf(options []string, values ...string) []int {
	var out []int
	for _, value := range values {
		for i, option := range options {
			if option == value {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
