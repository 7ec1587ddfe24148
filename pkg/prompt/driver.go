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

// InputConfig configures a single line prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// MultilineConfig configures a multi-line text prompt.
type MultilineConfig struct {
	Message string
	Default string
	Help    string
}

// Driver abstracts the terminal so Fill can be tested without one.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Multiline(ctx context.Context, cfg MultilineConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

// SurveyDriver implements Driver with interactive survey prompts.
type SurveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

var _ Driver = (*SurveyDriver)(nil)

// NewSurveyDriver returns a driver bound to the process terminal. Info
// messages go to stdout.
func NewSurveyDriver() *SurveyDriver {
	return &SurveyDriver{out: os.Stdout}
}

// NewSurveyDriverWithStdio returns a driver reading from in and writing
// prompts and messages to out.
func NewSurveyDriverWithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *SurveyDriver {
	return &SurveyDriver{
		out:  out,
		opts: []survey.AskOpt{survey.WithStdio(in, out, errOut)},
	}
}

func (d *SurveyDriver) ask(prompt survey.Prompt, response interface{}, extra ...survey.AskOpt) error {
	opts := append(append([]survey.AskOpt{}, d.opts...), extra...)

	err := survey.AskOne(prompt, response, opts...)
	if err != nil {
		return translateSurveyErr(err)
	}

	return nil
}

// Input implements Driver.Input.
func (d *SurveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(stringValidator(cfg.Validator)))
	}

	var out string

	err := d.ask(&survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &out, opts...)

	return out, err
}

// Password implements Driver.Password.
func (d *SurveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(stringValidator(cfg.Validator)))
	}

	var out string

	err := d.ask(&survey.Password{Message: cfg.Message, Help: cfg.Help}, &out, opts...)

	return out, err
}

// Confirm implements Driver.Confirm.
func (d *SurveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var out bool

	err := d.ask(&survey.Confirm{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &out)

	return out, err
}

// Select implements Driver.Select. It returns the index of the chosen
// option.
func (d *SurveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}

	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}

	var out int

	err := d.ask(prompt, &out)
	if err != nil {
		return -1, err
	}

	return out, nil
}

// Multiline implements Driver.Multiline.
func (d *SurveyDriver) Multiline(ctx context.Context, cfg MultilineConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out string

	err := d.ask(&survey.Multiline{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}, &out)

	return out, err
}

// Info implements Driver.Info.
func (d *SurveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(d.out, msg)

	return err
}

func stringValidator(fn func(string) error) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)

		return fn(s)
	}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}

	return err
}
