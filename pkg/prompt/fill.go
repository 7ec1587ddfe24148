package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/form"
)

const defaultMaxAttempts = 3

// FillOption configures Fill.
type FillOption func(*fillOptions)

type fillOptions struct {
	maxAttempts    int
	inlineValidate bool
}

// WithMaxAttempts bounds how often the fields failing validation are
// asked again. Values below 1 are ignored.
func WithMaxAttempts(n int) FillOption {
	return func(o *fillOptions) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithInlineValidation validates text answers while they are typed when
// the driver supports it.
func WithInlineValidation() FillOption {
	return func(o *fillOptions) {
		o.inlineValidate = true
	}
}

// Fill waits for the session's definition, asks for every field, submits
// and waits for the outcome. When validation fails only the failing
// fields are asked again. The final session state is returned together
// with any error.
func Fill(ctx context.Context, session *form.Session, driver Driver, opts ...FillOption) (form.State, error) {
	o := fillOptions{maxAttempts: defaultMaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}

	err := session.Wait(ctx)
	if err != nil {
		return session.Snapshot(), err
	}

	state := session.Snapshot()
	if state.LoadFailed() {
		return state, fmt.Errorf("%w: %s", ErrLoadFailed, state.Message)
	}

	if state.Definition == nil {
		return state, form.ErrNoDefinition
	}

	if state.Definition.Label != "" {
		_ = driver.Info(ctx, state.Definition.Label)
	}

	pending := state.Definition.Fields

	for attempt := 0; ; attempt++ {
		for _, field := range pending {
			value, err := ask(ctx, driver, field, session.Snapshot().Value(field), o)
			if err != nil {
				return session.Snapshot(), err
			}

			err = session.SetField(field.Name, value)
			if err != nil {
				return session.Snapshot(), fmt.Errorf("setting field %s: %w", field.Name, err)
			}
		}

		err = session.Submit()
		if err == nil {
			break
		}

		if !errors.Is(err, form.ErrInvalid) {
			return session.Snapshot(), err
		}

		state = session.Snapshot()
		pending = failingFields(state)

		if attempt+1 >= o.maxAttempts {
			return state, ErrTooManyAttempts
		}

		for _, field := range pending {
			_ = driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label, state.Errors[field.Name]))
		}
	}

	err = session.Wait(ctx)
	if err != nil {
		return session.Snapshot(), err
	}

	state = session.Snapshot()

	if state.Status != form.StatusSuccess {
		_ = driver.Info(ctx, state.Message)

		return state, fmt.Errorf("%w: %s", ErrSubmitFailed, state.Message)
	}

	_ = driver.Info(ctx, state.Message)

	return state, nil
}

func failingFields(state form.State) []cms.FormField {
	var out []cms.FormField

	for _, field := range state.Definition.Fields {
		if _, ok := state.Errors[field.Name]; ok {
			out = append(out, field)
		}
	}

	return out
}

func ask(ctx context.Context, driver Driver, field cms.FormField, current cms.FieldValue, o fillOptions) (cms.FieldValue, error) {
	message := field.Label
	if field.Required() {
		message += " *"
	}

	switch field.Type {
	case cms.KindCheckbox:
		answer, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Default: current.Bool()})
		if err != nil {
			return cms.FieldValue{}, err
		}

		return cms.BoolValue(answer), nil
	case cms.KindSelect, cms.KindRadio:
		if len(field.Options) > 0 {
			return askChoice(ctx, driver, field, message, current.String())
		}
	case cms.KindTextarea:
		answer, err := driver.Multiline(ctx, MultilineConfig{
			Message: message,
			Default: current.String(),
			Help:    field.Placeholder,
		})
		if err != nil {
			return cms.FieldValue{}, err
		}

		return cms.StringValue(answer), nil
	}

	cfg := InputConfig{Message: message, Default: current.String(), Help: field.Placeholder}
	if o.inlineValidate {
		cfg.Validator = func(answer string) error {
			errs := form.Validate([]cms.FormField{field}, cms.FieldValues{field.Name: cms.StringValue(answer)})
			if msg, ok := errs[field.Name]; ok {
				return errors.New(msg) //nolint:err113 // surfaced verbatim to the user
			}

			return nil
		}
	}

	answer, err := driver.Input(ctx, cfg)
	if err != nil {
		return cms.FieldValue{}, err
	}

	return cms.StringValue(answer), nil
}

func askChoice(ctx context.Context, driver Driver, field cms.FormField, message, current string) (cms.FieldValue, error) {
	labels := make([]string, len(field.Options))
	selected := 0

	for i, option := range field.Options {
		labels[i] = option.Label
		if option.Value == current {
			selected = i
		}
	}

	idx, err := driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: selected})
	if err != nil {
		return cms.FieldValue{}, err
	}

	if idx < 0 || idx >= len(field.Options) {
		return cms.StringValue(""), nil
	}

	return cms.StringValue(field.Options[idx].Value), nil
}
