package render

import (
	"bytes"
	"io"
	"strconv"

	"github.com/flosch/pongo2/v6"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/form"
)

const (
	// DefaultLoadingText is shown while a form definition loads.
	DefaultLoadingText = "Loading form..."
	// DefaultSelectPrompt is the empty first option of select fields.
	DefaultSelectPrompt = "Select..."

	fieldIDPrefix = "form-field-"
	defaultMethod = "post"
)

// FormClasses are the CSS classes applied to the parts of a rendered form.
// Empty classes are omitted.
type FormClasses struct {
	Form           string
	Field          string
	Label          string
	Input          string
	Error          string
	ErrorContainer string
	Button         string
	Success        string
	Loading        string
}

// FieldContext is what a FieldRenderer receives for one field.
type FieldContext struct {
	Field   cms.FormField
	Value   cms.FieldValue
	Error   string
	ID      string
	LabelID string
	ErrorID string
}

// FieldRenderer replaces the built-in markup of a single field.
type FieldRenderer func(w io.Writer, field FieldContext) error

// FormOptions configures RenderForm.
type FormOptions struct {
	Classes FormClasses
	// Action and Method become the form element attributes. Method
	// defaults to "post".
	Action      string
	Method      string
	LoadingText string
	// FieldRenderer, when set, renders every field instead of the
	// built-in markup.
	FieldRenderer FieldRenderer
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type fieldView struct {
	ID          string
	LabelID     string
	ErrorID     string
	Name        string
	Label       string
	Kind        string
	InputType   string
	Placeholder string
	Prompt      string
	Value       string
	Checked     bool
	Required    bool
	Error       string
	Min         string
	Max         string
	Options     []optionView
}

type formView struct {
	State       string
	Slug        string
	Action      string
	Method      string
	Message     string
	LoadingText string
	ButtonLabel string
	Submitting  bool
	Fields      []string
}

// FieldID returns the element id used for the named field.
func FieldID(name string) string {
	return fieldIDPrefix + name
}

// RenderForm writes the markup for a form session snapshot: a loading
// notice, a load failure, the success message, or the form itself with
// its field errors and submit button. A state without a definition that
// is neither loading nor failed writes nothing.
func RenderForm(w io.Writer, state form.State, opts FormOptions) error {
	view := formView{
		Action:      opts.Action,
		Method:      opts.Method,
		Message:     state.Message,
		LoadingText: opts.LoadingText,
		ButtonLabel: state.ButtonLabel(),
		Submitting:  state.Status == form.StatusSubmitting,
	}

	if view.Method == "" {
		view.Method = defaultMethod
	}

	if view.LoadingText == "" {
		view.LoadingText = DefaultLoadingText
	}

	switch {
	case state.Status == form.StatusLoading:
		view.State = "loading"
	case state.LoadFailed():
		view.State = "load-error"
		if view.Message == "" {
			view.Message = form.DefaultLoadFailure
		}
	case state.Definition == nil:
		return nil
	case state.Status == form.StatusSuccess:
		view.State = "success"
	default:
		view.State = "form"
		view.Slug = state.Definition.Slug

		if state.Status != form.StatusError {
			view.Message = ""
		}

		fields, err := renderFields(state, opts)
		if err != nil {
			return err
		}

		view.Fields = fields
	}

	return execute(w, "form.html", pongo2.Context{
		"view":    view,
		"classes": opts.Classes,
	})
}

func renderFields(state form.State, opts FormOptions) ([]string, error) {
	fields := make([]string, 0, len(state.Definition.Fields))

	for _, field := range state.Definition.Fields {
		id := FieldID(field.Name)
		fc := FieldContext{
			Field:   field,
			Value:   state.Value(field),
			Error:   state.Errors[field.Name],
			ID:      id,
			LabelID: id + "-label",
			ErrorID: id + "-error",
		}

		var buf bytes.Buffer

		var err error
		if opts.FieldRenderer != nil {
			err = opts.FieldRenderer(&buf, fc)
		} else {
			err = renderField(&buf, fc, opts.Classes)
		}

		if err != nil {
			return nil, err
		}

		fields = append(fields, buf.String())
	}

	return fields, nil
}

// RenderField writes the built-in markup for one field.
func RenderField(w io.Writer, fc FieldContext, classes FormClasses) error {
	return renderField(w, fc, classes)
}

func renderField(w io.Writer, fc FieldContext, classes FormClasses) error {
	field := fc.Field
	value := fc.Value.String()

	view := fieldView{
		ID:          fc.ID,
		LabelID:     fc.LabelID,
		ErrorID:     fc.ErrorID,
		Name:        field.Name,
		Label:       field.Label,
		Kind:        string(field.Type),
		InputType:   inputType(field.Type),
		Placeholder: field.Placeholder,
		Prompt:      field.Placeholder,
		Value:       value,
		Checked:     fc.Value.Bool(),
		Required:    field.Required(),
		Error:       fc.Error,
	}

	if view.Prompt == "" {
		view.Prompt = DefaultSelectPrompt
	}

	if field.Type == cms.KindNumber && field.Validation != nil {
		view.Min = formatBound(field.Validation.Min)
		view.Max = formatBound(field.Validation.Max)
	}

	for _, option := range field.Options {
		view.Options = append(view.Options, optionView{
			Value:    option.Value,
			Label:    option.Label,
			Selected: option.Value == value,
		})
	}

	return execute(w, "field.html", pongo2.Context{
		"field":   view,
		"classes": classes,
	})
}

func inputType(kind cms.FieldKind) string {
	switch kind {
	case cms.KindEmail:
		return "email"
	case cms.KindPhone:
		return "tel"
	case cms.KindNumber:
		return "number"
	case cms.KindDate:
		return "date"
	default:
		return "text"
	}
}

func formatBound(bound *float64) string {
	if bound == nil {
		return ""
	}

	return strconv.FormatFloat(*bound, 'f', -1, 64)
}
