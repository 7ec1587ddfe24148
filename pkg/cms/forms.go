package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldKind is the input kind of a form field.
type FieldKind string

// Form field kinds understood by the validator and the renderers.
const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindPhone    FieldKind = "phone"
	KindTextarea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
	KindRadio    FieldKind = "radio"
	KindDate     FieldKind = "date"
)

// FieldOption is one choice of a select or radio field.
type FieldOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FieldValidation holds the constraints of a form field. Min and Max bound
// the numeric value of number fields and the character length of every
// other kind.
type FieldValidation struct {
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Min      *float64 `json:"min,omitempty"      yaml:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"      yaml:"max,omitempty"`
	Regex    string   `json:"regex,omitempty"    yaml:"regex,omitempty"`
}

// FormField is one field of a form definition.
type FormField struct {
	Name        string           `json:"name"                  yaml:"name"`
	Type        FieldKind        `json:"type"                  yaml:"type"`
	Label       string           `json:"label"                 yaml:"label"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []FieldOption    `json:"options,omitempty"     yaml:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty"  yaml:"validation,omitempty"`
}

// Required reports whether the field must be filled in.
func (f FormField) Required() bool {
	return f.Validation != nil && f.Validation.Required
}

// FormDefinition is a form as served by GET /forms/{slug}. Field order is
// display and validation order.
type FormDefinition struct {
	ID             int         `json:"id"                        yaml:"id"`
	Slug           string      `json:"slug"                      yaml:"slug"`
	Label          string      `json:"label"                     yaml:"label"`
	Fields         []FormField `json:"fields"                    yaml:"fields"`
	SuccessMessage string      `json:"success_message,omitempty" yaml:"success_message,omitempty"`
}

// Field returns the field with the given name.
func (d *FormDefinition) Field(name string) (FormField, bool) {
	if d == nil {
		return FormField{}, false
	}

	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}

	return FormField{}, false
}

// FormSubmitResponse is the body returned by POST /forms/{slug}/submit.
type FormSubmitResponse struct {
	Message string          `json:"message,omitempty" yaml:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"    yaml:"-"`
}

// FieldValue is the value of one form field: a string, or a boolean for
// checkbox fields. The zero value is the empty string.
type FieldValue struct {
	text   string
	flag   bool
	isBool bool
}

// StringValue returns a textual field value.
func StringValue(s string) FieldValue {
	return FieldValue{text: s}
}

// BoolValue returns a boolean field value.
func BoolValue(b bool) FieldValue {
	return FieldValue{flag: b, isBool: true}
}

// IsBool reports whether v holds a boolean.
func (v FieldValue) IsBool() bool {
	return v.isBool
}

// Bool returns the boolean held by v, false for textual values.
func (v FieldValue) Bool() bool {
	return v.isBool && v.flag
}

// String returns the text of v; booleans render as "true" or "false".
func (v FieldValue) String() string {
	if v.isBool {
		return strconv.FormatBool(v.flag)
	}

	return v.text
}

// MarshalJSON encodes v as a JSON string or boolean.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.isBool {
		return json.Marshal(v.flag)
	}

	return json.Marshal(v.text)
}

// UnmarshalJSON accepts a JSON string, boolean, number or null. Numbers keep
// their literal text and null decodes to the empty string.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*v = StringValue("")
	case bytes.Equal(trimmed, []byte("true")):
		*v = BoolValue(true)
	case bytes.Equal(trimmed, []byte("false")):
		*v = BoolValue(false)
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string

		err := json.Unmarshal(trimmed, &s)
		if err != nil {
			return fmt.Errorf("decoding field value: %w", err)
		}

		*v = StringValue(s)
	default:
		var n json.Number

		err := json.Unmarshal(trimmed, &n)
		if err != nil {
			return fmt.Errorf("decoding field value: %w", err)
		}

		*v = StringValue(n.String())
	}

	return nil
}

// MarshalYAML encodes v as a YAML string or boolean.
func (v FieldValue) MarshalYAML() (interface{}, error) {
	if v.isBool {
		return v.flag, nil
	}

	return v.text, nil
}

// FieldValues maps field names to values.
type FieldValues map[string]FieldValue

// Clone returns a copy of vs.
func (vs FieldValues) Clone() FieldValues {
	if vs == nil {
		return nil
	}

	out := make(FieldValues, len(vs))
	for name, value := range vs {
		out[name] = value
	}

	return out
}
