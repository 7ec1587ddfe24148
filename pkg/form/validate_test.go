package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/form"
)

func ptr(f float64) *float64 { return &f }

func field(name string, kind cms.FieldKind, rules *cms.FieldValidation) cms.FormField {
	return cms.FormField{Name: name, Type: kind, Label: name + " label", Validation: rules}
}

//nolint:funlen // Table of every rule
func TestValidate_SingleField(t *testing.T) {
	t.Parallel()

	colors := []cms.FieldOption{{Value: "red", Label: "Red"}, {Value: "blue", Label: "Blue"}}

	tests := []struct {
		name  string
		field cms.FormField
		value *cms.FieldValue
		want  string
	}{
		{name: "required checkbox unchecked", field: field("agree", cms.KindCheckbox, &cms.FieldValidation{Required: true}), value: val(cms.BoolValue(false)), want: "agree label is required"},
		{name: "required checkbox checked", field: field("agree", cms.KindCheckbox, &cms.FieldValidation{Required: true}), value: val(cms.BoolValue(true))},
		{name: "required checkbox as string", field: field("agree", cms.KindCheckbox, &cms.FieldValidation{Required: true}), value: val(cms.StringValue("true")), want: "agree label is required"},
		{name: "optional checkbox ignores rules", field: field("agree", cms.KindCheckbox, &cms.FieldValidation{Min: ptr(5), Regex: "^x$"}), value: val(cms.BoolValue(false))},
		{name: "required text missing", field: field("name", cms.KindText, &cms.FieldValidation{Required: true}), want: "name label is required"},
		{name: "required text blank", field: field("name", cms.KindText, &cms.FieldValidation{Required: true}), value: val(cms.StringValue(" \t ")), want: "name label is required"},
		{name: "optional empty skips regex", field: field("nickname", cms.KindText, &cms.FieldValidation{Regex: "^[a-z]+$"}), value: val(cms.StringValue(""))},
		{name: "optional blank skips length", field: field("nickname", cms.KindText, &cms.FieldValidation{Min: ptr(3)}), value: val(cms.StringValue("   "))},
		{name: "no validation block", field: field("notes", cms.KindTextarea, nil), value: val(cms.StringValue("anything"))},

		{name: "email valid", field: field("email", cms.KindEmail, nil), value: val(cms.StringValue("jane@example.com"))},
		{name: "email missing dot", field: field("email", cms.KindEmail, nil), value: val(cms.StringValue("jane@example")), want: "Please enter a valid email address"},
		{name: "email two at signs", field: field("email", cms.KindEmail, nil), value: val(cms.StringValue("a@b@c.d")), want: "Please enter a valid email address"},
		{name: "email leading space", field: field("email", cms.KindEmail, nil), value: val(cms.StringValue(" a@b.co")), want: "Please enter a valid email address"},
		{name: "email trailing newline", field: field("email", cms.KindEmail, nil), value: val(cms.StringValue("a@b.co\n")), want: "Please enter a valid email address"},
		{name: "email byte order mark", field: field("email", cms.KindEmail, nil), value: val(cms.StringValue("\uFEFFa@b.co")), want: "Please enter a valid email address"},
		{name: "email no-break space", field: field("email", cms.KindEmail, nil), value: val(cms.StringValue("a\u00A0b@c.co")), want: "Please enter a valid email address"},
		{name: "email next line is not space", field: field("email", cms.KindEmail, nil), value: val(cms.StringValue("a@b.co\u0085"))},

		{name: "number below min", field: field("age", cms.KindNumber, &cms.FieldValidation{Min: ptr(18), Max: ptr(65)}), value: val(cms.StringValue("10")), want: "Must be at least 18"},
		{name: "number above max", field: field("age", cms.KindNumber, &cms.FieldValidation{Min: ptr(18), Max: ptr(65)}), value: val(cms.StringValue("70")), want: "Must be at most 65"},
		{name: "number not a number", field: field("age", cms.KindNumber, &cms.FieldValidation{Min: ptr(18), Max: ptr(65)}), value: val(cms.StringValue("abc")), want: "Please enter a valid number"},
		{name: "number in range", field: field("age", cms.KindNumber, &cms.FieldValidation{Min: ptr(18), Max: ptr(65)}), value: val(cms.StringValue("30"))},
		{name: "number bounds are inclusive", field: field("age", cms.KindNumber, &cms.FieldValidation{Min: ptr(18), Max: ptr(65)}), value: val(cms.StringValue("65"))},
		{name: "number skips length rules", field: field("qty", cms.KindNumber, &cms.FieldValidation{Min: ptr(1)}), value: val(cms.StringValue("100000"))},
		{name: "number fractional bound", field: field("rate", cms.KindNumber, &cms.FieldValidation{Min: ptr(2.5)}), value: val(cms.StringValue("2")), want: "Must be at least 2.5"},
		{name: "number hex literal", field: field("qty", cms.KindNumber, &cms.FieldValidation{Max: ptr(20)}), value: val(cms.StringValue("0x1F")), want: "Must be at most 20"},

		{name: "date valid", field: field("day", cms.KindDate, nil), value: val(cms.StringValue("2026-03-14"))},
		{name: "date with time", field: field("day", cms.KindDate, nil), value: val(cms.StringValue("2026-03-14T10:30:00Z"))},
		{name: "date invalid", field: field("day", cms.KindDate, nil), value: val(cms.StringValue("not a date")), want: "Please enter a valid date"},

		{name: "select valid", field: cms.FormField{Name: "color", Type: cms.KindSelect, Label: "Color", Options: colors}, value: val(cms.StringValue("blue"))},
		{name: "select invalid", field: cms.FormField{Name: "color", Type: cms.KindSelect, Label: "Color", Options: colors}, value: val(cms.StringValue("green")), want: "Please select a valid option"},
		{name: "radio matches value not label", field: cms.FormField{Name: "color", Type: cms.KindRadio, Label: "Color", Options: colors}, value: val(cms.StringValue("Red")), want: "Please select a valid option"},
		{name: "select without options", field: field("color", cms.KindSelect, nil), value: val(cms.StringValue("green"))},

		{name: "too short", field: field("name", cms.KindText, &cms.FieldValidation{Min: ptr(3)}), value: val(cms.StringValue("ab")), want: "Must be at least 3 characters"},
		{name: "too long", field: field("name", cms.KindText, &cms.FieldValidation{Max: ptr(3)}), value: val(cms.StringValue("abcd")), want: "Must be at most 3 characters"},
		{name: "length counts utf16 units", field: field("name", cms.KindText, &cms.FieldValidation{Max: ptr(1)}), value: val(cms.StringValue("\U0001F600")), want: "Must be at most 1 characters"},
		{name: "length counts untrimmed value", field: field("name", cms.KindText, &cms.FieldValidation{Max: ptr(3)}), value: val(cms.StringValue(" ab ")), want: "Must be at most 3 characters"},
		{name: "phone length", field: field("phone", cms.KindPhone, &cms.FieldValidation{Min: ptr(10)}), value: val(cms.StringValue("0612")), want: "Must be at least 10 characters"},

		{name: "regex mismatch", field: field("code", cms.KindText, &cms.FieldValidation{Regex: "^[A-Z]{3}$"}), value: val(cms.StringValue("ab1")), want: "code label format is invalid"},
		{name: "regex match", field: field("code", cms.KindText, &cms.FieldValidation{Regex: "^[A-Z]{3}$"}), value: val(cms.StringValue("ABC"))},
		{name: "regex unanchored", field: field("code", cms.KindText, &cms.FieldValidation{Regex: "\\d"}), value: val(cms.StringValue("abc1"))},
		{name: "malformed regex ignored", field: field("code", cms.KindText, &cms.FieldValidation{Regex: "([a-z"}), value: val(cms.StringValue("anything"))},

		{name: "format error wins over length", field: field("email", cms.KindEmail, &cms.FieldValidation{Min: ptr(50)}), value: val(cms.StringValue("nope")), want: "Please enter a valid email address"},
		{name: "length error wins over regex", field: field("code", cms.KindText, &cms.FieldValidation{Min: ptr(5), Regex: "^x$"}), value: val(cms.StringValue("abc")), want: "Must be at least 5 characters"},
		{name: "bool value in text field is stringified", field: field("flag", cms.KindText, &cms.FieldValidation{Regex: "^true$"}), value: val(cms.BoolValue(true))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values := cms.FieldValues{}
			if tt.value != nil {
				values[tt.field.Name] = *tt.value
			}

			errs := form.Validate([]cms.FormField{tt.field}, values)

			if tt.want == "" {
				assert.Empty(t, errs)

				return
			}

			assert.Equal(t, form.Errors{tt.field.Name: tt.want}, errs)
		})
	}
}

func val(v cms.FieldValue) *cms.FieldValue { return &v }

func contactFields() []cms.FormField {
	return []cms.FormField{
		field("name", cms.KindText, &cms.FieldValidation{Required: true, Min: ptr(2)}),
		field("email", cms.KindEmail, &cms.FieldValidation{Required: true}),
		field("age", cms.KindNumber, &cms.FieldValidation{Min: ptr(18)}),
		field("agree", cms.KindCheckbox, &cms.FieldValidation{Required: true}),
		field("notes", cms.KindTextarea, &cms.FieldValidation{Max: ptr(10)}),
	}
}

func TestValidate_WholeForm(t *testing.T) {
	t.Parallel()

	values := cms.FieldValues{
		"name":  cms.StringValue("J"),
		"email": cms.StringValue("jane@"),
		"age":   cms.StringValue("12"),
		"agree": cms.BoolValue(false),
		"notes": cms.StringValue("short"),
	}

	want := form.Errors{
		"name":  "Must be at least 2 characters",
		"email": "Please enter a valid email address",
		"age":   "Must be at least 18",
		"agree": "agree label is required",
	}

	got := form.Validate(contactFields(), values)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}

	again := form.Validate(contactFields(), values)
	assert.Empty(t, cmp.Diff(got, again), "validation must be idempotent")
}

func TestValidate_ValidForm(t *testing.T) {
	t.Parallel()

	errs := form.Validate(contactFields(), cms.FieldValues{
		"name":  cms.StringValue("Jane"),
		"email": cms.StringValue("jane@example.com"),
		"age":   cms.StringValue(""),
		"agree": cms.BoolValue(true),
	})
	assert.Empty(t, errs)
}

func TestValidate_IgnoresUnknownValues(t *testing.T) {
	t.Parallel()

	errs := form.Validate(nil, cms.FieldValues{"stray": cms.StringValue("x")})
	assert.Empty(t, errs)
}

func TestDefaultValues(t *testing.T) {
	t.Parallel()

	def := &cms.FormDefinition{Slug: "contact", Fields: contactFields()}

	want := cms.FieldValues{
		"name":  cms.StringValue(""),
		"email": cms.StringValue(""),
		"age":   cms.StringValue(""),
		"agree": cms.BoolValue(false),
		"notes": cms.StringValue(""),
	}

	assert.Equal(t, want, form.DefaultValues(def))
	assert.Empty(t, form.DefaultValues(nil))
}

func TestCheckPatterns(t *testing.T) {
	t.Parallel()

	require.NoError(t, form.CheckPatterns(nil))
	require.NoError(t, form.CheckPatterns(&cms.FormDefinition{Fields: contactFields()}))

	def := &cms.FormDefinition{Fields: []cms.FormField{
		field("a", cms.KindText, &cms.FieldValidation{Regex: "([a-z"}),
		field("b", cms.KindText, &cms.FieldValidation{Regex: "^ok$"}),
		field("c", cms.KindText, &cms.FieldValidation{Regex: "*bad"}),
	}}

	err := form.CheckPatterns(def)
	require.ErrorIs(t, err, form.ErrInvalidPattern)
	assert.Contains(t, err.Error(), "field a")
	assert.Contains(t, err.Error(), "field c")
	assert.NotContains(t, err.Error(), "field b")
}
