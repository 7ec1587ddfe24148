package form

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dlclark/regexp2"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// Validation messages.
const (
	msgRequired      = "%s is required"
	msgEmail         = "Please enter a valid email address"
	msgNumber        = "Please enter a valid number"
	msgMin           = "Must be at least %s"
	msgMax           = "Must be at most %s"
	msgDate          = "Please enter a valid date"
	msgOption        = "Please select a valid option"
	msgMinLength     = "Must be at least %s characters"
	msgMaxLength     = "Must be at most %s characters"
	msgPatternFailed = "%s format is invalid"
)

// patternTimeout bounds a single regex match.
const patternTimeout = time.Second

// Errors maps a field name to its first validation failure.
type Errors map[string]string

// Clone returns a copy of e.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}

	return out
}

// jsSpace is the set \s matches in a browser: Unicode space separators,
// line terminators and the byte order mark, but not U+0085.
const jsSpace = `\t\n\v\f\r \u00A0\u1680\u2000-\u200A\u2028\u2029\u202F\u205F\u3000\uFEFF`

var (
	// (?![\s\S]) rather than $ so a trailing newline does not match.
	emailPattern = regexp2.MustCompile(
		`^[^`+jsSpace+`@]+@[^`+jsSpace+`@]+\.[^`+jsSpace+`@]+(?![\s\S])`, regexp2.ECMAScript)

	patterns sync.Map // pattern string -> *regexp2.Regexp, nil when malformed
)

func compilePattern(pattern string) (*regexp2.Regexp, error) {
	if cached, ok := patterns.Load(pattern); ok {
		if re, _ := cached.(*regexp2.Regexp); re != nil {
			return re, nil
		}

		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		patterns.Store(pattern, (*regexp2.Regexp)(nil))

		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}

	re.MatchTimeout = patternTimeout
	patterns.Store(pattern, re)

	return re, nil
}

// Validate checks values against the field rules and returns at most one
// message per failing field. It never fails: malformed patterns are
// skipped.
func Validate(fields []cms.FormField, values cms.FieldValues) Errors {
	errs := make(Errors)

	for _, field := range fields {
		value, present := values[field.Name]

		if msg := validateField(field, value, present); msg != "" {
			errs[field.Name] = msg
		}
	}

	return errs
}

func validateField(field cms.FormField, value cms.FieldValue, present bool) string {
	rules := field.Validation
	if rules == nil {
		rules = &cms.FieldValidation{}
	}

	if field.Type == cms.KindCheckbox {
		if rules.Required && !(value.IsBool() && value.Bool()) {
			return fmt.Sprintf(msgRequired, field.Label)
		}

		return ""
	}

	text := ""
	if present {
		text = value.String()
	}

	if trimSpace(text) == "" {
		if rules.Required {
			return fmt.Sprintf(msgRequired, field.Label)
		}

		return ""
	}

	if msg := checkFormat(field, rules, text); msg != "" {
		return msg
	}

	if field.Type != cms.KindNumber {
		length := float64(textLength(text))

		if rules.Min != nil && length < *rules.Min {
			return fmt.Sprintf(msgMinLength, formatNumber(*rules.Min))
		}

		if rules.Max != nil && length > *rules.Max {
			return fmt.Sprintf(msgMaxLength, formatNumber(*rules.Max))
		}
	}

	if rules.Regex != "" {
		re, err := compilePattern(rules.Regex)
		if err != nil {
			return ""
		}

		// A match that times out counts as no constraint, like a pattern that
		// fails to compile.
		matched, err := re.MatchString(text)
		if err == nil && !matched {
			return fmt.Sprintf(msgPatternFailed, field.Label)
		}
	}

	return ""
}

func checkFormat(field cms.FormField, rules *cms.FieldValidation, text string) string {
	switch field.Type {
	case cms.KindEmail:
		matched, err := emailPattern.MatchString(text)
		if err != nil || !matched {
			return msgEmail
		}

	case cms.KindNumber:
		n, ok := parseNumber(text)
		if !ok {
			return msgNumber
		}

		if rules.Min != nil && n < *rules.Min {
			return fmt.Sprintf(msgMin, formatNumber(*rules.Min))
		}

		if rules.Max != nil && n > *rules.Max {
			return fmt.Sprintf(msgMax, formatNumber(*rules.Max))
		}

	case cms.KindDate:
		_, err := dateparse.ParseAny(trimSpace(text))
		if err != nil {
			return msgDate
		}

	case cms.KindSelect, cms.KindRadio:
		if len(field.Options) == 0 {
			return ""
		}

		for _, option := range field.Options {
			if option.Value == text {
				return ""
			}
		}

		return msgOption

	case cms.KindText, cms.KindPhone, cms.KindTextarea, cms.KindCheckbox:
	}

	return ""
}

// DefaultValues builds the initial values for def: false for checkboxes,
// the empty string for everything else.
func DefaultValues(def *cms.FormDefinition) cms.FieldValues {
	if def == nil {
		return cms.FieldValues{}
	}

	values := make(cms.FieldValues, len(def.Fields))

	for _, field := range def.Fields {
		if field.Type == cms.KindCheckbox {
			values[field.Name] = cms.BoolValue(false)
		} else {
			values[field.Name] = cms.StringValue("")
		}
	}

	return values
}

// CheckPatterns reports every regex in def that does not compile.
func CheckPatterns(def *cms.FormDefinition) error {
	if def == nil {
		return nil
	}

	var errs []error

	for _, field := range def.Fields {
		if field.Validation == nil || field.Validation.Regex == "" {
			continue
		}

		_, err := compilePattern(field.Validation.Regex)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", field.Name, err))
		}
	}

	return errors.Join(errs...)
}
