package form

import "errors"

// Static errors for err113 compliance.
var (
	ErrInvalid        = errors.New("form has validation errors")
	ErrBusy           = errors.New("form is busy")
	ErrCompleted      = errors.New("form has already been submitted")
	ErrNoDefinition   = errors.New("form definition is not loaded")
	ErrClosed         = errors.New("form session is closed")
	ErrUnknownField   = errors.New("unknown form field")
	ErrValueKind      = errors.New("value does not match field type")
	ErrNoSource       = errors.New("form definition or slug and source required")
	ErrNoTransport    = errors.New("submission transport required")
	ErrInvalidPattern = errors.New("invalid validation pattern")
)
