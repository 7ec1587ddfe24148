package prompt

import "errors"

// Static errors for err113 compliance.
var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrLoadFailed is returned when the form definition never arrived.
	ErrLoadFailed = errors.New("prompt: form failed to load")
	// ErrSubmitFailed wraps the message of a rejected submission.
	ErrSubmitFailed = errors.New("prompt: submission failed")
	// ErrTooManyAttempts stops a fill that keeps failing validation.
	ErrTooManyAttempts = errors.New("prompt: too many invalid attempts")
)
