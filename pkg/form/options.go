package form

import "github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"

// Default presentation labels and messages.
const (
	DefaultSubmitLabel     = "Submit"
	DefaultSubmittingLabel = "Submitting..."
	DefaultSuccessMessage  = "Form submitted successfully"
	DefaultSubmitFailure   = "Failed to submit form"
	DefaultLoadFailure     = "Failed to load form"
)

// Option configures a Session.
type Option func(*options)

type options struct {
	definition      *cms.FormDefinition
	slug            string
	source          DefinitionSource
	transport       Transport
	resetOnSuccess  bool
	submitLabel     string
	submittingLabel string
	strictPatterns  bool
	logger          cms.Logger

	onSuccess   func(*cms.FormSubmitResponse)
	onError     func(error)
	onLoadError func(error)
	onChange    func(State)
}

func defaultOptions() options {
	return options{
		resetOnSuccess:  true,
		submitLabel:     DefaultSubmitLabel,
		submittingLabel: DefaultSubmittingLabel,
	}
}

// WithDefinition starts the session idle with def.
func WithDefinition(def *cms.FormDefinition) Option {
	return func(o *options) {
		o.definition = def
	}
}

// WithSource loads the definition for slug from source. When source also
// implements Transport and no transport is set, it is used for submission.
func WithSource(slug string, source DefinitionSource) Option {
	return func(o *options) {
		o.slug = slug
		o.source = source
	}
}

// WithTransport sets where submissions are sent.
func WithTransport(transport Transport) Option {
	return func(o *options) {
		o.transport = transport
	}
}

// WithResetOnSuccess controls whether values return to their defaults after
// a successful submission. Enabled by default.
func WithResetOnSuccess(reset bool) Option {
	return func(o *options) {
		o.resetOnSuccess = reset
	}
}

// WithLabels sets the submit button labels carried in State.
func WithLabels(submit, submitting string) Option {
	return func(o *options) {
		if submit != "" {
			o.submitLabel = submit
		}

		if submitting != "" {
			o.submittingLabel = submitting
		}
	}
}

// WithStrictPatterns rejects definitions containing a regex that does not
// compile instead of skipping the rule.
func WithStrictPatterns() Option {
	return func(o *options) {
		o.strictPatterns = true
	}
}

// WithLogger sets a logger for lifecycle events.
func WithLogger(logger cms.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// OnSuccess is called once per successful submission.
func OnSuccess(fn func(*cms.FormSubmitResponse)) Option {
	return func(o *options) {
		o.onSuccess = fn
	}
}

// OnError is called once per failed submission.
func OnError(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// OnLoadError is called when the definition cannot be loaded.
func OnLoadError(fn func(error)) Option {
	return func(o *options) {
		o.onLoadError = fn
	}
}

// OnChange is called with a snapshot after every state change.
func OnChange(fn func(State)) Option {
	return func(o *options) {
		o.onChange = fn
	}
}
