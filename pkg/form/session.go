package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// DefinitionSource fetches a form definition by slug. cms.FormsClient
// satisfies it.
type DefinitionSource interface {
	Get(ctx context.Context, slug string) (*cms.FormDefinition, error)
}

// Transport submits form values. cms.FormsClient satisfies it.
type Transport interface {
	Submit(ctx context.Context, slug string, values cms.FieldValues) (*cms.FormSubmitResponse, error)
}

// Status is the lifecycle state of a Session.
type Status string

// Session statuses.
const (
	StatusIdle       Status = "idle"
	StatusLoading    Status = "loading"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// State is a snapshot of a Session. It shares no memory with the session.
type State struct {
	Status     Status
	Definition *cms.FormDefinition
	Values     cms.FieldValues
	Errors     Errors
	// Message is the outcome text of the last load or submission.
	Message string

	SubmitLabel     string
	SubmittingLabel string
}

// ButtonLabel returns the submit button label for the current status.
func (s State) ButtonLabel() string {
	if s.Status == StatusSubmitting {
		return s.SubmittingLabel
	}

	return s.SubmitLabel
}

// LoadFailed reports whether the definition could not be loaded. Such a
// session cannot recover.
func (s State) LoadFailed() bool {
	return s.Status == StatusError && s.Definition == nil
}

// Value returns the current value of field, or its default when unset.
func (s State) Value(field cms.FormField) cms.FieldValue {
	if v, ok := s.Values[field.Name]; ok {
		return v
	}

	if field.Type == cms.KindCheckbox {
		return cms.BoolValue(false)
	}

	return cms.StringValue("")
}

// Session drives one form instance from loading through submission.
// All methods are safe for concurrent use. Notifications are delivered
// one at a time in the order the transitions happened, outside the session
// lock, so callbacks may call back into the session. A callback must not
// call Wait.
type Session struct {
	opts options

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	status     Status
	definition *cms.FormDefinition
	values     cms.FieldValues
	errors     Errors
	message    string
	generation uint64
	closed     bool
	cancelOp   context.CancelFunc
	inflight   chan struct{}

	// pending holds notifications in transition order. One goroutine at a
	// time drains it; drained is closed when that goroutine is done.
	pending  []notification
	draining bool
	drained  chan struct{}
}

// notification is what a transition reports once the lock is released.
type notification struct {
	gen       uint64
	state     State
	success   *cms.FormSubmitResponse
	failure   error
	loadError error
}

// Open creates a session. With WithDefinition it starts idle, otherwise it
// starts loading the definition from the configured source. ctx bounds the
// session: cancelling it aborts in-flight requests.
func Open(ctx context.Context, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.transport == nil {
		if transport, ok := o.source.(Transport); ok {
			o.transport = transport
		}
	}

	if o.definition == nil && (o.slug == "" || o.source == nil) {
		return nil, ErrNoSource
	}

	if o.transport == nil {
		return nil, ErrNoTransport
	}

	if o.definition != nil && o.strictPatterns {
		err := CheckPatterns(o.definition)
		if err != nil {
			return nil, err
		}
	}

	sessionCtx, cancel := context.WithCancel(ctx)

	s := &Session{
		opts:   o,
		ctx:    sessionCtx,
		cancel: cancel,
		values: cms.FieldValues{},
		errors: Errors{},
	}

	if o.definition != nil {
		s.install(o.definition)

		return s, nil
	}

	s.status = StatusLoading
	gen, opCtx, cancelOp, done := s.begin()

	go s.load(opCtx, cancelOp, gen, done)

	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// SetField records an edit and clears the field's error. Checkbox fields
// take boolean values, all other fields take strings.
func (s *Session) SetField(name string, value cms.FieldValue) error {
	s.mu.Lock()

	err := s.editableLocked()
	if err != nil {
		s.mu.Unlock()

		return err
	}

	field, ok := s.definition.Field(name)
	if !ok {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	if (field.Type == cms.KindCheckbox) != value.IsBool() {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s is a %s field", ErrValueKind, name, field.Type)
	}

	s.values[name] = value
	delete(s.errors, name)

	if s.status == StatusError {
		s.status = StatusIdle
		s.message = ""
	}

	s.queueLocked(notification{})
	s.mu.Unlock()

	s.deliver()

	return nil
}

// Submit validates the current values and, when they pass, sends them to
// the transport in the background. It returns ErrInvalid when validation
// fails, in which case nothing is sent.
func (s *Session) Submit() error {
	s.mu.Lock()

	switch {
	case s.closed:
		s.mu.Unlock()

		return ErrClosed
	case s.status == StatusLoading || s.status == StatusSubmitting:
		s.mu.Unlock()

		return ErrBusy
	case s.definition == nil:
		s.mu.Unlock()

		return ErrNoDefinition
	case s.status == StatusSuccess:
		s.mu.Unlock()

		return ErrCompleted
	}

	s.status = StatusIdle
	s.message = ""

	errs := Validate(s.definition.Fields, s.values)
	if len(errs) > 0 {
		s.errors = errs
		s.queueLocked(notification{})
		s.mu.Unlock()

		s.deliver()

		return ErrInvalid
	}

	s.errors = Errors{}
	s.status = StatusSubmitting
	slug := s.slugLocked()
	values := s.values.Clone()
	gen, opCtx, cancelOp, done := s.begin()
	s.queueLocked(notification{})
	s.mu.Unlock()

	go s.submit(opCtx, cancelOp, gen, done, slug, values)

	s.deliver()

	return nil
}

// Reset returns a session with a definition to idle with default values,
// discarding any in-flight submission.
func (s *Session) Reset() error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		return ErrClosed
	}

	if s.definition == nil {
		s.mu.Unlock()

		return ErrNoDefinition
	}

	s.generation++
	if s.cancelOp != nil {
		s.cancelOp()
	}

	s.install(s.definition)
	s.queueLocked(notification{})
	s.mu.Unlock()

	s.deliver()

	return nil
}

// Wait blocks until no load or submission is in flight and every
// notification has been delivered.
func (s *Session) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		done := s.inflight
		if done == nil {
			done = s.drained
		}
		s.mu.Unlock()

		if done == nil {
			return nil
		}

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close tears the session down. Results arriving afterwards are dropped
// without notification.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return nil
	}

	s.closed = true
	s.generation++
	s.mu.Unlock()

	s.cancel()

	return nil
}

func (s *Session) load(ctx context.Context, cancel context.CancelFunc, gen uint64, done chan struct{}) {
	defer s.finish(done, cancel)

	def, err := s.opts.source.Get(ctx, s.opts.slug)
	if err == nil && def == nil {
		err = ErrNoDefinition
	}

	if err == nil && s.opts.strictPatterns {
		err = CheckPatterns(def)
	}

	s.mu.Lock()
	if !s.liveLocked(gen) {
		s.mu.Unlock()
		s.debug("Discarding stale form load", s.opts.slug)

		return
	}

	if err != nil {
		s.status = StatusError
		s.message = failureMessage(err, DefaultLoadFailure)
		s.queueLocked(notification{loadError: err})
	} else {
		s.install(def)
		s.queueLocked(notification{})
	}
	s.mu.Unlock()

	if err != nil {
		s.log("Form load failed", s.opts.slug, err)
	} else {
		s.debug("Form loaded", s.opts.slug)
	}

	s.deliver()
}

func (s *Session) submit(
	ctx context.Context, cancel context.CancelFunc, gen uint64, done chan struct{}, slug string, values cms.FieldValues,
) {
	defer s.finish(done, cancel)

	resp, err := s.opts.transport.Submit(ctx, slug, values)

	s.mu.Lock()
	if !s.liveLocked(gen) {
		s.mu.Unlock()
		s.debug("Discarding stale form submission", slug)

		return
	}

	if err != nil {
		s.status = StatusError
		s.message = failureMessage(err, DefaultSubmitFailure)
		s.applyServerErrors(err)
		s.queueLocked(notification{failure: err})
	} else {
		if resp == nil {
			resp = &cms.FormSubmitResponse{}
		}

		s.status = StatusSuccess
		s.message = firstNonEmpty(resp.Message, s.definition.SuccessMessage, DefaultSuccessMessage)

		if s.opts.resetOnSuccess {
			s.values = DefaultValues(s.definition)
		}

		s.queueLocked(notification{success: resp})
	}
	s.mu.Unlock()

	if err != nil {
		s.log("Form submission failed", slug, err)
	} else {
		s.debug("Form submitted", slug)
	}

	s.deliver()
}

// begin registers a new in-flight operation. Callers hold s.mu.
func (s *Session) begin() (uint64, context.Context, context.CancelFunc, chan struct{}) {
	opCtx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})

	s.cancelOp = cancel
	s.inflight = done

	return s.generation, opCtx, cancel, done
}

func (s *Session) finish(done chan struct{}, cancel context.CancelFunc) {
	cancel()

	s.mu.Lock()
	if s.inflight == done {
		s.inflight = nil
		s.cancelOp = nil
	}
	s.mu.Unlock()

	close(done)
}

// install makes def the current definition with default values. Callers
// hold s.mu or own s exclusively.
func (s *Session) install(def *cms.FormDefinition) {
	s.definition = cloneDefinition(def)
	s.values = DefaultValues(s.definition)
	s.errors = Errors{}
	s.message = ""
	s.status = StatusIdle
}

func (s *Session) editableLocked() error {
	switch {
	case s.closed:
		return ErrClosed
	case s.definition == nil:
		return ErrNoDefinition
	case s.status == StatusSuccess:
		return ErrCompleted
	}

	return nil
}

func (s *Session) liveLocked(gen uint64) bool {
	return !s.closed && s.generation == gen
}

func (s *Session) slugLocked() string {
	if s.definition != nil && s.definition.Slug != "" {
		return s.definition.Slug
	}

	return s.opts.slug
}

// applyServerErrors copies per-field messages of a 422 response onto known
// fields.
func (s *Session) applyServerErrors(err error) {
	apiErr := &cms.APIError{}
	if !errors.As(err, &apiErr) {
		return
	}

	for _, field := range s.definition.Fields {
		if msgs := apiErr.Fields[field.Name]; len(msgs) > 0 {
			s.errors[field.Name] = msgs[0]
		}
	}
}

func (s *Session) snapshotLocked() State {
	return State{
		Status:          s.status,
		Definition:      cloneDefinition(s.definition),
		Values:          s.values.Clone(),
		Errors:          s.errors.Clone(),
		Message:         s.message,
		SubmitLabel:     s.opts.submitLabel,
		SubmittingLabel: s.opts.submittingLabel,
	}
}

// queueLocked stamps n with the current generation and state and appends
// it to the pending notifications. Callers hold s.mu.
func (s *Session) queueLocked(n notification) {
	n.gen = s.generation
	n.state = s.snapshotLocked()
	s.pending = append(s.pending, n)
}

// deliver drains the pending notifications unless another goroutine is
// already doing so, in which case that goroutine delivers them in order.
func (s *Session) deliver() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()

		return
	}

	s.draining = true
	s.drained = make(chan struct{})

	for len(s.pending) > 0 {
		n := s.pending[0]
		s.pending[0] = notification{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		s.dispatch(n)

		s.mu.Lock()
	}

	s.pending = nil
	s.draining = false
	close(s.drained)
	s.drained = nil
	s.mu.Unlock()
}

// dispatch runs the callbacks for n unless the operation that produced it
// went stale. Liveness is checked before each callback.
func (s *Session) dispatch(n notification) {
	if fn := s.opts.onChange; fn != nil && s.live(n.gen) {
		fn(n.state)
	}

	switch {
	case n.success != nil:
		if fn := s.opts.onSuccess; fn != nil && s.live(n.gen) {
			fn(n.success)
		}
	case n.failure != nil:
		if fn := s.opts.onError; fn != nil && s.live(n.gen) {
			fn(n.failure)
		}
	case n.loadError != nil:
		if fn := s.opts.onLoadError; fn != nil && s.live(n.gen) {
			fn(n.loadError)
		}
	}
}

func (s *Session) live(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.liveLocked(gen)
}

func (s *Session) debug(msg, slug string) {
	if s.opts.logger != nil {
		s.opts.logger.Debug(msg, map[string]interface{}{"slug": slug})
	}
}

func (s *Session) log(msg, slug string, err error) {
	if s.opts.logger != nil {
		s.opts.logger.Warn(msg, map[string]interface{}{"slug": slug, "error": err.Error()})
	}
}

// failureMessage returns the text shown for a failed load or submission:
// the message of an API error body when there is one, else the error text.
func failureMessage(err error, fallback string) string {
	apiErr := &cms.APIError{}
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}

		return apiErr.Error()
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func cloneDefinition(def *cms.FormDefinition) *cms.FormDefinition {
	if def == nil {
		return nil
	}

	out := *def
	out.Fields = make([]cms.FormField, len(def.Fields))

	for i, field := range def.Fields {
		if field.Options != nil {
			field.Options = append([]cms.FieldOption(nil), field.Options...)
		}

		if field.Validation != nil {
			rules := *field.Validation
			rules.Min = cloneFloat(rules.Min)
			rules.Max = cloneFloat(rules.Max)
			field.Validation = &rules
		}

		out.Fields[i] = field
	}

	return &out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}

	v := *f

	return &v
}
