package prompt_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/form"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/prompt"
)

var errNotScripted = errors.New("not scripted")

type stubDriver struct {
	inputs     []string
	confirms   []bool
	selects    []int
	multilines []string

	asked []string
	infos []string
}

func (s *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.inputs) == 0 {
		return "", errNotScripted
	}

	val := s.inputs[0]
	s.inputs = s.inputs[1:]

	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			s.infos = append(s.infos, "inline: "+err.Error())
		}
	}

	return val, nil
}

func (s *stubDriver) Password(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	return s.Input(ctx, cfg)
}

func (s *stubDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.confirms) == 0 {
		return false, errNotScripted
	}

	val := s.confirms[0]
	s.confirms = s.confirms[1:]

	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.selects) == 0 {
		return -1, errNotScripted
	}

	val := s.selects[0]
	s.selects = s.selects[1:]

	return val, nil
}

func (s *stubDriver) Multiline(_ context.Context, cfg prompt.MultilineConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.multilines) == 0 {
		return "", errNotScripted
	}

	val := s.multilines[0]
	s.multilines = s.multilines[1:]

	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)

	return nil
}

type fakeTransport struct {
	mu     sync.Mutex
	calls  int
	values cms.FieldValues
	resp   *cms.FormSubmitResponse
	err    error
}

func (f *fakeTransport) Submit(_ context.Context, _ string, values cms.FieldValues) (*cms.FormSubmitResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.values = values

	return f.resp, f.err
}

func contactForm() *cms.FormDefinition {
	return &cms.FormDefinition{
		Slug:  "contact",
		Label: "Contact",
		Fields: []cms.FormField{
			{Name: "name", Type: cms.KindText, Label: "Naam", Validation: &cms.FieldValidation{Required: true}},
			{Name: "email", Type: cms.KindEmail, Label: "E-mail"},
			{Name: "topic", Type: cms.KindSelect, Label: "Onderwerp", Options: []cms.FieldOption{{Value: "sales", Label: "Verkoop"}, {Value: "support", Label: "Support"}}},
			{Name: "message", Type: cms.KindTextarea, Label: "Bericht"},
			{Name: "agree", Type: cms.KindCheckbox, Label: "Akkoord", Validation: &cms.FieldValidation{Required: true}},
		},
	}
}

func openSession(t *testing.T, transport form.Transport) *form.Session {
	t.Helper()

	session, err := form.Open(context.Background(), form.WithDefinition(contactForm()), form.WithTransport(transport))
	require.NoError(t, err)

	t.Cleanup(func() { _ = session.Close() })

	return session
}

func TestFill_Success(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{resp: &cms.FormSubmitResponse{Message: "Bedankt!"}}
	driver := &stubDriver{
		inputs:     []string{"Jane", "jane@example.com"},
		selects:    []int{1},
		multilines: []string{"Hallo"},
		confirms:   []bool{true},
	}

	state, err := prompt.Fill(context.Background(), openSession(t, transport), driver)
	require.NoError(t, err)

	assert.Equal(t, form.StatusSuccess, state.Status)
	assert.Equal(t, "Bedankt!", state.Message)
	assert.Equal(t, []string{"Naam *", "E-mail", "Onderwerp", "Bericht", "Akkoord *"}, driver.asked)
	assert.Equal(t, []string{"Contact", "Bedankt!"}, driver.infos)

	assert.Equal(t, 1, transport.calls)
	assert.Equal(t, cms.FieldValues{
		"name":    cms.StringValue("Jane"),
		"email":   cms.StringValue("jane@example.com"),
		"topic":   cms.StringValue("support"),
		"message": cms.StringValue("Hallo"),
		"agree":   cms.BoolValue(true),
	}, transport.values)
}

func TestFill_ReasksOnlyFailingFields(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	driver := &stubDriver{
		inputs:     []string{"", "not-an-email", "Jane", "jane@example.com"},
		selects:    []int{0},
		multilines: []string{""},
		confirms:   []bool{true},
	}

	state, err := prompt.Fill(context.Background(), openSession(t, transport), driver)
	require.NoError(t, err)

	assert.Equal(t, form.StatusSuccess, state.Status)
	assert.Equal(t, []string{"Naam *", "E-mail", "Onderwerp", "Bericht", "Akkoord *", "Naam *", "E-mail"}, driver.asked)
	assert.Contains(t, driver.infos, "Naam: Naam is required")
	assert.Contains(t, driver.infos, "E-mail: Please enter a valid email address")
	assert.Equal(t, 1, transport.calls)
	assert.Equal(t, cms.StringValue("sales"), transport.values["topic"])
}

func TestFill_TooManyAttempts(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	driver := &stubDriver{
		inputs:     []string{"Jane", ""},
		selects:    []int{0},
		multilines: []string{""},
		confirms:   []bool{false, false},
	}

	state, err := prompt.Fill(context.Background(), openSession(t, transport), driver, prompt.WithMaxAttempts(2))
	require.ErrorIs(t, err, prompt.ErrTooManyAttempts)

	assert.Equal(t, "Akkoord is required", state.Errors["agree"])
	assert.Zero(t, transport.calls)
}

func TestFill_SubmitFailure(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{err: &cms.APIError{StatusCode: 500, Message: "Server down"}}
	driver := &stubDriver{
		inputs:     []string{"Jane", ""},
		selects:    []int{0},
		multilines: []string{""},
		confirms:   []bool{true},
	}

	state, err := prompt.Fill(context.Background(), openSession(t, transport), driver)
	require.ErrorIs(t, err, prompt.ErrSubmitFailed)

	assert.Equal(t, form.StatusError, state.Status)
	assert.NotEmpty(t, state.Message)
	assert.Contains(t, driver.infos, state.Message)
}

func TestFill_DriverError(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	driver := &stubDriver{}

	_, err := prompt.Fill(context.Background(), openSession(t, transport), driver)
	require.ErrorIs(t, err, errNotScripted)
	assert.Zero(t, transport.calls)
}

func TestFill_InlineValidation(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	driver := &stubDriver{
		inputs:     []string{"Jane", "bad"},
		selects:    []int{0},
		multilines: []string{""},
		confirms:   []bool{true},
	}

	_, err := prompt.Fill(context.Background(), openSession(t, transport), driver,
		prompt.WithInlineValidation(), prompt.WithMaxAttempts(1))
	require.ErrorIs(t, err, prompt.ErrTooManyAttempts)
	assert.Contains(t, driver.infos, "inline: Please enter a valid email address")
}

type failingSource struct{}

func (failingSource) Get(context.Context, string) (*cms.FormDefinition, error) {
	return nil, &cms.APIError{StatusCode: 404, Message: "form not found"}
}

func (failingSource) Submit(context.Context, string, cms.FieldValues) (*cms.FormSubmitResponse, error) {
	return nil, nil
}

func TestFill_LoadFailure(t *testing.T) {
	t.Parallel()

	session, err := form.Open(context.Background(), form.WithSource("missing", failingSource{}))
	require.NoError(t, err)

	defer func() { _ = session.Close() }()

	state, err := prompt.Fill(context.Background(), session, &stubDriver{})
	require.ErrorIs(t, err, prompt.ErrLoadFailed)
	assert.True(t, state.LoadFailed())
}

func TestFill_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session, err := form.Open(context.Background(), form.WithSource("slow", blockingSource{}))
	require.NoError(t, err)

	defer func() { _ = session.Close() }()

	_, err = prompt.Fill(ctx, session, &stubDriver{})
	require.ErrorIs(t, err, context.Canceled)
}

type blockingSource struct{}

func (blockingSource) Get(ctx context.Context, _ string) (*cms.FormDefinition, error) {
	<-ctx.Done()

	return nil, ctx.Err()
}

func (blockingSource) Submit(context.Context, string, cms.FieldValues) (*cms.FormSubmitResponse, error) {
	return nil, nil
}
