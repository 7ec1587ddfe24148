package form_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cmsclient"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/form"
)

func newFormsAPI(t *testing.T, mux *http.ServeMux) cms.FormsClient {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := cmsclient.New(context.Background(), &cms.Config{
		BaseURL:  server.URL,
		APIKey:   "secret",
		RetryMax: -1,
	})
	require.NoError(t, err)

	return client.Forms()
}

func TestSession_APIErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{
			name:        "json message",
			status:      http.StatusInternalServerError,
			contentType: "application/json",
			body:        `{"message":"Server exploded"}`,
			want:        "Server exploded",
		},
		{
			name:        "validation message",
			status:      http.StatusUnprocessableEntity,
			contentType: "application/json",
			body:        `{"message":"Form is closed","errors":{"email":["Address is blocked"]}}`,
			want:        "Form is closed",
		},
		{
			name:        "plain body",
			status:      http.StatusBadGateway,
			contentType: "text/plain",
			body:        "Bad Gateway",
			want:        "CMS API error (502): Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run("submit "+tt.name, func(t *testing.T) {
			t.Parallel()

			mux := http.NewServeMux()
			mux.HandleFunc("POST /forms/contact/submit", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			rec := &recorder{}
			session := openSession(t, append(rec.options(),
				form.WithDefinition(contactForm()),
				form.WithTransport(newFormsAPI(t, mux)),
			)...)

			fillValid(t, session)
			require.NoError(t, session.Submit())
			wait(t, session)

			state := session.Snapshot()
			assert.Equal(t, form.StatusError, state.Status)
			assert.Equal(t, tt.want, state.Message)
			assert.NotNil(t, state.Definition)

			_, _, failures, _ := rec.counts()
			require.Equal(t, 1, failures)
			assert.True(t, cms.IsValidationError(rec.failures[0]) == (tt.status == http.StatusUnprocessableEntity))
		})

		t.Run("load "+tt.name, func(t *testing.T) {
			t.Parallel()

			mux := http.NewServeMux()
			mux.HandleFunc("GET /forms/contact", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			rec := &recorder{}
			session := openSession(t, append(rec.options(), form.WithSource("contact", newFormsAPI(t, mux)))...)
			wait(t, session)

			state := session.Snapshot()
			assert.True(t, state.LoadFailed())
			assert.Equal(t, tt.want, state.Message)

			_, _, _, loadErrs := rec.counts()
			assert.Equal(t, 1, loadErrs)
		})
	}
}

func TestSession_ServerFieldErrorsOverHTTP(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /forms/contact", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":1,"slug":"contact","label":"Contact","fields":[
			{"name":"email","type":"email","label":"E-mail","validation":{"required":true}},
			{"name":"message","type":"textarea","label":"Bericht"}
		]}}`))
	})
	mux.HandleFunc("POST /forms/contact/submit", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Invalid","errors":{"email":["Address is blocked"]}}`))
	})

	session := openSession(t, form.WithSource("contact", newFormsAPI(t, mux)))
	wait(t, session)

	require.NoError(t, session.SetField("email", cms.StringValue("jane@example.com")))
	require.NoError(t, session.Submit())
	wait(t, session)

	state := session.Snapshot()
	assert.Equal(t, form.StatusError, state.Status)
	assert.Equal(t, "Invalid", state.Message)
	assert.Equal(t, form.Errors{"email": "Address is blocked"}, state.Errors)
}
