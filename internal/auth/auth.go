// Package auth attaches CMS credentials to outgoing requests.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// Static errors for err113 compliance.
var (
	ErrEmptyKey = errors.New("API key is empty")
)

// Authenticator applies credentials to a request before it is sent.
type Authenticator interface {
	Apply(ctx context.Context, req *http.Request) error
}

// APIKeyAuthenticator sends the key in the X-API-Key header.
type APIKeyAuthenticator struct {
	key string
}

// NewAPIKeyAuthenticator creates an X-API-Key authenticator.
func NewAPIKeyAuthenticator(key string) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{key: key}
}

// Apply implements Authenticator.
func (a *APIKeyAuthenticator) Apply(ctx context.Context, req *http.Request) error {
	if a.key == "" {
		return ErrEmptyKey
	}

	req.Header.Set(constants.HeaderAPIKey, a.key)

	return nil
}

// BearerAuthenticator sends the key as a Bearer token.
type BearerAuthenticator struct {
	token string
}

// NewBearerAuthenticator creates a Bearer token authenticator.
func NewBearerAuthenticator(token string) *BearerAuthenticator {
	return &BearerAuthenticator{token: token}
}

// Apply implements Authenticator.
func (a *BearerAuthenticator) Apply(ctx context.Context, req *http.Request) error {
	if a.token == "" {
		return ErrEmptyKey
	}

	req.Header.Set(constants.HeaderAuthorization, "Bearer "+a.token)

	return nil
}

// ForMode returns the authenticator for a configured auth mode. An empty key
// yields nil so requests go out unauthenticated.
func ForMode(mode cms.AuthMode, key string) Authenticator {
	if key == "" {
		return nil
	}

	if mode == cms.AuthBearer {
		return NewBearerAuthenticator(key)
	}

	return NewAPIKeyAuthenticator(key)
}
