package cmsclient

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/client"
	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// New creates a new CMS API client. The base URL is normalized: a trailing
// slash is dropped and https:// is assumed when no scheme is given.
func New(ctx context.Context, config *cms.Config) (cms.Client, error) {
	if config == nil {
		return nil, cms.ErrConfigRequired
	}

	normalized := *config

	baseURL, err := NormalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	normalized.BaseURL = baseURL

	client, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithAPIKey creates a client for baseURL sending key as X-API-Key.
func NewWithAPIKey(ctx context.Context, baseURL, key string) (cms.Client, error) {
	return New(ctx, &cms.Config{
		BaseURL: baseURL,
		APIKey:  key,
	})
}

// NormalizeBaseURL trims whitespace and trailing slashes and adds an https
// scheme when none is present.
func NormalizeBaseURL(baseURL string) (string, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return "", cms.ErrBaseURLRequired
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL, nil
}

// envConfig holds the environment variables read by NewFromEnv. The
// NEXT_PUBLIC_ variants are fallbacks for sites sharing a Next.js .env file.
type envConfig struct {
	APIURL       string        `env:"CMS_API_URL"`
	APIKey       string        `env:"CMS_API_KEY"`
	PublicAPIURL string        `env:"NEXT_PUBLIC_CMS_API_URL"`
	PublicAPIKey string        `env:"NEXT_PUBLIC_CMS_API_KEY"`
	AuthMode     string        `env:"CMS_AUTH_MODE"`
	Timeout      time.Duration `env:"CMS_TIMEOUT"`
	Debug        bool          `env:"CMS_DEBUG"`
}

// LoadEnvConfig reads the client configuration from the process
// environment, layered over base.
func LoadEnvConfig(base *cms.Config) (*cms.Config, error) {
	return LoadEnvConfigFrom(base, envMap(os.Environ()))
}

// LoadEnvConfigFrom is LoadEnvConfig over an explicit environment.
func LoadEnvConfigFrom(base *cms.Config, environ map[string]string) (*cms.Config, error) {
	var vars envConfig

	err := env.ParseWithOptions(&vars, env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	config := &cms.Config{}
	if base != nil {
		*config = *base
	}

	config.BaseURL = firstNonEmpty(vars.APIURL, vars.PublicAPIURL, config.BaseURL)
	config.APIKey = firstNonEmpty(vars.APIKey, vars.PublicAPIKey, config.APIKey)

	if config.BaseURL == "" || config.APIKey == "" {
		return nil, fmt.Errorf("%w: set %s and %s", cms.ErrMissingEnv, constants.EnvAPIURL, constants.EnvAPIKey)
	}

	if vars.AuthMode != "" {
		config.AuthMode = cms.AuthMode(vars.AuthMode)
	}

	if vars.Timeout > 0 {
		config.HTTPTimeout = vars.Timeout
	}

	config.Debug = config.Debug || vars.Debug

	return config, nil
}

// NewFromEnv creates a client from CMS_API_URL and CMS_API_KEY, falling back
// to NEXT_PUBLIC_CMS_API_URL and NEXT_PUBLIC_CMS_API_KEY. Settings in base
// that the environment does not cover are kept.
func NewFromEnv(ctx context.Context, base *cms.Config) (cms.Client, error) {
	config, err := LoadEnvConfig(base)
	if err != nil {
		return nil, err
	}

	return New(ctx, config)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			m[key] = value
		}
	}

	return m
}
