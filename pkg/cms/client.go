package cms

import (
	"context"
	"time"
)

// Client is the entry point to every resource client of the CMS API.
type Client interface {
	Pages() PagesClient
	Forms() FormsClient
	Agenda() AgendaClient
	Posts() PostsClient
	Structure() StructureClient
}

// PagesClient reads pages and their components.
type PagesClient interface {
	Get(ctx context.Context, slug string) (*Page, error)
}

// FormsClient reads form definitions and submits filled forms.
type FormsClient interface {
	Get(ctx context.Context, slug string) (*FormDefinition, error)
	Submit(ctx context.Context, slug string, values FieldValues) (*FormSubmitResponse, error)
}

// AgendaClient reads agenda events.
type AgendaClient interface {
	List(ctx context.Context, params *AgendaEventsParams) (*AgendaEventsResponse, error)
	Get(ctx context.Context, slug string) (*AgendaEvent, error)
}

// PostsClient reads blog posts.
type PostsClient interface {
	List(ctx context.Context, params *PostsParams) (*PostsResponse, error)
	Get(ctx context.Context, slug string) (*Post, error)
}

// StructureClient pushes the site's component and page structure.
type StructureClient interface {
	Sync(ctx context.Context, structure *Structure) (*SyncResponse, error)
}

// Logger interface for custom logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// AuthMode selects how the API key is presented to the server.
type AuthMode string

const (
	// AuthAPIKey sends the key in the X-API-Key header. This is the default.
	AuthAPIKey AuthMode = "api-key"

	// AuthBearer sends the key as "Authorization: Bearer <key>".
	AuthBearer AuthMode = "bearer"
)

// Config represents client configuration for building a cms.Client.
type Config struct {
	// BaseURL: base URL of the CMS API (e.g., "https://cms.example.com/api").
	// cmsclient.New trims a trailing slash and adds "https://" if no scheme
	// is present.
	BaseURL string
	// APIKey: key sent with every request.
	APIKey string
	// AuthMode: how APIKey is sent. Empty means AuthAPIKey.
	AuthMode AuthMode
	// SyncPath: endpoint used by Structure().Sync. Empty means "/sync-structure".
	SyncPath string

	// HTTPTimeout: per-request timeout. Most calls should rely on context
	// deadlines; zero uses the default.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures (>=500, 429,
	// and connection errors). If 0, a default is used.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug: enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string

	// Cache: optional backend for GET responses. Nil disables caching.
	Cache Cache
	// CacheTTL: how long a cached response is served before revalidation.
	CacheTTL time.Duration
	// Interceptors: optional request/response hooks.
	Interceptors *InterceptorChain
}
