package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for the site config written by cms init.
	ConfigFilePerm = 0644
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as structure sync.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheSize is the default number of entries kept by the memory cache.
	DefaultCacheSize = 256

	// DefaultCacheTTL is how long a cached GET response is served without revalidation.
	DefaultCacheTTL = time.Minute

	// DefaultNATSBucket is the JetStream KV bucket used by the NATS cache.
	DefaultNATSBucket = "cms_cache"

	// DefaultRedisPrefix namespaces keys written by the Redis cache.
	DefaultRedisPrefix = "cms:cache:"
)

// Header names.
const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-Id"
	HeaderETag          = "ETag"
	HeaderIfNoneMatch   = "If-None-Match"
	ContentTypeJSON     = "application/json"
)

// API paths.
const (
	PagesPath         = "/pages/"
	FormsPath         = "/forms/"
	AgendaPath        = "/agenda"
	PostsPath         = "/posts"
	SyncStructurePath = "/sync-structure"
	CLISyncPath       = "/sync"
)

// Environment variables read by cmsclient.NewFromEnv.
const (
	EnvAPIURL       = "CMS_API_URL"
	EnvAPIKey       = "CMS_API_KEY"
	EnvPublicAPIURL = "NEXT_PUBLIC_CMS_API_URL"
	EnvPublicAPIKey = "NEXT_PUBLIC_CMS_API_KEY"
)

// Site config defaults used by the CLI.
const (
	// DefaultConfigFile is the site config read by cms sync.
	DefaultConfigFile = "cms-config.json"

	// PlaceholderBaseURL is written by cms init and rejected by cms sync.
	PlaceholderBaseURL = "https://your-cms-api.com/api"

	// PlaceholderAPIKey is written by cms init and rejected by cms sync.
	PlaceholderAPIKey = "YOUR_API_KEY"
)

// Display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the indent used for JSON and YAML CLI output.
	JSONIndentSize = 2

	// ExcerptLimit truncates long text in table output.
	ExcerptLimit = 60
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)
