package constants

import "errors"

// Configuration errors.
var (
	ErrConfigExists        = errors.New("cms-config.json already exists")
	ErrPlaceholderBaseURL  = errors.New("api.baseUrl still holds the placeholder value, edit cms-config.json first")
	ErrPlaceholderAPIKey   = errors.New("api.apiKey still holds the placeholder value, edit cms-config.json first")
	ErrNoAPIConfigured     = errors.New("no API URL configured, pass --api or set CMS_API_URL")
	ErrNoAPIKeyConfigured  = errors.New("no API key configured, pass --api-key or set CMS_API_KEY")
	ErrInvalidFieldFlag    = errors.New("field must be given as name=value")
	ErrNotATerminal        = errors.New("interactive mode requires a terminal")
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrCacheURLMismatch    = errors.New("--cache-url does not match --cache")
)
