package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/auth"
	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/internal/http"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// Client implements the cms.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     cms.Logger

	// Resource clients
	pages     cms.PagesClient
	forms     cms.FormsClient
	agenda    cms.AgendaClient
	posts     cms.PostsClient
	structure cms.StructureClient
}

// New creates a new CMS API client from a normalized config.
func New(ctx context.Context, config *cms.Config) (*Client, error) {
	if config == nil {
		return nil, cms.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, cms.ErrBaseURLRequired
	}

	opts := []http.Option{
		http.WithLogger(config.Logger),
		http.WithDebug(config.Debug),
		http.WithUserAgent(config.UserAgent),
		http.WithTimeout(config.HTTPTimeout),
		http.WithInterceptors(config.Interceptors),
	}

	// RetryMax 0 keeps the defaults, a negative value disables retries.
	if config.RetryMax != 0 {
		waitMin := config.RetryWaitMin
		if waitMin == 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax == 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, http.WithRetryConfig(max(config.RetryMax, 0), waitMin, waitMax))
	}

	if config.Cache != nil {
		ttl := config.CacheTTL
		if ttl == 0 {
			ttl = constants.DefaultCacheTTL
		}

		opts = append(opts, http.WithCache(config.Cache, ttl))
	}

	httpClient := http.NewClient(config.BaseURL, auth.ForMode(config.AuthMode, config.APIKey), opts...)

	syncPath := config.SyncPath
	if syncPath == "" {
		syncPath = constants.SyncStructurePath
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
		pages:      NewPagesClient(httpClient),
		forms:      NewFormsClient(httpClient),
		agenda:     NewAgendaClient(httpClient),
		posts:      NewPostsClient(httpClient),
		structure:  NewStructureClient(httpClient, syncPath),
	}, nil
}

// Pages implements cms.Client.Pages.
func (c *Client) Pages() cms.PagesClient {
	return c.pages
}

// Forms implements cms.Client.Forms.
func (c *Client) Forms() cms.FormsClient {
	return c.forms
}

// Agenda implements cms.Client.Agenda.
func (c *Client) Agenda() cms.AgendaClient {
	return c.agenda
}

// Posts implements cms.Client.Posts.
func (c *Client) Posts() cms.PostsClient {
	return c.posts
}

// Structure implements cms.Client.Structure.
func (c *Client) Structure() cms.StructureClient {
	return c.structure
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// slugPath joins an escaped slug onto a resource prefix.
func slugPath(prefix, slug string) (string, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return "", cms.ErrSlugRequired
	}

	return strings.TrimSuffix(prefix, "/") + "/" + url.PathEscape(slug), nil
}

// decodeResource decodes a single resource that may be wrapped in
// {"data": ...}.
func decodeResource(body []byte, target any) error {
	var envelope map[string]json.RawMessage

	if json.Unmarshal(body, &envelope) == nil {
		if data, ok := envelope["data"]; ok && len(envelope) <= 2 && bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			body = data
		}
	}

	return json.Unmarshal(body, target)
}
