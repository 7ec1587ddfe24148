// Package http is the transport shared by every resource client: it joins
// paths onto the base URL, authenticates, encodes JSON bodies, retries
// transient failures and maps non-2xx responses to *cms.APIError.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/auth"
	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "miso-headless-cms-core/1.0"

// Client performs requests against the CMS API.
type Client struct {
	baseURL       string
	httpClient    *retryablehttp.Client
	authenticator auth.Authenticator
	logger        cms.Logger
	debug         bool
	userAgent     string
	cache         cms.Cache
	cacheTTL      time.Duration
	interceptors  *cms.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// Cached is set when Body was served from the response cache.
	Cached bool
}

// WithLogger sets the logger used for debug output and retry messages.
func WithLogger(logger cms.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug toggles request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig sets the retry budget and backoff bounds.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithCache caches successful GET responses for ttl.
func WithCache(cache cms.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithInterceptors runs the chain around every request.
func WithInterceptors(chain *cms.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a client for baseURL. A nil authenticator sends
// requests without credentials.
func NewClient(baseURL string, authenticator auth.Authenticator, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	retryClient.CheckRetry = retryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		httpClient:    retryClient,
		authenticator: authenticator,
		userAgent:     DefaultUserAgent,
		cacheTTL:      constants.DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil {
		retryClient.RequestLogHook = client.logRetry
	}

	return client
}

func (c *Client) logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 {
		return
	}

	c.logger.Warn("Retrying request", map[string]interface{}{
		"method":  req.Method,
		"path":    req.URL.Path,
		"attempt": attempt,
	})
}

// retryPolicy follows the default policy, except that a POST which reached
// the server is only re-sent on 429.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp != nil && resp.Request != nil && resp.Request.Method == http.MethodPost &&
		resp.StatusCode != http.StatusTooManyRequests {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Do executes req. When the server answers with a non-2xx status the
// response is returned together with a *cms.APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var body []byte

	if req.Body != nil {
		var err error

		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	headers := make(http.Header)
	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	intercepted := &cms.Request{Method: req.Method, Path: req.Path, Headers: headers, Body: body}
	if c.interceptors != nil {
		err := c.interceptors.BeforeRequest(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	cacheKey := c.cacheKey(req)

	var stale *cms.CacheEntry

	if cacheKey != "" {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err == nil {
			return &Response{StatusCode: http.StatusOK, Body: entry.Data, Cached: true}, nil
		}

		if entry != nil && entry.ETag != "" {
			stale = entry
			intercepted.Headers.Set(constants.HeaderIfNoneMatch, entry.ETag)
		}
	}

	resp, err := c.send(ctx, req, intercepted)
	if err != nil {
		return nil, err
	}

	if stale != nil && resp.StatusCode == http.StatusNotModified {
		resp = &Response{StatusCode: http.StatusOK, Headers: resp.Headers, Body: stale.Data, Cached: true}
		c.storeCache(ctx, cacheKey, resp.Body, stale.ETag)
	} else if cacheKey != "" && resp.StatusCode < http.StatusMultipleChoices {
		c.storeCache(ctx, cacheKey, resp.Body, resp.Headers.Get(constants.HeaderETag))
	}

	var apiErr error
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr = cms.NewAPIError(resp.StatusCode, resp.Body)
	}

	if c.interceptors != nil {
		interceptedResp := &cms.Response{StatusCode: resp.StatusCode, Headers: resp.Headers, Body: resp.Body, Error: apiErr}

		err = c.interceptors.AfterResponse(ctx, intercepted, interceptedResp)
		if err != nil {
			return resp, err
		}
	}

	if apiErr != nil {
		return resp, apiErr
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, req *Request, intercepted *cms.Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody interface{}
	if intercepted.Body != nil {
		rawBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(constants.HeaderRequestID, uuid.NewString())

	if intercepted.Body != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	for key, values := range intercepted.Headers {
		for _, value := range values {
			httpReq.Header.Set(key, value)
		}
	}

	if c.authenticator != nil {
		err = c.authenticator.Apply(ctx, httpReq.Request)
		if err != nil {
			return nil, fmt.Errorf("authenticating request: %w", err)
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        fullURL,
			"request_id": httpReq.Header.Get(constants.HeaderRequestID),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
			"bytes":    len(respBody),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

func (c *Client) cacheKey(req *Request) string {
	if c.cache == nil || req.Method != http.MethodGet {
		return ""
	}

	key := req.Method + " " + req.Path
	if len(req.Query) > 0 {
		key += "?" + req.Query.Encode()
	}

	return key
}

func (c *Client) storeCache(ctx context.Context, key string, body []byte, etag string) {
	err := c.cache.Set(ctx, key, &cms.CacheEntry{
		Data:      bytes.Clone(body),
		ExpiresAt: time.Now().Add(c.cacheTTL),
		ETag:      etag,
	})
	if err != nil && c.logger != nil {
		c.logger.Warn("Failed to cache response", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
