package cms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// Request is an outgoing CMS call as seen by interceptors. Headers may be
// amended before the request is sent.
type Request struct {
	Method   string
	Path     string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Resource names the CMS resource a request targets: "pages", "forms",
// "forms/submit", "agenda", "posts" or the sync endpoint.
func (r *Request) Resource() string {
	path := r.Path
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 1 && segments[len(segments)-1] == "submit" {
		return segments[0] + "/submit"
	}

	return segments[0]
}

// Response is the outcome of a CMS call as seen by interceptors. Error is
// the *APIError for non-2xx statuses.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// Interceptor pairs the two hooks of one concern. Either may be nil.
type Interceptor struct {
	Name     string
	Request  RequestInterceptor
	Response ResponseInterceptor
}

// InterceptorChain runs interceptors around every CMS call. Request hooks
// run in registration order, response hooks in reverse, so the first
// interceptor registered sees the request first and the response last.
type InterceptorChain struct {
	mu           sync.RWMutex
	interceptors []Interceptor
}

// NewInterceptorChain creates a chain holding the given interceptors.
func NewInterceptorChain(interceptors ...Interceptor) *InterceptorChain {
	return &InterceptorChain{interceptors: slices.Clone(interceptors)}
}

// Use appends an interceptor.
func (c *InterceptorChain) Use(interceptor Interceptor) *InterceptorChain {
	c.mu.Lock()
	c.interceptors = append(c.interceptors, interceptor)
	c.mu.Unlock()

	return c
}

// OnRequest appends a request-only interceptor.
func (c *InterceptorChain) OnRequest(fn RequestInterceptor) *InterceptorChain {
	return c.Use(Interceptor{Request: fn})
}

// OnResponse appends a response-only interceptor.
func (c *InterceptorChain) OnResponse(fn ResponseInterceptor) *InterceptorChain {
	return c.Use(Interceptor{Response: fn})
}

// BeforeRequest runs the request hooks. The first failure aborts the call.
func (c *InterceptorChain) BeforeRequest(ctx context.Context, req *Request) error {
	for i, interceptor := range c.snapshot() {
		if interceptor.Request == nil {
			continue
		}

		err := interceptor.Request(ctx, req)
		if err != nil {
			return fmt.Errorf("interceptor %s: %w", interceptor.label(i), err)
		}
	}

	return nil
}

// AfterResponse runs every response hook, even after one fails, and
// returns the joined failures.
func (c *InterceptorChain) AfterResponse(ctx context.Context, req *Request, resp *Response) error {
	interceptors := c.snapshot()

	var errs []error

	for i := len(interceptors) - 1; i >= 0; i-- {
		if interceptors[i].Response == nil {
			continue
		}

		err := interceptors[i].Response(ctx, req, resp)
		if err != nil {
			errs = append(errs, fmt.Errorf("interceptor %s: %w", interceptors[i].label(i), err))
		}
	}

	return errors.Join(errs...)
}

func (c *InterceptorChain) snapshot() []Interceptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.interceptors)
}

func (i Interceptor) label(index int) string {
	if i.Name != "" {
		return i.Name
	}

	return fmt.Sprintf("#%d", index)
}

// StaticHeaders sets fixed headers on every request.
func StaticHeaders(headers map[string]string) Interceptor {
	return Interceptor{
		Name: "headers",
		Request: func(_ context.Context, req *Request) error {
			if req.Headers == nil {
				req.Headers = make(http.Header)
			}

			for key, value := range headers {
				req.Headers.Set(key, value)
			}

			return nil
		},
	}
}

// Locale asks the CMS for content in the given language.
func Locale(lang string) Interceptor {
	interceptor := StaticHeaders(map[string]string{"Accept-Language": lang})
	interceptor.Name = "locale"

	return interceptor
}

// RequestLogger logs every call. Rejected submissions log at info, other
// client errors at warn, server and transport failures at error.
func RequestLogger(logger Logger) Interceptor {
	return Interceptor{
		Name: "logger",
		Request: func(_ context.Context, req *Request) error {
			logger.Debug("CMS request", map[string]interface{}{
				"method":   req.Method,
				"resource": req.Resource(),
				"path":     req.Path,
			})

			return nil
		},
		Response: func(_ context.Context, req *Request, resp *Response) error {
			fields := map[string]interface{}{
				"method":      req.Method,
				"resource":    req.Resource(),
				"status_code": resp.StatusCode,
			}

			if resp.Error != nil {
				fields["error"] = resp.Error.Error()
			}

			switch {
			case resp.StatusCode == http.StatusUnprocessableEntity:
				logger.Info("CMS rejected request", fields)
			case resp.StatusCode >= http.StatusInternalServerError:
				logger.Error("CMS server error", fields)
			case resp.StatusCode >= http.StatusBadRequest:
				logger.Warn("CMS request failed", fields)
			case resp.Error != nil:
				logger.Error("CMS request failed", fields)
			default:
				logger.Debug("CMS response", fields)
			}

			return nil
		},
	}
}

// ResourceStats holds call statistics for one resource.
type ResourceStats struct {
	Requests       int64
	Rejected       int64
	Failures       int64
	TotalLatency   time.Duration
	AverageLatency time.Duration
	LastRequest    time.Time
}

// UsageCollector counts calls per resource. Rejected counts 4xx
// responses, Failures counts 5xx and transport errors.
type UsageCollector struct {
	mu    sync.Mutex
	stats map[string]*ResourceStats
	now   func() time.Time
}

const startTimeKey = "usage_start"

// NewUsageCollector creates an empty collector.
func NewUsageCollector() *UsageCollector {
	return &UsageCollector{stats: make(map[string]*ResourceStats), now: time.Now}
}

// Interceptor returns the hooks that feed the collector.
func (u *UsageCollector) Interceptor() Interceptor {
	return Interceptor{
		Name: "usage",
		Request: func(_ context.Context, req *Request) error {
			if req.Metadata == nil {
				req.Metadata = make(map[string]interface{})
			}

			req.Metadata[startTimeKey] = u.now()

			return nil
		},
		Response: func(_ context.Context, req *Request, resp *Response) error {
			u.record(req, resp)

			return nil
		},
	}
}

func (u *UsageCollector) record(req *Request, resp *Response) {
	now := u.now()
	resource := req.Resource()

	u.mu.Lock()
	defer u.mu.Unlock()

	stats, ok := u.stats[resource]
	if !ok {
		stats = &ResourceStats{}
		u.stats[resource] = stats
	}

	stats.Requests++
	stats.LastRequest = now

	if start, ok := req.Metadata[startTimeKey].(time.Time); ok {
		stats.TotalLatency += now.Sub(start)
		stats.AverageLatency = stats.TotalLatency / time.Duration(stats.Requests)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		stats.Failures++
	case resp.StatusCode >= http.StatusBadRequest:
		stats.Rejected++
	case resp.Error != nil:
		stats.Failures++
	}
}

// Stats returns a copy of the statistics for a resource.
func (u *UsageCollector) Stats(resource string) (ResourceStats, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	stats, ok := u.stats[resource]
	if !ok {
		return ResourceStats{}, false
	}

	return *stats, true
}

// Resources lists the resources seen so far, sorted.
func (u *UsageCollector) Resources() []string {
	u.mu.Lock()
	defer u.mu.Unlock()

	resources := make([]string, 0, len(u.stats))
	for resource := range u.stats {
		resources = append(resources, resource)
	}

	slices.Sort(resources)

	return resources
}
