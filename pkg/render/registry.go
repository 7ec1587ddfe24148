package render

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// Static errors for err113 compliance.
var (
	ErrSlugRequired    = errors.New("block slug is required")
	ErrNilRenderer     = errors.New("renderer is nil")
	ErrInvalidTag      = errors.New("invalid element name")
	ErrNilPage         = errors.New("page is nil")
)

// Block is one page component as handed to a renderer.
type Block struct {
	ID      int
	Slug    string
	Content cms.Content
	// Class is the CSS class configured for the block's slug, if any.
	Class string
}

// Renderer writes the HTML for one block.
type Renderer interface {
	Render(w io.Writer, block Block) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w io.Writer, block Block) error

// Render implements Renderer.
func (f RendererFunc) Render(w io.Writer, block Block) error {
	return f(w, block)
}

// Registry maps component slugs to renderers. Registering a slug again
// replaces the previous renderer. A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register associates renderer with slug.
func (r *Registry) Register(slug string, renderer Renderer) error {
	if slug = strings.TrimSpace(slug); slug == "" {
		return ErrSlugRequired
	}

	if renderer == nil {
		return fmt.Errorf("%w: %s", ErrNilRenderer, slug)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.renderers[slug] = renderer

	return nil
}

// RegisterFunc registers a plain function for slug.
func (r *Registry) RegisterFunc(slug string, fn func(w io.Writer, block Block) error) error {
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilRenderer, slug)
	}

	return r.Register(slug, RendererFunc(fn))
}

// Unregister removes the renderer for slug.
func (r *Registry) Unregister(slug string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.renderers, strings.TrimSpace(slug))
}

// Lookup returns the renderer registered for slug.
func (r *Registry) Lookup(slug string) (Renderer, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[slug]

	return renderer, ok
}

// Slugs returns the registered slugs in sorted order.
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.renderers))
	for slug := range r.renderers {
		slugs = append(slugs, slug)
	}

	slices.Sort(slugs)

	return slugs
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for slug, renderer := range r.renderers {
		cloned.renderers[slug] = renderer
	}

	return cloned
}
