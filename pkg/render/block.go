package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// BlockOptions configures RenderBlock.
type BlockOptions struct {
	Registry *Registry
	Logger   cms.Logger
}

type fieldEntry struct {
	Key   string
	Value string
}

// RenderBlock writes block using the renderer registered for its slug.
// Unregistered slugs fall back to a generic dump of the block content.
func RenderBlock(w io.Writer, block Block, opts BlockOptions) error {
	if renderer, ok := opts.Registry.Lookup(block.Slug); ok {
		err := renderer.Render(w, block)
		if err != nil {
			return fmt.Errorf("rendering block %s: %w", block.Slug, err)
		}

		return nil
	}

	if opts.Logger != nil {
		opts.Logger.Warn("No renderer registered for block", map[string]interface{}{
			"slug": block.Slug,
			"id":   block.ID,
		})
	}

	return RenderFallback(w, block)
}

// RenderFallback writes a div carrying the block id, slug and class with
// one child per content key, in key order.
func RenderFallback(w io.Writer, block Block) error {
	entries := make([]fieldEntry, 0, len(block.Content))

	for _, key := range block.Content.Keys() {
		value, err := displayValue(block.Content[key])
		if err != nil {
			return fmt.Errorf("encoding field %s of block %s: %w", key, block.Slug, err)
		}

		entries = append(entries, fieldEntry{Key: key, Value: value})
	}

	return execute(w, "block.html", pongo2.Context{
		"id":      block.ID,
		"slug":    block.Slug,
		"class":   block.Class,
		"entries": entries,
	})
}

func displayValue(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(v)
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}
