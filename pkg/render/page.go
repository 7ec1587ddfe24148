package render

import (
	"bytes"
	"cmp"
	"io"
	"slices"

	"github.com/flosch/pongo2/v6"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// PageOptions configures RenderPage.
type PageOptions struct {
	Registry *Registry
	// BlockClassNames maps a component slug to the class given to its blocks.
	BlockClassNames map[string]string
	// Class is set on the wrapping div.
	Class  string
	Logger cms.Logger
}

// RenderPage writes all components of page inside a wrapping div.
func RenderPage(w io.Writer, page *cms.Page, opts PageOptions) error {
	if page == nil {
		return ErrNilPage
	}

	return RenderComponents(w, page.Components, opts)
}

// RenderComponents writes components ordered by their position. Components
// sharing a position keep their input order. The input slice is not
// reordered.
func RenderComponents(w io.Writer, components []cms.PageComponent, opts PageOptions) error {
	ordered := slices.Clone(components)
	slices.SortStableFunc(ordered, func(a, b cms.PageComponent) int {
		return cmp.Compare(a.Position(), b.Position())
	})

	blockOpts := BlockOptions{Registry: opts.Registry, Logger: opts.Logger}
	blocks := make([]string, 0, len(ordered))

	for _, component := range ordered {
		var buf bytes.Buffer

		err := RenderBlock(&buf, Block{
			ID:      component.ID,
			Slug:    component.ComponentSlug,
			Content: component.Data,
			Class:   opts.BlockClassNames[component.ComponentSlug],
		}, blockOpts)
		if err != nil {
			return err
		}

		blocks = append(blocks, buf.String())
	}

	return execute(w, "page.html", pongo2.Context{
		"class":  opts.Class,
		"blocks": blocks,
	})
}
