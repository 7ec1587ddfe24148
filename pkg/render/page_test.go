package render_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/render"
)

func order(n int) *int { return &n }

func slugRenderer(w io.Writer, block render.Block) error {
	_, err := fmt.Fprintf(w, "[%s:%d:%s]", block.Slug, block.ID, block.Class)

	return err
}

func TestRenderPage_OrdersBlocks(t *testing.T) {
	t.Parallel()

	registry := render.NewRegistry()
	require.NoError(t, registry.RegisterFunc("hero", slugRenderer))
	require.NoError(t, registry.RegisterFunc("text", slugRenderer))

	page := &cms.Page{Slug: "home", Components: []cms.PageComponent{
		{ID: 1, ComponentSlug: "text", Order: order(2)},
		{ID: 2, ComponentSlug: "hero"},
		{ID: 3, ComponentSlug: "text", Order: order(1)},
		{ID: 4, ComponentSlug: "hero", Order: order(0)},
		{ID: 5, ComponentSlug: "text", Order: order(-1)},
	}}

	var out strings.Builder

	err := render.RenderPage(&out, page, render.PageOptions{
		Registry:        registry,
		Class:           "page",
		BlockClassNames: map[string]string{"hero": "hero-block"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`<div class="page">[text:5:][hero:2:hero-block][hero:4:hero-block][text:3:][text:1:]</div>`,
		strings.TrimSpace(out.String()))
	assert.Equal(t, 1, page.Components[0].ID, "input must not be reordered")
}

func TestRenderPage_Empty(t *testing.T) {
	t.Parallel()

	var out strings.Builder

	require.NoError(t, render.RenderPage(&out, &cms.Page{}, render.PageOptions{}))
	assert.Equal(t, "<div></div>", strings.TrimSpace(out.String()))

	require.ErrorIs(t, render.RenderPage(&out, nil, render.PageOptions{}), render.ErrNilPage)
}

func TestRenderPage_Fallback(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}

	page := &cms.Page{Components: []cms.PageComponent{{
		ID:            7,
		ComponentSlug: "gallery",
		Data: cms.Content{
			"title": "Fish & <Chips>",
			"count": float64(3),
			"tags":  []any{"a", "b"},
		},
	}}}

	var out strings.Builder

	err := render.RenderPage(&out, page, render.PageOptions{
		Registry:        render.NewRegistry(),
		Logger:          logger,
		BlockClassNames: map[string]string{"gallery": "wide"},
	})
	require.NoError(t, err)

	html := out.String()
	assert.Contains(t, html, `<div data-cms-id="7" data-cms-slug="gallery" class="wide">`)
	assert.Contains(t, html, `<div data-field="count">3</div>`)
	assert.Contains(t, html, `<div data-field="tags">[&quot;a&quot;,&quot;b&quot;]</div>`)
	assert.Contains(t, html, `<div data-field="title">Fish &amp; &lt;Chips&gt;</div>`)
	assert.Less(t, strings.Index(html, "count"), strings.Index(html, "title"))

	warnings := logger.warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "gallery", warnings[0].fields["slug"])
}

func TestRenderBlock_PropagatesRendererError(t *testing.T) {
	t.Parallel()

	registry := render.NewRegistry()
	require.NoError(t, registry.RegisterFunc("broken", func(io.Writer, render.Block) error {
		return io.ErrShortWrite
	}))

	var out strings.Builder

	err := render.RenderBlock(&out, render.Block{Slug: "broken"}, render.BlockOptions{Registry: registry})
	require.ErrorIs(t, err, io.ErrShortWrite)
	assert.Contains(t, err.Error(), "rendering block broken")
}

func TestRenderFallback_NoClass(t *testing.T) {
	t.Parallel()

	var out strings.Builder

	require.NoError(t, render.RenderFallback(&out, render.Block{ID: 1, Slug: "empty"}))
	assert.Equal(t, `<div data-cms-id="1" data-cms-slug="empty"></div>`, strings.TrimSpace(out.String()))
}
