package render

import (
	"fmt"
	"io"
	"regexp"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

const defaultTextTag = "p"

var (
	tagName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

	richTextPolicy     *bluemonday.Policy
	richTextPolicyOnce sync.Once
)

func sanitizer() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		richTextPolicy = bluemonday.UGCPolicy()
	})

	return richTextPolicy
}

// SanitizeHTML strips markup that is unsafe to embed in a page.
func SanitizeHTML(html string) string {
	return sanitizer().Sanitize(html)
}

// Text writes value inside an element named tag, "p" when tag is empty.
// Nothing is written for an empty value.
func Text(w io.Writer, value, tag, class string) error {
	if value == "" {
		return nil
	}

	if tag == "" {
		tag = defaultTextTag
	}

	if !tagName.MatchString(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	return execute(w, "text.html", pongo2.Context{
		"tag":   tag,
		"class": class,
		"value": value,
	})
}

// RichText writes sanitized HTML inside a div. Nothing is written for
// empty input.
func RichText(w io.Writer, html, class string) error {
	if html == "" {
		return nil
	}

	return execute(w, "richtext.html", pongo2.Context{
		"class": class,
		"html":  SanitizeHTML(html),
	})
}

// Media writes an img element for media. The media alt text wins over alt.
// Nothing is written when media has no URL.
func Media(w io.Writer, media cms.Media, alt, class string) error {
	if media.URL == "" {
		return nil
	}

	if media.Alt != "" {
		alt = media.Alt
	}

	return execute(w, "media.html", pongo2.Context{
		"src":   media.URL,
		"alt":   alt,
		"class": class,
	})
}
