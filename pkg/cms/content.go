package cms

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FieldType is the data type of a component field.
type FieldType string

// Component field types.
const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeRichText FieldType = "richtext"
	FieldTypeMedia    FieldType = "media"
	FieldTypeNumber   FieldType = "number"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
)

// FieldDefinition describes one field of a component schema.
type FieldDefinition struct {
	Name     string    `json:"name"               yaml:"name"`
	Type     FieldType `json:"type"               yaml:"type"`
	Label    string    `json:"label"              yaml:"label"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Options  []string  `json:"options,omitempty"  yaml:"options,omitempty"`
}

// ComponentDefinition describes a content block type.
type ComponentDefinition struct {
	Label  string            `json:"label"  yaml:"label"`
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
}

// Content is the decoded data of a page component, keyed by field name.
type Content map[string]any

// String returns the value at key when it is a string.
func (c Content) String(key string) string {
	s, _ := c[key].(string)

	return s
}

// Media returns the value at key decoded as Media. A bare string is taken
// as the URL.
func (c Content) Media(key string) Media {
	switch v := c[key].(type) {
	case string:
		return Media{URL: v}
	case map[string]any:
		url, _ := v["url"].(string)
		alt, _ := v["alt"].(string)

		return Media{URL: url, Alt: alt}
	default:
		return Media{}
	}
}

// Keys returns the content keys in sorted order.
func (c Content) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Media is an image or file reference.
type Media struct {
	URL string `json:"url"           yaml:"url"`
	Alt string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// UnmarshalJSON accepts either a URL string or an object with url and alt.
func (m *Media) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*m = Media{URL: url}

		return nil
	}

	type media Media

	var decoded media

	err := json.Unmarshal(data, &decoded)
	if err != nil {
		return fmt.Errorf("decoding media: %w", err)
	}

	*m = Media(decoded)

	return nil
}

// PageComponent is one block placed on a page.
type PageComponent struct {
	ID            int     `json:"id"              yaml:"id"`
	PageID        int     `json:"page_id"         yaml:"page_id"`
	ComponentSlug string  `json:"component_slug"  yaml:"component_slug"`
	Data          Content `json:"data"            yaml:"data"`
	Order         *int    `json:"order,omitempty" yaml:"order,omitempty"`
}

// Position returns the component's order, 0 when unset.
func (c PageComponent) Position() int {
	if c.Order == nil {
		return 0
	}

	return *c.Order
}

// Page is a page as served by GET /pages/{slug}.
type Page struct {
	ID            int             `json:"id"             yaml:"id"`
	Slug          string          `json:"slug"           yaml:"slug"`
	Title         string          `json:"title"          yaml:"title"`
	AllowedBlocks []string        `json:"allowed_blocks" yaml:"allowed_blocks"`
	Components    []PageComponent `json:"components"     yaml:"components"`
}
