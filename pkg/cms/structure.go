package cms

// SiteConfig is the cms-config.json file managed by the cms CLI.
type SiteConfig struct {
	API        APISettings                    `json:"api"        yaml:"api"`
	Components map[string]ComponentDefinition `json:"components" yaml:"components"`
	Pages      []PageDefinition               `json:"pages"      yaml:"pages"`
}

// APISettings holds the connection settings of a site config.
type APISettings struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string `json:"apiKey"  yaml:"apiKey"`
}

// PageDefinition declares a page and the blocks it may hold.
type PageDefinition struct {
	Slug          string   `json:"slug"           yaml:"slug"`
	Title         string   `json:"title"          yaml:"title"`
	AllowedBlocks []string `json:"allowed_blocks" yaml:"allowed_blocks"`
}

// Structure is the payload pushed by StructureClient.Sync.
type Structure struct {
	Components map[string]ComponentDefinition `json:"components" yaml:"components"`
	Pages      []PageDefinition               `json:"pages"      yaml:"pages"`
}

// Structure returns the sync payload of the site config.
func (c *SiteConfig) Structure() *Structure {
	return &Structure{
		Components: c.Components,
		Pages:      c.Pages,
	}
}

// SyncResponse is the body returned by a structure sync.
type SyncResponse struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
