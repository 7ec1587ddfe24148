package commands

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

const schemaURL = "mem:cms-config.schema.json"

//go:embed schema/cms-config.schema.json
var siteConfigSchemaSource string

// siteConfigTemplate is written by cms init.
const siteConfigTemplate = `{
  "api": {
    "baseUrl": "https://your-cms-api.com/api",
    "apiKey": "YOUR_API_KEY"
  },
  "components": {
    "hero_section": {
      "label": "Hero Sectie",
      "fields": [
        { "name": "title", "type": "text", "label": "Hoofdtitel" },
        { "name": "subtitle", "type": "textarea", "label": "Subtitel" },
        { "name": "image", "type": "media", "label": "Achtergrond foto" }
      ]
    },
    "text_area": {
      "label": "Tekst Blok",
      "fields": [{ "name": "content", "type": "richtext", "label": "Inhoud" }]
    }
  },
  "pages": [
    {
      "slug": "home",
      "title": "Homepagina",
      "allowed_blocks": ["hero_section", "text_area"]
    }
  ]
}
`

// Static errors for err113 compliance.
var (
	ErrConfigNotFound = errors.New(`cms-config.json not found. Run "cms init" first`)
	ErrConfigInvalid  = errors.New("cms-config.json is invalid")
)

var (
	siteConfigSchema     *jsonschema.Schema
	siteConfigSchemaErr  error
	siteConfigSchemaOnce sync.Once
)

func compiledSiteConfigSchema() (*jsonschema.Schema, error) {
	siteConfigSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		siteConfigSchemaErr = compiler.AddResource(schemaURL, strings.NewReader(siteConfigSchemaSource))
		if siteConfigSchemaErr != nil {
			return
		}

		siteConfigSchema, siteConfigSchemaErr = compiler.Compile(schemaURL)
	})

	return siteConfigSchema, siteConfigSchemaErr
}

// readSiteConfig loads, schema-validates and decodes the site config.
func readSiteConfig(path string) (*cms.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrConfigNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return parseSiteConfig(data)
}

func parseSiteConfig(data []byte) (*cms.SiteConfig, error) {
	var document interface{}

	err := json.Unmarshal(data, &document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	schema, err := compiledSiteConfigSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}

	err = schema.Validate(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	var config cms.SiteConfig

	err = json.NewDecoder(bytes.NewReader(data)).Decode(&config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	return &config, nil
}

// checkPlaceholders rejects the values written by cms init.
func checkPlaceholders(config *cms.SiteConfig) error {
	if config.API.BaseURL == "" || config.API.BaseURL == constants.PlaceholderBaseURL {
		return constants.ErrPlaceholderBaseURL
	}

	if config.API.APIKey == "" || config.API.APIKey == constants.PlaceholderAPIKey {
		return constants.ErrPlaceholderAPIKey
	}

	return nil
}
