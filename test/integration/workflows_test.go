//go:build integration

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLIWorkflow_ReadContent reads every content type against a live CMS.
func TestCLIWorkflow_ReadContent(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("pages", "get", config.PageSlug, "--output", "json")
	require.NoError(t, err, "Failed to get page: %s", stderr)
	AssertJSONOutput(t, stdout)

	var page struct {
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &page))
	assert.Equal(t, config.PageSlug, page.Slug)

	stdout, stderr, err = runner.Run("posts", "list", "--limit", "3", "--output", "yaml")
	require.NoError(t, err, "Failed to list posts: %s", stderr)
	AssertYAMLOutput(t, stdout)

	stdout, stderr, err = runner.Run("agenda", "list", "--upcoming", "--output", "json")
	require.NoError(t, err, "Failed to list agenda: %s", stderr)
	AssertJSONOutput(t, stdout)

	stdout, stderr, err = runner.Run("render", "page", config.PageSlug)
	require.NoError(t, err, "Failed to render page: %s", stderr)
	assert.Contains(t, stdout, `data-cms-slug=`)
}

// TestCLIWorkflow_FormValidation submits an empty form, which a form with
// any required field must refuse locally without a network round trip.
func TestCLIWorkflow_FormValidation(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("forms", "get", config.FormSlug, "--output", "json")
	require.NoError(t, err, "Failed to get form: %s", stderr)
	AssertJSONOutput(t, stdout)

	var def struct {
		Fields []struct {
			Validation *struct {
				Required bool `json:"required"`
			} `json:"validation"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &def))

	required := false
	for _, field := range def.Fields {
		if field.Validation != nil && field.Validation.Required {
			required = true
		}
	}

	if !required {
		t.Skipf("form %s has no required fields", config.FormSlug)
	}

	_, stderr, err = runner.Run("forms", "submit", config.FormSlug)
	require.Error(t, err)
	assert.Contains(t, stderr, "validation errors")

	stdout, _, err = runner.Run("render", "form", config.FormSlug)
	require.NoError(t, err)
	assert.Contains(t, stdout, "data-cms-form")
}

// TestCLIWorkflow_InitAndSync scaffolds a site config and syncs it. Sync
// mutates the remote structure, so it only runs with CMS_TEST_SYNC=true.
func TestCLIWorkflow_InitAndSync(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("init")
	require.NoError(t, err, "Failed to init: %s", stderr)
	assert.Contains(t, stdout, "cms-config.json created")

	path := filepath.Join(runner.Dir(), "cms-config.json")
	require.FileExists(t, path)

	_, stderr, err = runner.Run("init")
	require.Error(t, err, "second init must refuse to overwrite")
	assert.Contains(t, stderr, "already exists")

	_, stderr, err = runner.Run("sync")
	require.Error(t, err, "template placeholders must block sync")
	assert.NotEmpty(t, stderr)

	if !config.AllowSync {
		t.Skip("CMS_TEST_SYNC not set, skipping remote sync")
	}

	var site map[string]any

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &site))

	site["api"] = map[string]any{"baseUrl": config.APIURL, "apiKey": config.APIKey}

	raw, err = json.MarshalIndent(site, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	stdout, stderr, err = runner.Run("sync")
	require.NoError(t, err, "Failed to sync: %s", stderr)
	assert.Contains(t, stdout, "Sync successful")
}
