//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIURL     string
	APIKey     string
	BinaryPath string
	PageSlug   string
	FormSlug   string
	AllowSync  bool
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIURL:     os.Getenv("CMS_API_URL"),
		APIKey:     os.Getenv("CMS_API_KEY"),
		BinaryPath: getBinaryPath(),
		PageSlug:   envOr("CMS_TEST_PAGE", "home"),
		FormSlug:   envOr("CMS_TEST_FORM", "contact"),
		AllowSync:  os.Getenv("CMS_TEST_SYNC") == "true",
		Verbose:    os.Getenv("CMS_VERBOSE") == "true",
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

// getBinaryPath determines the path to the cms binary.
func getBinaryPath() string {
	if path := os.Getenv("CMS_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../cms", "./cms", "../cms"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "cms"
}

// SkipIfMissingConfig skips the test when no CMS or binary is available.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIURL == "" || config.APIKey == "" {
		t.Skip("CMS_API_URL or CMS_API_KEY not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("cms binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner runs the cms binary.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
	dir    string
}

// NewCommandRunner creates a runner that executes in a fresh temporary
// directory, so init and sync never touch the working tree.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{config: config, t: t, dir: t.TempDir()}
}

// Dir is the runner's working directory.
func (runner *CommandRunner) Dir() string {
	return runner.dir
}

// Run executes a cms command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.BinaryPath, args...)
	cmd.Dir = runner.dir
	cmd.Env = append(os.Environ(),
		"CMS_API_URL="+runner.config.APIURL,
		"CMS_API_KEY="+runner.config.APIKey,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// AssertJSONOutput verifies command output decodes as JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &v); err != nil {
		t.Errorf("Output is not JSON: %v\n%s", err, output)
	}
}

// AssertYAMLOutput verifies command output decodes as a YAML mapping.
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var v map[string]any
	if err := yaml.Unmarshal([]byte(output), &v); err != nil || len(v) == 0 {
		t.Errorf("Output is not a YAML mapping: %v\n%s", err, output)
	}
}
