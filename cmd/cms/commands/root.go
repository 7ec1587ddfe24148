package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cmsclient"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/logging"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/prompt"
)

// Settings keys shared by flags, environment and config.
const (
	keyConfig   = "config"
	keyAPI      = "api"
	keyAPIKey   = "api-key"
	keyAuthMode = "auth-mode"
	keyOutput   = "output"
	keyVerbose  = "verbose"
	keyTimeout  = "timeout"
	keyCache    = "cache"
	keyCacheURL = "cache-url"
	keyLang     = "lang"
)

// dotenvFiles are loaded in order; earlier files win.
var dotenvFiles = []string{".env.local", ".env"}

// BuildInfo identifies the binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type app struct {
	v    *viper.Viper
	info BuildInfo

	// isTerminal and newDriver back the interactive commands.
	isTerminal func() bool
	newDriver  func() prompt.Driver
}

// NewRootCommand builds the cms command tree with its own settings.
func NewRootCommand(info BuildInfo) *cobra.Command {
	return newApp(info).rootCommand()
}

func newApp(info BuildInfo) *app {
	return &app{
		v:          viper.New(),
		info:       info,
		isTerminal: stdinIsTerminal,
		newDriver:  func() prompt.Driver { return prompt.NewSurveyDriver() },
	}
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cms",
		Short: "Headless CMS CLI",
		Long: `A command-line interface for the headless CMS.

Create and sync the site structure (components and pages), and read pages,
forms, agenda events and posts from the CMS API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initSettings()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP(keyConfig, "c", constants.DefaultConfigFile, "path to the site config file")
	flags.StringP(keyAPI, "a", "", "CMS API base URL")
	flags.StringP(keyAPIKey, "k", "", "CMS API key")
	flags.String(keyAuthMode, string(cms.AuthAPIKey), "how the API key is sent (api-key, bearer)")
	flags.StringP(keyOutput, "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP(keyVerbose, "v", false, "verbose output, including HTTP debug logs")
	flags.Duration(keyTimeout, constants.DefaultHTTPTimeout, "HTTP request timeout")
	flags.String(keyCache, string(cms.CacheTypeNone), "response cache (none, memory, redis, nats)")
	flags.String(keyCacheURL, "", "cache location, e.g. redis://host:6379/0?tiered=1 or nats://host:4222?bucket=cms")
	flags.String(keyLang, "", "content language sent as Accept-Language")

	for _, key := range []string{keyConfig, keyAPI, keyAPIKey, keyAuthMode, keyOutput, keyVerbose, keyTimeout, keyCache, keyCacheURL, keyLang} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	cmd.AddCommand(a.newVersionCommand())
	cmd.AddCommand(a.newInitCommand())
	cmd.AddCommand(a.newSyncCommand())
	cmd.AddCommand(a.newConfigCommand())
	cmd.AddCommand(a.newPagesCommand())
	cmd.AddCommand(a.newFormsCommand())
	cmd.AddCommand(a.newAgendaCommand())
	cmd.AddCommand(a.newPostsCommand())
	cmd.AddCommand(a.newRenderCommand())

	return cmd
}

func (a *app) initSettings() error {
	err := loadDotEnv(dotenvFiles...)
	if err != nil {
		return err
	}

	a.v.SetEnvPrefix("CMS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	_ = a.v.BindEnv(keyAPI, constants.EnvAPIURL, constants.EnvPublicAPIURL)
	_ = a.v.BindEnv(keyAPIKey, constants.EnvAPIKey, constants.EnvPublicAPIKey)

	switch a.output() {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, a.output())
	}
}

// loadDotEnv loads the files that exist. Variables already set in the
// environment are left untouched.
func loadDotEnv(files ...string) error {
	for _, file := range files {
		_, err := os.Stat(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		err = godotenv.Load(file)
		if err != nil {
			return fmt.Errorf("loading %s: %w", file, err)
		}
	}

	return nil
}

func (a *app) output() string {
	return strings.ToLower(a.v.GetString(keyOutput))
}

func (a *app) logger(cmd *cobra.Command) cms.Logger {
	level := "warn"
	if a.v.GetBool(keyVerbose) {
		level = "debug"
	}

	logger, err := logging.New(level, logging.FormatText, cmd.ErrOrStderr())
	if err != nil {
		return nil
	}

	return logger
}

// clientConfig assembles the SDK config from flags and environment.
func (a *app) clientConfig(cmd *cobra.Command) (*cms.Config, error) {
	baseURL := a.v.GetString(keyAPI)
	if strings.TrimSpace(baseURL) == "" {
		return nil, constants.ErrNoAPIConfigured
	}

	apiKey := a.v.GetString(keyAPIKey)
	if strings.TrimSpace(apiKey) == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	cache, err := a.cache()
	if err != nil {
		return nil, err
	}

	logger := a.logger(cmd)

	interceptors := cms.NewInterceptorChain()
	if logger != nil {
		interceptors.Use(cms.RequestLogger(logger))
	}

	if lang := a.v.GetString(keyLang); lang != "" {
		interceptors.Use(cms.Locale(lang))
	}

	return &cms.Config{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		AuthMode:     cms.AuthMode(a.v.GetString(keyAuthMode)),
		HTTPTimeout:  a.v.GetDuration(keyTimeout),
		Debug:        a.v.GetBool(keyVerbose),
		Logger:       logger,
		UserAgent:    "cms-cli/" + a.info.Version,
		Cache:        cache,
		Interceptors: interceptors,
	}, nil
}

func (a *app) cache() (cms.Cache, error) {
	kind := cms.CacheType(strings.ToLower(a.v.GetString(keyCache)))
	location := a.v.GetString(keyCacheURL)

	if kind == cms.CacheTypeNone {
		kind = ""
	}

	config := &cms.CacheConfig{Type: kind}

	if location != "" {
		parsed, err := cms.ParseCacheURL(location)
		if err != nil {
			return nil, fmt.Errorf("parsing cache URL: %w", err)
		}

		if kind != "" && parsed.Type != kind {
			return nil, fmt.Errorf("%w: %s cache, %s URL", constants.ErrCacheURLMismatch, kind, parsed.Type)
		}

		config = parsed
	}

	if config.Type == "" || config.Type == cms.CacheTypeNone {
		return nil, nil //nolint:nilnil // no cache configured
	}

	cache, err := cms.NewCacheFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating %s cache: %w", config.Type, err)
	}

	return cache, nil
}

func (a *app) newClient(cmd *cobra.Command) (cms.Client, error) {
	config, err := a.clientConfig(cmd)
	if err != nil {
		return nil, err
	}

	return cmsclient.New(commandContext(cmd), config)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // file descriptors fit in int
}

func (a *app) interactiveDriver() (prompt.Driver, error) {
	if !a.isTerminal() {
		return nil, constants.ErrNotATerminal
	}

	return a.newDriver(), nil
}
