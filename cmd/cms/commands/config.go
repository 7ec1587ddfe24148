package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type settingsView struct {
	Config   string `json:"config"    yaml:"config"`
	API      string `json:"api"       yaml:"api"`
	APIKey   string `json:"api_key"   yaml:"api_key"`
	AuthMode string `json:"auth_mode" yaml:"auth_mode"`
	Output   string `json:"output"    yaml:"output"`
	Timeout  string `json:"timeout"   yaml:"timeout"`
	Cache    string `json:"cache"     yaml:"cache"`
	CacheURL string `json:"cache_url" yaml:"cache_url"`
	Verbose  bool   `json:"verbose"   yaml:"verbose"`
}

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect CLI configuration",
		Long:  "Inspect the settings resolved from flags, environment and .env files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  "Display the effective CLI configuration. The API key is masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := a.settings()

			return a.renderOutput(cmd, view, func(table *tablewriter.Table) {
				table.Header("Setting", "Value")
				_ = table.Append("Config file", view.Config)
				_ = table.Append("API", orNA(view.API))
				_ = table.Append("API key", view.APIKey)
				_ = table.Append("Auth mode", view.AuthMode)
				_ = table.Append("Output", view.Output)
				_ = table.Append("Timeout", view.Timeout)
				_ = table.Append("Cache", view.Cache)
				_ = table.Append("Cache URL", orNA(view.CacheURL))
			})
		},
	})

	return cmd
}

func (a *app) settings() settingsView {
	return settingsView{
		Config:   a.v.GetString(keyConfig),
		API:      a.v.GetString(keyAPI),
		APIKey:   maskSecret(a.v.GetString(keyAPIKey)),
		AuthMode: a.v.GetString(keyAuthMode),
		Output:   a.output(),
		Timeout:  a.v.GetDuration(keyTimeout).String(),
		Cache:    a.v.GetString(keyCache),
		CacheURL: a.v.GetString(keyCacheURL),
		Verbose:  a.v.GetBool(keyVerbose),
	}
}
