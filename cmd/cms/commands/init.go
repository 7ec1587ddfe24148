package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cmsclient"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/prompt"
)

func (a *app) newInitCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create cms-config.json",
		Long:  "Create a site config with example components and pages in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInit(cmd, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for the API URL and key")

	return cmd
}

func (a *app) runInit(cmd *cobra.Command, interactive bool) error {
	target := a.v.GetString(keyConfig)

	_, err := os.Stat(target)
	if err == nil {
		return constants.ErrConfigExists
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", target, err)
	}

	content := siteConfigTemplate

	if interactive {
		content, err = a.askSiteConfig(cmd)
		if err != nil {
			return err
		}
	}

	err = os.WriteFile(target, []byte(content), constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "cms-config.json created")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Next steps:")

	if !interactive {
		_, _ = fmt.Fprintln(out, "  1. Update api.baseUrl with your CMS API URL")
		_, _ = fmt.Fprintln(out, "  2. Update api.apiKey with your project API key")
	}

	_, _ = fmt.Fprintln(out, "  - Define your components and pages")
	_, _ = fmt.Fprintln(out, `  - Run "cms sync" to sync with the server`)

	return nil
}

func (a *app) askSiteConfig(cmd *cobra.Command) (string, error) {
	driver, err := a.interactiveDriver()
	if err != nil {
		return "", err
	}

	ctx := commandContext(cmd)
	notEmpty := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return cms.ErrAPIKeyRequired
		}

		return nil
	}

	baseURL, err := driver.Input(ctx, prompt.InputConfig{
		Message: "CMS API URL",
		Default: a.v.GetString(keyAPI),
		Validator: func(s string) error {
			_, err := cmsclient.NormalizeBaseURL(s)

			return err
		},
	})
	if err != nil {
		return "", err
	}

	apiKey, err := driver.Password(ctx, prompt.InputConfig{Message: "API key", Validator: notEmpty})
	if err != nil {
		return "", err
	}

	var config cms.SiteConfig

	err = json.Unmarshal([]byte(siteConfigTemplate), &config)
	if err != nil {
		return "", fmt.Errorf("parsing config template: %w", err)
	}

	config.API = cms.APISettings{BaseURL: strings.TrimSpace(baseURL), APIKey: strings.TrimSpace(apiKey)}

	data, err := json.MarshalIndent(config, "", strings.Repeat(" ", constants.JSONIndentSize))
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	return string(data) + "\n", nil
}
