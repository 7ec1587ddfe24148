package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cmsclient"
)

// SyncError reports a sync request the server rejected.
type SyncError struct {
	StatusCode int
	Body       string
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("Sync failed (%d): %s", e.StatusCode, e.Body)
}

func (a *app) newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync components and pages to the CMS",
		Long:  "Validate cms-config.json and push its components and pages to the CMS server",
		Args:  cobra.NoArgs,
		RunE:  a.runSync,
	}
}

func (a *app) runSync(cmd *cobra.Command, _ []string) error {
	site, err := readSiteConfig(a.v.GetString(keyConfig))
	if err != nil {
		return err
	}

	err = checkPlaceholders(site)
	if err != nil {
		return err
	}

	baseURL := strings.TrimSuffix(site.API.BaseURL, "/")

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Syncing to %s%s...\n", baseURL, constants.CLISyncPath)

	client, err := cmsclient.New(commandContext(cmd), &cms.Config{
		BaseURL:     baseURL,
		APIKey:      site.API.APIKey,
		AuthMode:    cms.AuthBearer,
		SyncPath:    constants.CLISyncPath,
		HTTPTimeout: constants.ShortHTTPTimeout,
		RetryMax:    -1,
		Debug:       a.v.GetBool(keyVerbose),
		Logger:      a.logger(cmd),
		UserAgent:   "cms-cli/" + a.info.Version,
	})
	if err != nil {
		return err
	}

	resp, err := client.Structure().Sync(commandContext(cmd), site.Structure())
	if err != nil {
		apiErr := &cms.APIError{}
		if errors.As(err, &apiErr) {
			return &SyncError{StatusCode: apiErr.StatusCode, Body: apiErr.Body}
		}

		return fmt.Errorf("sync failed: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Sync successful")

	if resp != nil && resp.Message != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	}

	return nil
}
