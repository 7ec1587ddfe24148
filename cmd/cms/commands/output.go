package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
)

// renderOutput writes value in the selected format. fill populates the
// table used by the table format.
func (a *app) renderOutput(cmd *cobra.Command, value interface{}, fill func(table *tablewriter.Table)) error {
	out := cmd.OutOrStdout()

	switch a.output() {
	case constants.FormatJSON:
		return writeJSON(out, value)
	case constants.FormatYAML:
		return writeYAML(out, value)
	default:
		table := tablewriter.NewWriter(out)
		fill(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func writeJSON(w io.Writer, value interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, value interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format("2006-01-02 15:04")
}

func relativeTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return humanize.Time(*t)
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= constants.ExcerptLimit {
		return s
	}

	return string(runes[:constants.ExcerptLimit-3]) + "..."
}

func orNA(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}

func maskSecret(s string) string {
	if s == "" {
		return constants.None
	}

	return constants.MaskedSecret
}
