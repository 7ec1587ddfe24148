package commands

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

func (a *app) newPagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pages",
		Aliases: []string{"page"},
		Short:   "Read pages",
		Long:    "Read pages and their components from the CMS",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get SLUG",
		Short: "Get page details",
		Long:  "Display a page and the components placed on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}

			page, err := client.Pages().Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			return a.renderOutput(cmd, page, func(table *tablewriter.Table) {
				fillPageTable(table, page)
			})
		},
	})

	return cmd
}

func fillPageTable(table *tablewriter.Table, page *cms.Page) {
	table.Header("Order", "Component", "ID", "Fields")

	for _, component := range page.Components {
		_ = table.Append(
			strconv.Itoa(component.Position()),
			component.ComponentSlug,
			strconv.Itoa(component.ID),
			strings.Join(component.Data.Keys(), ", "),
		)
	}
}
