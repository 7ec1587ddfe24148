package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// AgendaListOptions holds the options for listing agenda events.
type AgendaListOptions struct {
	Status   string
	Upcoming bool
	Category string
	Limit    int
}

func (a *app) newAgendaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agenda",
		Aliases: []string{"events"},
		Short:   "Read agenda events",
		Long:    "List and inspect agenda events published in the CMS",
	}

	cmd.AddCommand(a.newAgendaListCommand())
	cmd.AddCommand(a.newAgendaGetCommand())

	return cmd
}

func (a *app) newAgendaListCommand() *cobra.Command {
	var opts AgendaListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agenda events",
		Long:  "List agenda events, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}

			params := &cms.AgendaEventsParams{
				Status:   opts.Status,
				Upcoming: opts.Upcoming,
				Category: opts.Category,
			}
			if cmd.Flags().Changed("limit") {
				params.Limit = &opts.Limit
			}

			events, err := client.Agenda().List(commandContext(cmd), params)
			if err != nil {
				return err
			}

			return a.renderOutput(cmd, events, func(table *tablewriter.Table) {
				table.Header("Slug", "Title", "Start", "When", "Location", "Status")

				for _, event := range events.Data {
					_ = table.Append(
						event.Slug,
						event.Title,
						formatTime(&event.StartDate),
						relativeTime(&event.StartDate),
						orNA(event.Location),
						orNA(event.Status),
					)
				}
			})
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status")
	cmd.Flags().BoolVar(&opts.Upcoming, "upcoming", false, "only upcoming events")
	cmd.Flags().StringVar(&opts.Category, "category", "", "filter by category")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of events")

	return cmd
}

func (a *app) newAgendaGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SLUG",
		Short: "Get agenda event details",
		Long:  "Display detailed information about an agenda event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}

			event, err := client.Agenda().Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			return a.renderOutput(cmd, event, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", strconv.Itoa(event.ID))
				_ = table.Append("Slug", event.Slug)
				_ = table.Append("Title", event.Title)
				_ = table.Append("Start", formatTime(&event.StartDate)+" ("+relativeTime(&event.StartDate)+")")
				_ = table.Append("End", formatTime(event.EndDate))
				_ = table.Append("All day", strconv.FormatBool(event.AllDay))
				_ = table.Append("Location", orNA(event.Location))
				_ = table.Append("Category", orNA(event.Category))
				_ = table.Append("Status", orNA(event.Status))
				_ = table.Append("Description", orNA(excerpt(event.Description)))
			})
		},
	}
}
