package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/form"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/prompt"
)

type submissionResult struct {
	Form    string      `json:"form"             yaml:"form"`
	Status  form.Status `json:"status"           yaml:"status"`
	Message string      `json:"message"          yaml:"message"`
	Errors  form.Errors `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// formRun is one session opened by a forms subcommand. The callbacks
// keep the underlying errors so they can be returned verbatim.
type formRun struct {
	session   *form.Session
	loadErr   error
	submitErr error
}

func (a *app) newFormsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "forms",
		Aliases: []string{"form"},
		Short:   "Read and submit forms",
		Long:    "Inspect form definitions and submit forms from the command line",
	}

	cmd.AddCommand(a.newFormsGetCommand())
	cmd.AddCommand(a.newFormsSubmitCommand())
	cmd.AddCommand(a.newFormsFillCommand())

	return cmd
}

func (a *app) newFormsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SLUG",
		Short: "Get form definition",
		Long:  "Display the fields and validation rules of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}

			def, err := client.Forms().Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			return a.renderOutput(cmd, def, func(table *tablewriter.Table) {
				table.Header("Name", "Type", "Label", "Required", "Rules")

				for _, field := range def.Fields {
					_ = table.Append(field.Name, string(field.Type), field.Label, strconv.FormatBool(field.Required()), describeRules(field))
				}
			})
		},
	}
}

func (a *app) newFormsSubmitCommand() *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "submit SLUG",
		Short: "Submit a form",
		Long: `Validate and submit a form. Values are given as --field name=value;
checkbox fields take true or false.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFormsSubmit(cmd, args[0], fields)
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field value as name=value (repeatable)")

	return cmd
}

func (a *app) newFormsFillCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fill SLUG",
		Short: "Fill in a form interactively",
		Long:  "Ask for every field of a form in the terminal, then submit it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, err := a.interactiveDriver()
			if err != nil {
				return err
			}

			run, err := a.openForm(cmd, args[0])
			if err != nil {
				return err
			}
			defer run.session.Close() //nolint:errcheck // Close never fails

			_, err = prompt.Fill(commandContext(cmd), run.session, driver)
			if err != nil {
				return run.cause(err)
			}

			return nil
		},
	}
}

func (a *app) openForm(cmd *cobra.Command, slug string) (*formRun, error) {
	client, err := a.newClient(cmd)
	if err != nil {
		return nil, err
	}

	run := &formRun{}

	session, err := form.Open(commandContext(cmd),
		form.WithSource(slug, client.Forms()),
		form.WithResetOnSuccess(false),
		form.WithLogger(a.logger(cmd)),
		form.OnLoadError(func(err error) { run.loadErr = err }),
		form.OnError(func(err error) { run.submitErr = err }),
	)
	if err != nil {
		return nil, err
	}

	run.session = session

	return run, nil
}

// cause prefers the transport error behind a failed load or submission.
func (r *formRun) cause(err error) error {
	switch {
	case r.loadErr != nil:
		return fmt.Errorf("loading form: %w", r.loadErr)
	case r.submitErr != nil:
		return fmt.Errorf("submitting form: %w", r.submitErr)
	default:
		return err
	}
}

func (a *app) runFormsSubmit(cmd *cobra.Command, slug string, pairs []string) error {
	run, err := a.openForm(cmd, slug)
	if err != nil {
		return err
	}
	defer run.session.Close() //nolint:errcheck // Close never fails

	ctx := commandContext(cmd)

	err = run.session.Wait(ctx)
	if err != nil {
		return err
	}

	state := run.session.Snapshot()
	if state.LoadFailed() {
		return run.cause(form.ErrNoDefinition)
	}

	values, err := parseFieldFlags(state.Definition, pairs)
	if err != nil {
		return err
	}

	for _, field := range state.Definition.Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}

		err = run.session.SetField(field.Name, value)
		if err != nil {
			return err
		}
	}

	submitErr := run.session.Submit()
	if submitErr == nil {
		err = run.session.Wait(ctx)
		if err != nil {
			return err
		}
	}

	state = run.session.Snapshot()
	result := submissionResult{Form: slug, Status: state.Status, Message: state.Message, Errors: state.Errors}

	err = a.renderOutput(cmd, result, func(table *tablewriter.Table) {
		fillSubmissionTable(table, state, result)
	})
	if err != nil {
		return err
	}

	switch {
	case submitErr != nil:
		return submitErr
	case state.Status != form.StatusSuccess:
		return run.cause(fmt.Errorf("%w: %s", prompt.ErrSubmitFailed, state.Message))
	default:
		return nil
	}
}

func fillSubmissionTable(table *tablewriter.Table, state form.State, result submissionResult) {
	if len(result.Errors) == 0 {
		table.Header("Status", "Message")
		_ = table.Append(string(result.Status), result.Message)

		return
	}

	table.Header("Field", "Error")

	for _, field := range state.Definition.Fields {
		if msg, ok := result.Errors[field.Name]; ok {
			_ = table.Append(field.Name, msg)
		}
	}
}

// parseFieldFlags turns name=value pairs into field values typed for def.
func parseFieldFlags(def *cms.FormDefinition, pairs []string) (cms.FieldValues, error) {
	values := cms.FieldValues{}

	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFieldFlag, pair)
		}

		field, known := def.Field(name)
		if !known {
			return nil, fmt.Errorf("%w: %s", form.ErrUnknownField, name)
		}

		if field.Type != cms.KindCheckbox {
			values[name] = cms.StringValue(raw)

			continue
		}

		checked, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects true or false", form.ErrValueKind, name)
		}

		values[name] = cms.BoolValue(checked)
	}

	return values, nil
}

func describeRules(field cms.FormField) string {
	var rules []string

	if v := field.Validation; v != nil {
		unit := " chars"
		if field.Type == cms.KindNumber {
			unit = ""
		}

		if v.Min != nil {
			rules = append(rules, "min "+strconv.FormatFloat(*v.Min, 'f', -1, 64)+unit)
		}

		if v.Max != nil {
			rules = append(rules, "max "+strconv.FormatFloat(*v.Max, 'f', -1, 64)+unit)
		}

		if v.Regex != "" {
			rules = append(rules, "pattern "+v.Regex)
		}
	}

	if len(field.Options) > 0 {
		options := make([]string, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, option.Value)
		}

		rules = append(rules, "one of "+strings.Join(options, "|"))
	}

	if len(rules) == 0 {
		return constants.None
	}

	return strings.Join(rules, "; ")
}
