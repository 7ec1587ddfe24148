package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/render"
)

func (a *app) newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render content as HTML",
		Long:  "Render pages and forms from the CMS as HTML on stdout",
	}

	cmd.AddCommand(a.newRenderPageCommand())
	cmd.AddCommand(a.newRenderFormCommand())

	return cmd
}

func (a *app) newRenderPageCommand() *cobra.Command {
	var (
		class        string
		blockClasses map[string]string
		fallbackOnly bool
	)

	cmd := &cobra.Command{
		Use:   "page SLUG",
		Short: "Render a page",
		Long: `Render the components of a page in order. The hero_section and text_area
blocks of the init template have built-in renderers; other blocks use the
generic fallback.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}

			page, err := client.Pages().Get(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			registry := render.NewRegistry()
			if !fallbackOnly {
				registry = templateBlocks()
			}

			return render.RenderPage(cmd.OutOrStdout(), page, render.PageOptions{
				Registry:        registry,
				BlockClassNames: blockClasses,
				Class:           class,
				Logger:          a.logger(cmd),
			})
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "class of the wrapping element")
	cmd.Flags().StringToStringVar(&blockClasses, "block-class", nil, "class per component slug (slug=class)")
	cmd.Flags().BoolVar(&fallbackOnly, "fallback-only", false, "render every block with the generic fallback")

	return cmd
}

func (a *app) newRenderFormCommand() *cobra.Command {
	var opts render.FormOptions

	cmd := &cobra.Command{
		Use:   "form SLUG",
		Short: "Render a form",
		Long:  "Load a form definition and render its empty form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.openForm(cmd, args[0])
			if err != nil {
				return err
			}
			defer run.session.Close() //nolint:errcheck // Close never fails

			err = run.session.Wait(commandContext(cmd))
			if err != nil {
				return err
			}

			state := run.session.Snapshot()

			err = render.RenderForm(cmd.OutOrStdout(), state, opts)
			if err != nil {
				return err
			}

			if state.LoadFailed() {
				return run.cause(nil)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Action, "action", "", "form action attribute")
	cmd.Flags().StringVar(&opts.Method, "method", "", "form method attribute (default post)")
	cmd.Flags().StringVar(&opts.Classes.Form, "class", "", "class of the form element")

	return cmd
}

// templateBlocks renders the components declared by cms init.
func templateBlocks() *render.Registry {
	registry := render.NewRegistry()
	_ = registry.RegisterFunc("hero_section", renderHeroSection)
	_ = registry.RegisterFunc("text_area", renderTextArea)

	return registry
}

func renderHeroSection(w io.Writer, block render.Block) error {
	title := block.Content.String("title")

	err := render.Media(w, block.Content.Media("image"), title, "")
	if err != nil {
		return err
	}

	err = render.Text(w, title, "h1", block.Class)
	if err != nil {
		return err
	}

	return render.Text(w, block.Content.String("subtitle"), "p", "")
}

func renderTextArea(w io.Writer, block render.Block) error {
	return render.RichText(w, block.Content.String("content"), block.Class)
}
