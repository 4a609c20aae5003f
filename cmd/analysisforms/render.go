package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-analysisforms/pkg/orchestrator"
	"github.com/goliatone/go-analysisforms/pkg/render"
)

type renderFlags struct {
	renderer string
	theme    string
	variant  string
	groups   []string
	output   string
}

func newRenderCmd(a *app) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render <form>",
		Short: "Render a form with the configured renderer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			output, err := orch.Generate(cmd.Context(), orchestrator.Request{
				FormID:   args[0],
				Renderer: flags.renderer,
				RenderOptions: render.RenderOptions{
					Subset: render.FieldSubset{Groups: flags.groups},
				},
				ThemeName:    flags.theme,
				ThemeVariant: flags.variant,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, flags.output, output)
		},
	}

	cmd.Flags().StringVar(&flags.renderer, "renderer", "", "renderer name (default from config render.renderer)")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "theme name (requires render.theme in config)")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "theme variant")
	cmd.Flags().StringSliceVar(&flags.groups, "group", nil, "render only the given field groups")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
