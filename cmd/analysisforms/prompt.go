package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-analysisforms/pkg/orchestrator"
	"github.com/goliatone/go-analysisforms/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		format  string
		grouped bool
		output  string
	)
	cmd := &cobra.Command{
		Use:   "prompt <form>",
		Short: "Fill in a form interactively in the terminal",
		Long:  "Prompt for every field of a form, validate the answers with the same rules as the HTTP path and print the resulting submission.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []tui.Option{tui.WithOutputFormat(tui.OutputFormat(format))}
			if grouped {
				opts = append(opts, tui.WithGroupedSelection())
			}
			orch, err := a.orchestrator(opts...)
			if err != nil {
				return err
			}

			out, err := orch.Generate(cmd.Context(), orchestrator.Request{FormID: args[0], Renderer: tui.Name})
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
				return nil
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format: json, form (forms without file fields) or pretty")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "select each checkbox group with one multi-select")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
