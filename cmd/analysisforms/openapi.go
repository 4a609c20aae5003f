package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/openapi"
)

func newOpenAPICmd(a *app) *cobra.Command {
	var (
		format string
		output string
		check  string
		info   openapi.Info
	)
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Export the submission contract as an OpenAPI document",
		Long:  "Export every catalog form as an OpenAPI operation. With --check an existing document is validated and summarised instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if check != "" {
				return checkDocument(cmd, check)
			}

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			var forms []model.Form
			for _, id := range orch.Catalog().IDs() {
				form, err := orch.Form(cmd.Context(), id)
				if err != nil {
					return err
				}
				forms = append(forms, form)
			}

			doc, err := openapi.Export(cmd.Context(), info, forms...)
			if err != nil {
				return err
			}
			data, err := openapi.Marshal(doc, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "document format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&check, "check", "", "validate an existing document instead of exporting")
	cmd.Flags().StringVar(&info.Title, "title", "", "document title")
	cmd.Flags().StringVar(&info.Version, "api-version", "", "document version")
	return cmd
}

func checkDocument(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	ops, err := openapi.Parse(cmd.Context(), data)
	if err != nil {
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetTitle(path)
	tw.AppendHeader(table.Row{"Operation", "Method", "Path", "Content type", "Fields", "Upload extensions"})
	for _, op := range ops {
		var names, extensions []string
		for _, field := range op.Fields {
			names = append(names, field.Name)
			extensions = append(extensions, field.Extensions...)
		}
		tw.AppendRow(table.Row{op.ID, op.Method, op.Path, op.ContentType, strings.Join(names, ", "), strings.Join(extensions, ", ")})
	}
	tw.Render()
	return nil
}
