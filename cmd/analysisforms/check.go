package main

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-analysisforms/pkg/forms"
	"github.com/goliatone/go-analysisforms/pkg/validation"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <filename>...",
		Short: "Check filenames against the upload allow-list",
		Long:  "Run the data upload rules against each filename without reading the files. The command fails when any name is rejected.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			form, err := orch.Form(cmd.Context(), forms.DataUploadID)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"File", "Result", "Message"})
			rejected := 0
			for _, name := range args {
				result := validation.Validate(form, validation.Input{
					Files: map[string][]*multipart.FileHeader{
						forms.DataFileField: {{Filename: filepath.Base(name)}},
					},
				})
				if result.Valid {
					tw.AppendRow(table.Row{name, "ok", ""})
					continue
				}
				rejected++
				tw.AppendRow(table.Row{name, "rejected", result.Errors.Error()})
			}
			tw.Render()

			a.logger.Debug("checked filenames", "total", len(args), "rejected", rejected)
			if rejected > 0 {
				return fmt.Errorf("%d of %d files rejected", rejected, len(args))
			}
			return nil
		},
	}
}
