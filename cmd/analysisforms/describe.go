package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [form]...",
		Short: "Print the fields of one or more forms",
		Long:  "Print a table of each form's fields with their kind, label, group, default and rules. Without arguments every catalog form is described.",
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			ids := args
			if len(ids) == 0 {
				ids = orch.Catalog().IDs()
			}

			for i, id := range ids {
				form, err := orch.Form(cmd.Context(), id)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				describeForm(cmd, form)
			}
			return nil
		},
	}
}

func describeForm(cmd *cobra.Command, form model.Form) {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetTitle(fmt.Sprintf("%s  %s %s  (%s)", form.ID, strings.ToUpper(form.Method), form.Endpoint, form.Enctype()))
	tw.AppendHeader(table.Row{"Field", "Kind", "Label", "Group", "Default", "Rules"})
	for _, field := range form.Fields {
		def := ""
		if field.Default != nil {
			def = fmt.Sprint(*field.Default)
		}
		tw.AppendRow(table.Row{field.Name, field.Kind, field.Label, field.Group, def, describeRules(field.Rules)})
	}
	tw.Render()
}

func describeRules(rules []model.Rule) string {
	parts := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule.Params) == 0 {
			parts = append(parts, rule.Kind)
			continue
		}
		keys := make([]string, 0, len(rule.Params))
		for key := range rule.Params {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		params := make([]string, 0, len(keys))
		for _, key := range keys {
			params = append(params, key+"="+rule.Params[key])
		}
		parts = append(parts, rule.Kind+"("+strings.Join(params, ", ")+")")
	}
	return strings.Join(parts, ", ")
}
