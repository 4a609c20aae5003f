package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/render"
	"github.com/goliatone/go-analysisforms/pkg/validation"
)

// Name is the registry key of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal sessions. Instead of
// markup it prompts for every field and returns the collected submission.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	grouped      bool
	checkFile    FileChecker
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		checkFile:    statFile,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for each field, validates the answers with the same rules
// the HTTP path uses and serializes the submission.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	form = render.ApplySubset(form, opts.Subset)
	if r.outputFormat == OutputFormatFormURLEncoded && hasFileField(form) {
		return nil, fmt.Errorf("%w: %s has file fields; use json or pretty", ErrFormatUnsupported, form.ID)
	}
	for _, message := range opts.FormErrors {
		r.info(ctx, r.theme.ErrorPrefix+message)
	}

	sub := &submission{bools: make(map[string]bool), files: make(map[string]string)}
	if err := r.collect(ctx, form, opts, sub); err != nil {
		return nil, err
	}

	result := validation.Validate(form, sub.input(form))
	if !result.Valid {
		return nil, fmt.Errorf("tui: submission invalid: %w", result.Errors)
	}
	return r.serialize(form, sub)
}

type submission struct {
	bools  map[string]bool
	files  map[string]string
	action string
}

// input rebuilds the browser post for the collected answers so validation
// sees exactly what an HTTP client would send.
func (s *submission) input(form model.Form) validation.Input {
	in := validation.Input{
		Values: url.Values{},
		Files:  make(map[string][]*multipart.FileHeader),
	}
	for name, checked := range s.bools {
		if checked {
			in.Values.Set(name, "y")
		}
	}
	for name, path := range s.files {
		in.Files[name] = []*multipart.FileHeader{{Filename: filepath.Base(path)}}
	}
	if action, ok := form.Action(); ok {
		in.Values.Set(action.Name, action.Label)
	}
	return in
}

func (r *Renderer) collect(ctx context.Context, form model.Form, opts render.RenderOptions, sub *submission) error {
	fields := form.Fields
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		for _, message := range opts.Errors[field.Name] {
			r.info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.Label, message))
		}

		switch field.Kind {
		case model.FieldKindBoolean:
			if r.grouped {
				end := i + 1
				for end < len(fields) && fields[end].Kind == model.FieldKindBoolean && fields[end].Group == field.Group {
					end++
				}
				if err := r.promptGroup(ctx, form, fields[i:end], opts.Values, sub); err != nil {
					return err
				}
				i = end - 1
				continue
			}
			if err := r.promptBoolean(ctx, field, opts.Values, sub); err != nil {
				return err
			}
		case model.FieldKindFile:
			if err := r.promptFile(ctx, field, opts.Values, sub); err != nil {
				return err
			}
		case model.FieldKindAction:
			sub.action = field.Label
		default:
			return fmt.Errorf("tui: field %q: unsupported kind %q", field.Name, field.Kind)
		}
	}
	return nil
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, values map[string]any, sub *submission) error {
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: field.Label,
		Default: defaultBool(field, values),
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	sub.bools[field.Name] = resp
	return nil
}

func (r *Renderer) promptGroup(ctx context.Context, form model.Form, fields []model.Field, values map[string]any, sub *submission) error {
	cfg := SelectConfig{
		Message:  groupTitle(form, fields[0].Group),
		Options:  make([]string, len(fields)),
		PageSize: len(fields),
	}
	for i, field := range fields {
		cfg.Options[i] = field.Label
		if defaultBool(field, values) {
			cfg.Defaults = append(cfg.Defaults, i)
		}
	}

	picked, err := r.driver.MultiSelect(ctx, cfg)
	if err != nil {
		return err
	}
	for _, field := range fields {
		sub.bools[field.Name] = false
	}
	for _, idx := range picked {
		if idx >= 0 && idx < len(fields) {
			sub.bools[fields[idx].Name] = true
		}
	}
	return nil
}

func (r *Renderer) promptFile(ctx context.Context, field model.Field, values map[string]any, sub *submission) error {
	allowed := field.AllowedExtensions()
	def, _ := values[field.Name].(string)

	resp, err := r.driver.Input(ctx, InputConfig{
		Message: field.Label,
		Default: def,
		Help:    fileHelp(field, allowed),
		Validator: func(value string) error {
			return r.validatePath(field, allowed, value)
		},
	})
	if err != nil {
		return err
	}
	path := strings.TrimSpace(resp)
	if err := r.validatePath(field, allowed, path); err != nil {
		return err
	}
	sub.files[field.Name] = path
	return nil
}

func (r *Renderer) validatePath(field model.Field, allowed []string, value string) error {
	path := strings.TrimSpace(value)
	if path == "" {
		if field.Required() {
			return validation.ErrMissingFile
		}
		return nil
	}
	if len(allowed) > 0 && !validation.FilenameAllowed(filepath.Base(path), allowed) {
		return fmt.Errorf("%w: %s", validation.ErrUnsupportedFileType, filepath.Base(path))
	}
	if _, err := r.checkFile(path); err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, msg)
}

func (r *Renderer) serialize(form model.Form, sub *submission) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, field := range form.Fields {
			switch field.Kind {
			case model.FieldKindBoolean:
				if sub.bools[field.Name] {
					values.Set(field.Name, "y")
				}
			case model.FieldKindAction:
				values.Set(field.Name, sub.action)
			}
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyTable(form, sub)), nil
	default:
		payload := make(map[string]any, len(sub.bools)+len(sub.files))
		for name, value := range sub.bools {
			payload[name] = value
		}
		for name, value := range sub.files {
			payload[name] = value
		}
		return json.MarshalIndent(payload, "", "  ")
	}
}

func hasFileField(form model.Form) bool {
	for _, field := range form.Fields {
		if field.Kind == model.FieldKindFile {
			return true
		}
	}
	return false
}

func prettyTable(form model.Form, sub *submission) string {
	t := table.NewWriter()
	t.SetTitle(form.Title)
	t.AppendHeader(table.Row{"Field", "Label", "Value"})
	for _, field := range form.Fields {
		switch field.Kind {
		case model.FieldKindBoolean:
			t.AppendRow(table.Row{field.Name, field.Label, yesNo(sub.bools[field.Name])})
		case model.FieldKindFile:
			t.AppendRow(table.Row{field.Name, field.Label, sub.files[field.Name]})
		}
	}
	return t.Render() + "\n"
}

func defaultBool(field model.Field, values map[string]any) bool {
	switch v := values[field.Name].(type) {
	case bool:
		return v
	case string:
		return !validation.IsFalseValue(v)
	default:
		return field.DefaultValue()
	}
}

func groupTitle(form model.Form, group string) string {
	if group == "" {
		return form.Title
	}
	if title := strings.TrimSpace(form.Metadata["group."+group]); title != "" {
		return title
	}
	return model.DefaultLabeler(group)
}

func fileHelp(field model.Field, allowed []string) string {
	parts := make([]string, 0, 2)
	if field.Description != "" {
		parts = append(parts, field.Description)
	}
	if len(allowed) > 0 {
		exts := append([]string(nil), allowed...)
		sort.Strings(exts)
		parts = append(parts, "Allowed: "+strings.Join(exts, ", "))
	}
	return strings.Join(parts, " ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
