package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/render"
	rendertemplate "github.com/goliatone/go-analysisforms/pkg/render/template"
	"github.com/goliatone/go-analysisforms/pkg/render/template/gotemplate"
	"github.com/goliatone/go-analysisforms/pkg/widgets"
)

// Name is the registry key of the vanilla renderer.
const Name = "vanilla"

const formTemplate = "templates/form.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	stylesheet       string
	inlineStyles     bool
	classes          ChromeClasses
	widgets          *widgets.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer replaces the policy applied to form and field descriptions.
// The default is bluemonday's UGC policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithStylesheet links an external stylesheet ahead of the form.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithDefaultStyles inlines the bundled stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithWidgetRegistry replaces the registry that picks a partial for each
// field. Fields may also pin one through Metadata["widget"].
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithChromeClasses appends host classes to the wrapper elements.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// Renderer emits server-rendered HTML that submits to the form endpoint
// without any client script.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	policy       *bluemonday.Policy
	stylesheet   string
	inlineStyles string
	classes      map[string]string
	widgets      *widgets.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.UGCPolicy()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	out := &Renderer{
		templates:  renderer,
		policy:     cfg.policy,
		stylesheet: cfg.stylesheet,
		classes:    cfg.classes.resolve(),
		widgets:    cfg.widgets,
	}
	if cfg.inlineStyles {
		out.inlineStyles = defaultStylesheet()
	}
	return out, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the form as HTML. Checkbox state comes from opts.Values when
// present and from the field defaults otherwise.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form = render.ApplySubset(form, opts.Subset)
	partials := render.DefaultThemePartials()
	if opts.Theme != nil {
		for key, value := range opts.Theme.Partials {
			if strings.TrimSpace(value) != "" {
				partials[key] = value
			}
		}
	}

	var (
		sections []map[string]any
		actions  []string
		current  map[string]any
	)
	for _, field := range form.Fields {
		markup, err := r.renderField(field, partials, opts)
		if err != nil {
			return nil, err
		}
		if field.Kind == model.FieldKindAction {
			actions = append(actions, markup)
			continue
		}
		if current == nil || current["name"] != field.Group {
			current = map[string]any{
				"name":   field.Group,
				"legend": r.legend(form, field.Group),
				"fields": []string{},
			}
			sections = append(sections, current)
		}
		current["fields"] = append(current["fields"].([]string), markup)
	}

	data := map[string]any{
		"form": map[string]any{
			"id":          form.ID,
			"title":       form.Title,
			"description": r.sanitize(form.Description),
			"action":      form.Endpoint,
			"method":      strings.ToLower(form.Method),
			"enctype":     form.Enctype(),
		},
		"classes":       r.classes,
		"sections":      sections,
		"actions":       actions,
		"hidden":        hiddenInputs(opts.Hidden),
		"form_errors":   opts.FormErrors,
		"stylesheet":    r.stylesheet,
		"inline_styles": r.inlineStyles,
	}
	if cfg := opts.Theme; cfg != nil {
		data["theme"] = cfg.Theme
		data["theme_variant"] = cfg.Variant
		data["style"] = render.CSSVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil && r.stylesheet == "" {
			data["stylesheet"] = cfg.AssetURL("stylesheet")
		}
	}

	result, err := r.templates.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(field model.Field, partials map[string]string, opts render.RenderOptions) (string, error) {
	widget, ok := r.widgets.Resolve(field)
	if !ok {
		return "", fmt.Errorf("vanilla renderer: field %q: unsupported kind %q", field.Name, field.Kind)
	}
	key := widgets.PartialKey(widget)
	partial, ok := partials[key]
	if !ok {
		return "", fmt.Errorf("vanilla renderer: field %q: no template for widget %q", field.Name, widget)
	}

	errs := opts.Errors[field.Name]
	classes := string(ClassField) + " " + string(ClassField) + "--" + string(field.Kind)
	if len(errs) > 0 {
		classes += " " + string(ClassField) + "--invalid"
	}

	data := map[string]any{
		"id":          controlID(field),
		"name":        field.Name,
		"label":       field.Label,
		"description": r.sanitize(field.Description),
		"classes":     classes,
		"errors":      errs,
		"required":    field.Required(),
	}
	switch field.Kind {
	case model.FieldKindBoolean:
		data["checked"] = checkedState(field, opts.Values)
	case model.FieldKindFile:
		data["extensions"] = field.AllowedExtensions()
	}

	markup, err := r.templates.RenderTemplate(partial, data)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
	}
	return markup, nil
}

func (r *Renderer) legend(form model.Form, group string) string {
	if group == "" {
		return ""
	}
	if text := strings.TrimSpace(form.Metadata["group."+group]); text != "" {
		return text
	}
	return model.DefaultLabeler(group)
}

func (r *Renderer) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return r.policy.Sanitize(value)
}

func hiddenInputs(values map[string]string) []map[string]string {
	fields := render.SortedHiddenFields(values)
	out := make([]map[string]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}
