package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-analysisforms/pkg/forms"
	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/render"
	"github.com/goliatone/go-analysisforms/pkg/renderers/vanilla"
	"github.com/goliatone/go-analysisforms/pkg/uischema"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog injects the form catalog.
func WithCatalog(catalog *forms.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that runs before UI decorators.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run against every form before
// rendering.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS loads overlay documents from fsys and decorates forms with
// them.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
	}
}

// WithThemeSelector resolves request themes through selector.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider builds a go-theme selector over provider. Requests that
// omit a theme or variant use the given defaults.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
	}
}

// WithThemeFallbacks overrides the partials used when a theme does not
// define one.
func WithThemeFallbacks(partials map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = partials
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator turns a form ID into rendered output. It applies defaults
// (built-in catalog, vanilla renderer) while remaining open to injection.
type Orchestrator struct {
	catalog         *forms.Catalog
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	decorators      []model.Decorator
	uiSchemaFS      fs.FS
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single render.
type Request struct {
	// FormID selects the catalog entry.
	FormID string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries prefilled values, errors and hidden inputs.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant select a theme when a selector is
	// configured. Empty values use the selector defaults.
	ThemeName    string
	ThemeVariant string
}

// Form returns the catalog entry for id after transformers and decorators
// ran. Handlers validate against this copy so overlays that change the
// allow-list are honoured on submit as well as on render.
func (o *Orchestrator) Form(ctx context.Context, id string) (model.Form, error) {
	if err := o.initialiseErr; err != nil {
		return model.Form{}, err
	}
	if strings.TrimSpace(id) == "" {
		return model.Form{}, errors.New("orchestrator: form id is required")
	}

	form, err := o.catalog.Get(id)
	if err != nil {
		return model.Form{}, fmt.Errorf("orchestrator: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.Form{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return model.Form{}, fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return form, nil
}

// Generate resolves the form, theme and renderer for req and returns the
// rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form, err := o.Form(ctx, req.FormID)
	if err != nil {
		return nil, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil && o.themeSelector != nil {
		selection, err := o.selectTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = render.ThemeConfig(selection, o.themeFallbacks)
	}

	o.logger.Debug("rendering form",
		slog.String("form", form.ID),
		slog.String("renderer", renderer.Name()),
		slog.Int("fields", len(form.Fields)),
	)

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// selectTheme rejects variants the selected manifest does not declare.
func (o *Orchestrator) selectTheme(name, variant string) (*theme.Selection, error) {
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection.Variant != "" && selection.Manifest != nil {
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			return nil, fmt.Errorf("orchestrator: theme %q has no variant %q", selection.Theme, selection.Variant)
		}
	}
	return selection, nil
}

// Renderer resolves name, or the default renderer when name is empty.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Resolve(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

// Catalog exposes the catalog backing the orchestrator.
func (o *Orchestrator) Catalog() *forms.Catalog {
	return o.catalog
}

func (o *Orchestrator) applyDefaults() {
	if o.catalog == nil {
		catalog, err := forms.NewCatalog()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default catalog: %w", err)
			return
		}
		o.catalog = catalog
	}
	if o.registry == nil {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry, _ = render.NewRegistry(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = render.DefaultThemePartials()
	}

	if o.uiSchemaFS != nil {
		store, err := uischema.LoadFS(o.uiSchemaFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
			return
		}
		if !store.Empty() {
			o.decorators = append(o.decorators, uischema.NewDecorator(store))
		}
	}
}

func joinEndpoint(prefix, endpoint string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return endpoint
	}
	return path.Join("/", prefix, endpoint)
}
