// Package analysisforms renders and validates the forms of a data analysis
// workflow: the method selection checkboxes and the spreadsheet upload. The
// root package re-exports the common entry points; the pkg/ tree holds the
// catalog, validation, renderers and exporters.
package analysisforms

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-analysisforms/pkg/forms"
	"github.com/goliatone/go-analysisforms/pkg/orchestrator"
	"github.com/goliatone/go-analysisforms/pkg/render"
	"github.com/goliatone/go-analysisforms/pkg/renderers/vanilla"
)

// Form identifiers in the default catalog.
const (
	MethodSelectionID = forms.MethodSelectionID
	DataUploadID      = forms.DataUploadID
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// FieldSubset aliases render.FieldSubset for callers rendering one group.
type FieldSubset = render.FieldSubset

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the catalog form formID with the default vanilla
// renderer. It is the simplest entry point for callers that just want HTML.
func GenerateHTML(ctx context.Context, formID string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		FormID:        formID,
		Renderer:      vanilla.Name,
		RenderOptions: opts,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider selects themes from provider, using defaultTheme and
// defaultVariant when a request names neither.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}

// WithUISchemaFS loads overlay documents from fsys.
func WithUISchemaFS(fsys fs.FS) orchestrator.Option {
	return orchestrator.WithUISchemaFS(fsys)
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(analysisforms.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
