package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-analysisforms/pkg/forms"
	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/orchestrator"
	"github.com/goliatone/go-analysisforms/pkg/render"
)

type captureRenderer struct {
	form    model.Form
	options render.RenderOptions
	calls   int
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }
func (c *captureRenderer) Render(_ context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	c.form = form
	c.options = options
	c.calls++
	return []byte("captured:" + form.ID), nil
}

func newCapture(t *testing.T) (*captureRenderer, *render.Registry) {
	t.Helper()
	capture := &captureRenderer{}
	registry, err := render.NewRegistry(capture)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return capture, registry
}

func TestGenerate_DefaultsRenderVanillaHTML(t *testing.T) {
	orch := orchestrator.New()

	output, err := orch.Generate(context.Background(), orchestrator.Request{FormID: forms.MethodSelectionID})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(output)
	if got := strings.Count(html, `type="checkbox"`); got != len(forms.MethodNames) {
		t.Fatalf("expected %d checkboxes, got %d", len(forms.MethodNames), got)
	}
	if !strings.Contains(html, `action="/analysis/methods"`) {
		t.Fatalf("form action missing:\n%s", html)
	}
}

func TestGenerate_UsesInjectedRenderer(t *testing.T) {
	capture, registry := newCapture(t)
	orch := orchestrator.New(orchestrator.WithRegistry(registry), orchestrator.WithDefaultRenderer("capture"))

	opts := render.RenderOptions{
		Values: map[string]any{forms.MethodWGCNA: false},
		Hidden: map[string]string{"csrf_token": "abc"},
	}
	output, err := orch.Generate(context.Background(), orchestrator.Request{
		FormID:        forms.DataUploadID,
		RenderOptions: opts,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "captured:"+forms.DataUploadID {
		t.Fatalf("unexpected output: %s", output)
	}
	if diff := cmp.Diff(opts, capture.options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if capture.options.Theme != nil {
		t.Fatalf("theme should stay nil without a selector")
	}

	if _, err := orch.Generate(context.Background(), orchestrator.Request{FormID: forms.DataUploadID, Renderer: "pdf"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func newThemeProvider(t *testing.T, manifests ...*theme.Manifest) *theme.MemoryRegistry {
	t.Helper()
	provider := theme.NewRegistry()
	for _, manifest := range manifests {
		if err := provider.Register(manifest); err != nil {
			t.Fatalf("register manifest: %v", err)
		}
	}
	return provider
}

func TestGenerate_ThemeProvider(t *testing.T) {
	capture, registry := newCapture(t)
	provider := newThemeProvider(t, &theme.Manifest{
		Name:    "lab",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#064"},
		Templates: map[string]string{
			"forms.file": "themes/lab/file.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "https://cdn.example.com/lab",
			Files:  map[string]string{"stylesheet": "lab.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#0f0"}},
		},
	})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
		orchestrator.WithThemeProvider(provider, "lab", ""),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		FormID:       forms.MethodSelectionID,
		ThemeVariant: "dark",
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	cfg := capture.options.Theme
	if cfg == nil || cfg.Theme != "lab" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme config: %+v", cfg)
	}
	if cfg.CSSVars["--brand"] != "#0f0" {
		t.Fatalf("variant token not applied: %v", cfg.CSSVars)
	}
	if cfg.Partials["forms.file"] != "themes/lab/file.tmpl" {
		t.Fatalf("manifest template not applied: %v", cfg.Partials)
	}
	if cfg.Partials["forms.checkbox"] != render.DefaultThemePartials()["forms.checkbox"] {
		t.Fatalf("fallback partials missing: %v", cfg.Partials)
	}
	if got := cfg.AssetURL("stylesheet"); got != "https://cdn.example.com/lab/lab.css" {
		t.Fatalf("asset url mismatch: %s", got)
	}

	preset := &theme.RendererConfig{Theme: "host"}
	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		FormID:        forms.MethodSelectionID,
		RenderOptions: render.RenderOptions{Theme: preset},
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if capture.options.Theme != preset {
		t.Fatalf("explicit theme should win over the selector")
	}

	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		FormID:       forms.MethodSelectionID,
		ThemeVariant: "sepia",
	}); err == nil || !strings.Contains(err.Error(), "sepia") {
		t.Fatalf("expected unknown variant error, got %v", err)
	}
}

func TestGenerate_ThemeSelectorErrors(t *testing.T) {
	_, registry := newCapture(t)
	provider := newThemeProvider(t, &theme.Manifest{Name: "lab", Version: "1.0.0"})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
		orchestrator.WithThemeSelector(theme.Selector{Registry: provider}),
	)
	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		FormID:    forms.MethodSelectionID,
		ThemeName: "missing",
	}); !errors.Is(err, theme.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}

	// A nil provider leaves theming off.
	plain := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
		orchestrator.WithThemeProvider(nil, "lab", ""),
	)
	if _, err := plain.Generate(context.Background(), orchestrator.Request{FormID: forms.MethodSelectionID}); err != nil {
		t.Fatalf("generate: %v", err)
	}
}

func TestForm_TransformersAndDecorators(t *testing.T) {
	var order []string
	orch := orchestrator.New(
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(ctx context.Context, form *model.Form) error {
			order = append(order, "transform")
			return orchestrator.EndpointPrefix("/lab").Transform(ctx, form)
		})),
		orchestrator.WithUIDecorators(model.DecoratorFunc(func(form *model.Form) error {
			order = append(order, "decorate")
			form.Title = "Pick methods"
			return nil
		})),
	)

	form, err := orch.Form(context.Background(), forms.MethodSelectionID)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if diff := cmp.Diff([]string{"transform", "decorate"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if form.Endpoint != "/lab/analysis/methods" {
		t.Fatalf("endpoint not prefixed: %s", form.Endpoint)
	}
	if form.Title != "Pick methods" {
		t.Fatalf("decorator not applied: %s", form.Title)
	}

	pristine, _ := orch.Catalog().Get(forms.MethodSelectionID)
	if pristine.Endpoint != "/analysis/methods" {
		t.Fatalf("catalog definition mutated: %s", pristine.Endpoint)
	}
}

func TestForm_UISchemaOverlay(t *testing.T) {
	overlays := fstest.MapFS{
		"upload.yaml": {Data: []byte("forms:\n  data-upload:\n    fields:\n      datafile:\n        label: Workbook\n        extensions: [xlsx, csv]\n")},
	}
	orch := orchestrator.New(orchestrator.WithUISchemaFS(overlays))

	form, err := orch.Form(context.Background(), forms.DataUploadID)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	field, _ := form.Field(forms.DataFileField)
	if field.Label != "Workbook" {
		t.Fatalf("overlay label not applied: %q", field.Label)
	}
	if diff := cmp.Diff([]string{"xlsx", "csv"}, field.AllowedExtensions()); diff != "" {
		t.Fatalf("allow-list mismatch (-want +got):\n%s", diff)
	}

	broken := orchestrator.New(orchestrator.WithUISchemaFS(fstest.MapFS{
		"bad.yaml": {Data: []byte("forms:\n  data-upload:\n    subtitle: nope\n")},
	}))
	if _, err := broken.Generate(context.Background(), orchestrator.Request{FormID: forms.DataUploadID}); err == nil {
		t.Fatalf("expected overlay load error to surface")
	}
}

func TestGenerate_Errors(t *testing.T) {
	orch := orchestrator.New()
	ctx := context.Background()

	if _, err := orch.Generate(ctx, orchestrator.Request{FormID: "unknown"}); !errors.Is(err, forms.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected error for empty form id")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := orch.Generate(cancelled, orchestrator.Request{FormID: forms.MethodSelectionID}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	failing := orchestrator.New(orchestrator.WithTransformer(orchestrator.TransformerFunc(func(context.Context, *model.Form) error {
		return errors.New("boom")
	})))
	if _, err := failing.Form(ctx, forms.MethodSelectionID); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected transformer error, got %v", err)
	}
}
