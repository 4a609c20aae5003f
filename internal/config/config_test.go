package config_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-analysisforms/internal/config"
	"github.com/goliatone/go-analysisforms/pkg/forms"
	"github.com/goliatone/go-analysisforms/pkg/orchestrator"
)

func TestFromFile_Defaults(t *testing.T) {
	cfg, err := config.FromFile("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if diff := cmp.Diff([]string{"xlsx"}, cfg.Upload.AllowedExtensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Render.Renderer != "vanilla" || cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout: %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Manifest() != nil {
		t.Fatalf("expected no theme manifest by default")
	}
}

func TestFromFile_YAML(t *testing.T) {
	cfg, err := config.FromFile("testdata/analysisforms.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"xlsx", "csv"}, cfg.Upload.AllowedExtensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Upload.MaxMemory != 1<<20 || cfg.Server.ShutdownTimeout != 2*time.Second {
		t.Fatalf("unexpected values: %+v", cfg)
	}

	manifest := cfg.Manifest()
	if manifest == nil || manifest.Name != "lab" {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}
	if manifest.Tokens["brand"] != "#064" || manifest.Assets.Prefix != "/static" || manifest.Assets.Files["stylesheet"] != "lab.css" {
		t.Fatalf("manifest not populated: %+v", manifest)
	}
	if _, ok := manifest.Variants["dark"]; !ok {
		t.Fatalf("variant missing: %+v", manifest.Variants)
	}
}

func TestFromFile_Environment(t *testing.T) {
	t.Setenv("ANALYSISFORMS_UPLOAD_ALLOWED_EXTENSIONS", "xlsx,xls")
	t.Setenv("ANALYSISFORMS_SERVER_ADDR", ":7000")

	cfg, err := config.FromFile("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"xlsx", "xls"}, cfg.Upload.AllowedExtensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("addr override ignored: %s", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	if _, err := config.FromFile("testdata/bad_renderer.yaml"); err == nil || !strings.Contains(err.Error(), "pdf") {
		t.Fatalf("expected unsupported renderer error, got %v", err)
	}
	if _, err := config.FromFile("testdata/missing.yaml"); err == nil {
		t.Fatalf("expected missing file error")
	}

	cases := map[string]func(*config.Config){
		"extensions": func(c *config.Config) { c.Upload.AllowedExtensions = nil },
		"max memory": func(c *config.Config) { c.Upload.MaxMemory = 0 },
		"theme name": func(c *config.Config) { c.Render.Theme.Variant = "dark" },
		"uischema":   func(c *config.Config) { c.UISchema.Dir = "testdata/nope" },
		"addr":       func(c *config.Config) { c.Server.Addr = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.FromFile("")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestOrchestratorOptions(t *testing.T) {
	cfg, err := config.FromFile("testdata/analysisforms.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opts, err := cfg.OrchestratorOptions(nil)
	if err != nil {
		t.Fatalf("options: %v", err)
	}

	orch := orchestrator.New(opts...)
	form, err := orch.Form(context.Background(), forms.DataUploadID)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	field, _ := form.Field(forms.DataFileField)
	if field.Label != "Workbook" {
		t.Fatalf("overlay not applied: %q", field.Label)
	}
	if diff := cmp.Diff([]string{"xlsx", "csv"}, field.AllowedExtensions()); diff != "" {
		t.Fatalf("allow-list mismatch (-want +got):\n%s", diff)
	}

	html, err := orch.Generate(context.Background(), orchestrator.Request{FormID: forms.DataUploadID})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, fragment := range []string{`data-theme="lab"`, `data-theme-variant="dark"`, `href="/static/lab.css"`, `accept=".xlsx,.csv"`} {
		if !strings.Contains(string(html), fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, html)
		}
	}
}

func TestOrchestratorOptions_Theme(t *testing.T) {
	cases := map[string]struct {
		stylesheet string
		href       string
	}{
		"cdn":      {stylesheet: "https://cdn.example.com/acme/theme.css", href: `href="https://cdn.example.com/acme/theme.css"`},
		"relative": {stylesheet: "theme.css", href: `href="theme.css"`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.FromFile("")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			cfg.Render.Theme = config.Theme{Name: "acme", Stylesheet: tc.stylesheet}
			opts, err := cfg.OrchestratorOptions(nil)
			if err != nil {
				t.Fatalf("options: %v", err)
			}
			html, err := orchestrator.New(opts...).Generate(context.Background(), orchestrator.Request{FormID: forms.MethodSelectionID})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if !strings.Contains(string(html), tc.href) {
				t.Fatalf("output missing %q:\n%s", tc.href, html)
			}
		})
	}

	cfg, err := config.FromFile("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Render.Theme = config.Theme{Name: "acme", Tokens: map[string]string{"brand": " "}}
	if _, err := cfg.OrchestratorOptions(nil); err == nil {
		t.Fatalf("expected manifest validation error for blank token")
	}
}
