package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/viper"

	"github.com/goliatone/go-analysisforms/pkg/forms"
	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/orchestrator"
	"github.com/goliatone/go-analysisforms/pkg/render"
	"github.com/goliatone/go-analysisforms/pkg/renderers/tui"
	"github.com/goliatone/go-analysisforms/pkg/renderers/vanilla"
)

// EnvPrefix scopes environment overrides, e.g. ANALYSISFORMS_SERVER_ADDR.
const EnvPrefix = "ANALYSISFORMS"

// Config models analysisforms.yaml.
type Config struct {
	Upload struct {
		AllowedExtensions []string `mapstructure:"allowed_extensions"`
		MaxMemory         int64    `mapstructure:"max_memory"`
	} `mapstructure:"upload"`
	Render struct {
		Renderer string `mapstructure:"renderer"`
		Theme    Theme  `mapstructure:"theme"`
	} `mapstructure:"render"`
	UISchema struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"uischema"`
	Server struct {
		Addr            string        `mapstructure:"addr"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`
}

// Theme configures a single go-theme manifest built from configuration.
type Theme struct {
	Name       string            `mapstructure:"name"`
	Variant    string            `mapstructure:"variant"`
	Tokens     map[string]string `mapstructure:"tokens"`
	Stylesheet string            `mapstructure:"stylesheet"`
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("upload.allowed_extensions", forms.DefaultAllowedExtensions)
	v.SetDefault("upload.max_memory", int64(32<<20))
	v.SetDefault("render.renderer", vanilla.Name)
	v.SetDefault("render.theme.name", "")
	v.SetDefault("render.theme.variant", "")
	v.SetDefault("render.theme.tokens", map[string]string{})
	v.SetDefault("render.theme.stylesheet", "")
	v.SetDefault("uischema.dir", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Upload.AllowedExtensions = model.NormalizeExtensions(cfg.Upload.AllowedExtensions)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromFile reads path (YAML, JSON or TOML by extension) on top of the
// defaults and environment.
func FromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return Load(v)
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if len(c.Upload.AllowedExtensions) == 0 {
		return fmt.Errorf("config.upload.allowed_extensions must list at least one extension")
	}
	if c.Upload.MaxMemory <= 0 {
		return fmt.Errorf("config.upload.max_memory must be positive")
	}
	switch c.Render.Renderer {
	case vanilla.Name, tui.Name:
	default:
		return fmt.Errorf("config.render.renderer %q is not supported", c.Render.Renderer)
	}
	if c.Render.Theme.Name == "" && (c.Render.Theme.Variant != "" || len(c.Render.Theme.Tokens) > 0 || c.Render.Theme.Stylesheet != "") {
		return fmt.Errorf("config.render.theme.name is required when theme settings are present")
	}
	if dir := c.UISchema.Dir; dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("config.uischema.dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config.uischema.dir %s is not a directory", dir)
		}
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("config.server.addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("config.server.shutdown_timeout must be positive")
	}
	return nil
}

// Manifest returns the configured theme as a go-theme manifest, or nil when
// no theme is configured. Tokens apply to the base theme; a named variant
// exists so selection by variant succeeds. The stylesheet is split into the
// asset prefix and file name.
func (c *Config) Manifest() *theme.Manifest {
	cfg := c.Render.Theme
	if cfg.Name == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:    cfg.Name,
		Version: "config",
		Tokens:  make(map[string]string, len(cfg.Tokens)),
	}
	for key, value := range cfg.Tokens {
		manifest.Tokens[key] = value
	}
	if stylesheet := strings.TrimSpace(cfg.Stylesheet); stylesheet != "" {
		if i := strings.LastIndex(stylesheet, "/"); i > 0 {
			manifest.Assets.Prefix = stylesheet[:i]
			stylesheet = stylesheet[i+1:]
		}
		manifest.Assets.Files = map[string]string{"stylesheet": stylesheet}
	}
	if cfg.Variant != "" {
		manifest.Variants = map[string]theme.Variant{cfg.Variant: {}}
	}
	return manifest
}

// CatalogOptions feeds the upload allow-list into forms.NewCatalog.
func (c *Config) CatalogOptions() []forms.CatalogOption {
	return []forms.CatalogOption{
		forms.WithUploadOptions(forms.WithAllowedExtensions(c.Upload.AllowedExtensions...)),
	}
}

// OrchestratorOptions wires the catalog, overlays and theme described by the
// configuration. registry may be nil to keep the default vanilla renderer.
func (c *Config) OrchestratorOptions(registry *render.Registry) ([]orchestrator.Option, error) {
	catalog, err := forms.NewCatalog(c.CatalogOptions()...)
	if err != nil {
		return nil, fmt.Errorf("config: build catalog: %w", err)
	}
	opts := []orchestrator.Option{
		orchestrator.WithCatalog(catalog),
		orchestrator.WithDefaultRenderer(c.Render.Renderer),
	}
	if registry != nil {
		opts = append(opts, orchestrator.WithRegistry(registry))
	}
	if c.UISchema.Dir != "" {
		opts = append(opts, orchestrator.WithUISchemaFS(os.DirFS(c.UISchema.Dir)))
	}
	if manifest := c.Manifest(); manifest != nil {
		provider := theme.NewRegistry()
		if err := provider.Register(manifest); err != nil {
			return nil, fmt.Errorf("config: theme: %w", err)
		}
		opts = append(opts, orchestrator.WithThemeProvider(provider, manifest.Name, c.Render.Theme.Variant))
	}
	return opts, nil
}
