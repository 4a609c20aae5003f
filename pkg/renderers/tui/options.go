package tui

import (
	"io/fs"
	"os"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits the body a browser would post.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly table.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures message prefixes the renderer applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// FileChecker reports details about a local file picked for an upload.
type FileChecker func(path string) (fs.FileInfo, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithGroupedSelection prompts each field group as one multi-select instead
// of one confirm per checkbox.
func WithGroupedSelection() Option {
	return func(r *Renderer) {
		r.grouped = true
	}
}

// WithFileChecker replaces the os.Stat based existence check for upload
// paths.
func WithFileChecker(fn FileChecker) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.checkFile = fn
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

func statFile(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrFileNotFound
	}
	return info, nil
}
