package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers use. Output is returned
// as a string and, when writers are passed, copied to each of them.
type TemplateRenderer interface {
	// Render treats name as inline template content when it carries template
	// delimiters and as a template path otherwise.
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
