package render

import (
	"context"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// Renderer converts a form definition into a byte representation (HTML,
// terminal transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options RenderOptions) ([]byte, error)
}
