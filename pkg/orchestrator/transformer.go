package orchestrator

import (
	"context"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// Transformer mutates a form after it leaves the catalog and before UI
// overlays run. Hosts use it for per-deployment rewrites that do not belong
// in an overlay document, such as prefixing endpoints.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// EndpointPrefix returns a transformer that mounts every form below prefix.
func EndpointPrefix(prefix string) Transformer {
	return TransformerFunc(func(_ context.Context, form *model.Form) error {
		form.Endpoint = joinEndpoint(prefix, form.Endpoint)
		return nil
	})
}
