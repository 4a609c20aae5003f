package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-analysisforms/pkg/validation"
)

// RenderOptions describe per-request data renderers use to customise their
// output without mutating the shared form definition.
type RenderOptions struct {
	// Values pre-populates controls keyed by field name. Booleans accept bool
	// or the strings understood by the validation package; when a field is
	// missing the renderer falls back to the definition default.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors holds messages that belong to no particular field.
	FormErrors []string
	// Hidden carries host supplied hidden inputs such as a CSRF token.
	Hidden map[string]string
	// Subset limits rendering to some fields or groups.
	Subset FieldSubset
	// Theme carries the resolved go-theme configuration, when a host selects
	// one.
	Theme *theme.RendererConfig
}

// FieldSubset selects which fields a renderer emits. Action fields are
// always kept so a rendered subset remains submittable.
type FieldSubset struct {
	Groups []string
	Fields []string
}

// Empty reports whether the subset selects everything.
func (s FieldSubset) Empty() bool {
	return len(s.Groups) == 0 && len(s.Fields) == 0
}

// ValuesFromResult returns the bound checkbox state of a validation result so
// a re-rendered form shows what the user submitted instead of the defaults.
func ValuesFromResult(result validation.Result) map[string]any {
	if len(result.Bools) == 0 {
		return nil
	}
	out := make(map[string]any, len(result.Bools))
	for name, value := range result.Bools {
		out[name] = value
	}
	return out
}
