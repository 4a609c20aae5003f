package vanilla

import (
	"strings"

	"github.com/goliatone/go-analysisforms/pkg/model"
	"github.com/goliatone/go-analysisforms/pkg/validation"
)

// controlID mirrors the id attribute browsers submit labels against. Action
// fields keep their bare name so the markup matches what form libraries emit
// for a submit button.
func controlID(field model.Field) string {
	name := strings.TrimSpace(field.Name)
	if name == "" || field.Kind == model.FieldKindAction {
		return name
	}
	return "af-" + name
}

// sanitizeClassList drops tokens using the reserved af- prefix so host
// overrides cannot collide with the generated ids.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := tokens[:0]
	for _, token := range tokens {
		if strings.HasPrefix(token, "af-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// checkedState resolves the checkbox state from request values, falling back
// to the field default.
func checkedState(field model.Field, values map[string]any) bool {
	raw, ok := values[field.Name]
	if !ok || raw == nil {
		return field.DefaultValue()
	}
	switch v := raw.(type) {
	case bool:
		return v
	case *bool:
		if v == nil {
			return field.DefaultValue()
		}
		return *v
	case string:
		return !validation.IsFalseValue(v)
	case []string:
		return len(v) > 0 && !validation.IsFalseValue(v[0])
	default:
		return field.DefaultValue()
	}
}
