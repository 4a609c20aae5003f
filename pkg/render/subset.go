package render

import (
	"strings"

	"github.com/goliatone/go-analysisforms/pkg/model"
)

// ApplySubset returns a copy of form holding only the fields matched by
// subset. A field matches when its name or its group is listed; action fields
// always survive. An empty subset returns the form unchanged.
func ApplySubset(form model.Form, subset FieldSubset) model.Form {
	if subset.Empty() {
		return form
	}

	groups := toSet(subset.Groups)
	names := toSet(subset.Fields)

	out := form.Clone()
	out.Fields = out.Fields[:0]
	for _, field := range form.Fields {
		if field.Kind == model.FieldKindAction {
			out.Fields = append(out.Fields, field.Clone())
			continue
		}
		_, byName := names[field.Name]
		_, byGroup := groups[field.Group]
		if byName || (field.Group != "" && byGroup) {
			out.Fields = append(out.Fields, field.Clone())
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out[trimmed] = struct{}{}
		}
	}
	return out
}
