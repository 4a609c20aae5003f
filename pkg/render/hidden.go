package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted before the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken wraps a token the host generated for its own session layer. The
// forms never create or verify tokens; they only echo what the host passes.
func CSRFToken(name, token string) HiddenField {
	if strings.TrimSpace(name) == "" {
		name = "csrf_token"
	}
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders hidden inputs by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	if len(clean) == 0 {
		return nil
	}
	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, len(names))
	for i, name := range names {
		out[i] = HiddenField{Name: name, Value: clean[name]}
	}
	return out
}
